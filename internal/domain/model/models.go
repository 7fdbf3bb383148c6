package model

// AutoMigrate対象（FKの順番どおり）
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Product{},
		&CartItem{},
		&Order{},
		&Payment{},
	}
}
