package repository

import (
	"context"

	"ecommerce/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, o *model.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error, "create order")
}

func (r *OrderGormRepository) FindByID(ctx context.Context, id int64) (model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return model.Order{}, translate(err, "find order")
	}
	return o, nil
}

// 決済中に状態が変わらないようにロック
func (r *OrderGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		return model.Order{}, translate(err, "lock order")
	}
	return o, nil
}

// PENDINGの注文（あれば1件）
func (r *OrderGormRepository) FindPendingByUserID(ctx context.Context, userID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.OrderStatusPending).
		Order("id desc").
		First(&o).Error
	if err != nil {
		return model.Order{}, translate(err, "find pending order")
	}
	return o, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", status)
	return affected(res, "update order status")
}
