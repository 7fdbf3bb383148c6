package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細
// (user_id, product_id) で1行だけ。合計は毎回「現在の価格 × 数量」で再計算する。
type CartItem struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64           `gorm:"not null;uniqueIndex:ux_cart_items_user_product" json:"user_id"`
	ProductID      int64           `gorm:"not null;uniqueIndex:ux_cart_items_user_product;index" json:"product_id"`
	Quantity       int64           `gorm:"not null" json:"quantity"`
	ItemPriceTotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"item_price_total"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}
