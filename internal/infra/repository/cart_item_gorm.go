package repository

import (
	"context"

	"ecommerce/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// カート明細を一覧取得
func (r *CartItemGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.CartItem{}, translate(err, "list cart items")
	}
	return items, nil
}

func (r *CartItemGormRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	if err != nil {
		return 0, translate(err, "count cart items")
	}
	return n, nil
}

// 明細を取得
func (r *CartItemGormRepository) FindByID(ctx context.Context, id int64) (model.CartItem, error) {
	var item model.CartItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return model.CartItem{}, translate(err, "find cart item")
	}
	return item, nil
}

func (r *CartItemGormRepository) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return model.CartItem{}, translate(err, "find cart item by product")
	}
	return item, nil
}

func (r *CartItemGormRepository) Save(ctx context.Context, item *model.CartItem) error {
	db := r.db.WithContext(ctx).Omit(clause.Associations)
	if item.ID == 0 {
		return translate(db.Create(item).Error, "create cart item")
	}
	res := db.Model(&model.CartItem{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"quantity":         item.Quantity,
		"item_price_total": item.ItemPriceTotal,
	})
	return affected(res, "update cart item")
}

// 明細を削除
func (r *CartItemGormRepository) DeleteByID(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.CartItem{}, id), "delete cart item")
}

// ユーザーの明細を全削除
func (r *CartItemGormRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{})
	if res.Error != nil {
		return 0, translate(res.Error, "clear cart")
	}
	return res.RowsAffected, nil
}
