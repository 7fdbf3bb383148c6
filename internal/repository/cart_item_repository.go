package repository

import (
	"context"

	"ecommerce/internal/domain/model"
)

type CartItemRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	FindByID(ctx context.Context, id int64) (model.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error)
	// IDが0なら作成、それ以外は更新
	Save(ctx context.Context, item *model.CartItem) error
	DeleteByID(ctx context.Context, id int64) error
	// 削除件数を返す
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}
