package repository

import (
	"context"

	"ecommerce/internal/domain/model"
)

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, p model.Product) error
	FindByID(ctx context.Context, id int64) (model.Product, error)
	// 無いIDは結果に含めない
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error)
	Delete(ctx context.Context, id int64) error
}
