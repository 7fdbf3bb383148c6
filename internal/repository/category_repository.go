package repository

import (
	"context"

	"ecommerce/internal/domain/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c model.Category) error
	FindByID(ctx context.Context, id int64) (model.Category, error)
	// 大文字小文字を区別せずに名前一致を全部返す
	FindAllByNameFold(ctx context.Context, name string) ([]model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	Delete(ctx context.Context, id int64) error
}
