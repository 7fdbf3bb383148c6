package repository

import (
	"context"

	"ecommerce/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id int64) (model.Order, error)
	FindByIDForUpdate(ctx context.Context, id int64) (model.Order, error)
	FindPendingByUserID(ctx context.Context, userID int64) (model.Order, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
}
