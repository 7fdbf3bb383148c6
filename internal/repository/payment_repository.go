package repository

import (
	"context"

	"ecommerce/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id int64) (model.Payment, error)
}
