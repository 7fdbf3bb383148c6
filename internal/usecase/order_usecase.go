package usecase

import (
	"context"

	"ecommerce/internal/domain/model"
	repo "ecommerce/internal/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	clock  Clock
}

// DI
func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, clock: clock}
}

// TotalAmount はクライアントの値をそのまま保存する（カートから再計算しない）
type CreateOrderInput struct {
	UserID      int64
	TotalAmount decimal.Decimal
}

// CreateOrder はPENDINGの注文を作る。
// PENDINGが既にあればそれを変更せずに返す。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (model.Order, error) {
	if in.TotalAmount.IsNegative() {
		return model.Order{}, NewError(KindInvalidArgument, "total amount must not be negative")
	}
	// numeric(12,2)で丸められないように
	if !in.TotalAmount.Equal(in.TotalAmount.Round(2)) {
		return model.Order{}, NewError(KindInvalidArgument, "total amount must have at most 2 decimal places")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// ユーザー行ロックでPENDINGの二重作成を防ぐ
		if _, err := r.Users().FindByIDForUpdate(ctx, in.UserID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewError(KindNotFound, "cannot create order: user not found with id %d", in.UserID)
			}
			return internal(err, "lock user")
		}

		pending, err := r.Orders().FindPendingByUserID(ctx, in.UserID)
		if err == nil {
			out = pending
			return nil
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return internal(err, "find pending order")
		}

		n, err := r.CartItems().CountByUserID(ctx, in.UserID)
		if err != nil {
			return internal(err, "count cart items")
		}
		if n == 0 {
			return NewError(KindEmptyCart, "cannot create order: your cart is currently empty")
		}

		o := model.Order{
			UserID:      in.UserID,
			TotalAmount: in.TotalAmount,
			OrderDate:   u.clock.Now(),
			Status:      model.OrderStatusPending,
		}
		if err := r.Orders().Create(ctx, &o); err != nil {
			return internal(err, "create order")
		}
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetOrderDetails(ctx context.Context, orderID int64) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Order{}, NewError(KindNotFound, "order not found with id %d", orderID)
		}
		return model.Order{}, internal(err, "find order")
	}
	return o, nil
}
