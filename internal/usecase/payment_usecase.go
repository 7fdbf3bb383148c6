package usecase

import (
	"context"

	"ecommerce/internal/domain/model"
	repo "ecommerce/internal/repository"

	"github.com/pkg/errors"
)

const PaymentProcessedMessage = "Payment Processed Successfully"

type PaymentUsecase struct {
	tx       repo.TransactionManager
	payments repo.PaymentRepository
	clock    Clock
}

// DI
func NewPaymentUsecase(tx repo.TransactionManager, payments repo.PaymentRepository, clock Clock) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, payments: payments, clock: clock}
}

type ProcessPaymentInput struct {
	OrderID   int64
	Succeeded bool
	Method    model.PaymentMethod
}

type ProcessPaymentOutput struct {
	Message   string              `json:"message"`
	PaymentID int64               `json:"payment_id"`
	OrderID   int64               `json:"order_id"`
	Status    model.PaymentStatus `json:"payment_status"`
	Order     model.OrderStatus   `json:"order_status"`
}

// ProcessPayment は決済結果を注文に反映する。
// 成功: COMPLETED / SHIPPED / カートを空にする。失敗: FAILED / CANCELLED / カートはそのまま。
// 途中で失敗したら全部rollback。
func (u *PaymentUsecase) ProcessPayment(ctx context.Context, in ProcessPaymentInput) (ProcessPaymentOutput, error) {
	if !in.Method.Valid() {
		return ProcessPaymentOutput{}, NewError(KindInvalidArgument, "invalid payment method %q", in.Method)
	}

	var out ProcessPaymentOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByIDForUpdate(ctx, in.OrderID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewError(KindNotFound, "order not found with id %d", in.OrderID)
			}
			return settlementFailed(err)
		}
		// 終端状態は戻さない（支払いも注文に1件だけ）
		if order.Status != model.OrderStatusPending {
			return NewError(KindConflict, "order %d is %s, not PENDING", order.ID, order.Status)
		}

		now := u.clock.Now()
		payment := model.Payment{
			OrderID:     order.ID,
			Amount:      order.TotalAmount,
			PaymentDate: now,
			Method:      in.Method,
		}

		if in.Succeeded {
			payment.Status = model.PaymentStatusCompleted
			order.Status = model.OrderStatusShipped

			n, err := r.CartItems().DeleteByUserID(ctx, order.UserID)
			if err != nil {
				return settlementFailed(err)
			}
			if n == 0 {
				return settlementFailed(NewError(KindEmptyCart, "no cart item found for user %d", order.UserID))
			}
		} else {
			payment.Status = model.PaymentStatusFailed
			order.Status = model.OrderStatusCancelled
		}

		if err := r.Orders().UpdateStatus(ctx, order.ID, order.Status); err != nil {
			return settlementFailed(err)
		}
		if err := r.Payments().Create(ctx, &payment); err != nil {
			return settlementFailed(err)
		}

		out = ProcessPaymentOutput{
			Message:   PaymentProcessedMessage,
			PaymentID: payment.ID,
			OrderID:   order.ID,
			Status:    payment.Status,
			Order:     order.Status,
		}
		return nil
	})
	if err != nil {
		return ProcessPaymentOutput{}, err
	}
	return out, nil
}

// ストレージのエラーはINTERNALとして包む（EmptyCartなどはそのまま）
func settlementFailed(err error) error {
	return WrapError(KindSettlementFailure, internal(err, "settle payment"), "payment processing failed")
}

func (u *PaymentUsecase) GetPaymentStatus(ctx context.Context, paymentID int64) (model.PaymentStatus, error) {
	p, err := u.payments.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", NewError(KindNotFound, "payment not found with id %d", paymentID)
		}
		return "", internal(err, "find payment")
	}
	return p.Status, nil
}
