package usecase_test

import (
	"context"
	"sync"
	"testing"

	"ecommerce/internal/domain/model"
	"ecommerce/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderUsecase_CreateOrder_ReturnsExistingPending(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	u := f.user(t, "alice")
	p := f.product(t, "Mug", "50.00")
	_, err := f.cart.AddToCart(ctx, usecase.AddCartInput{UserID: u.ID, ProductID: p.ID, Quantity: 5})
	require.NoError(t, err)

	o, err := f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, TotalAmount: dec("250.0")})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, o.Status)
	assert.True(t, dec("250").Equal(o.TotalAmount))
	assert.Equal(t, fixedNow, o.OrderDate)

	again, err := f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, TotalAmount: dec("999.0")})
	require.NoError(t, err)
	assert.Equal(t, o.ID, again.ID)
	assert.True(t, dec("250").Equal(again.TotalAmount))

	got, err := f.orders.GetOrderDetails(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestOrderUsecase_CreateOrder_ConcurrentCallsCreateOnePending(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	u := f.user(t, "alice")
	p := f.product(t, "Mug", "50.00")
	_, err := f.cart.AddToCart(ctx, usecase.AddCartInput{UserID: u.ID, ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	ids := make([]int64, 10)
	var wg sync.WaitGroup
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o, err := f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, TotalAmount: dec("50")})
			assert.NoError(t, err)
			ids[i] = o.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestOrderUsecase_CreateOrder_Errors(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	u := f.user(t, "alice")

	_, err := f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: 999, TotalAmount: dec("10")})
	requireKind(t, err, usecase.KindNotFound)

	_, err = f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, TotalAmount: dec("10")})
	requireKind(t, err, usecase.KindEmptyCart)

	_, err = f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, TotalAmount: dec("-1")})
	requireKind(t, err, usecase.KindInvalidArgument)

	// numeric(12,2)に入らない桁
	_, err = f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, TotalAmount: dec("10.005")})
	requireKind(t, err, usecase.KindInvalidArgument)

	_, err = f.orders.GetOrderDetails(ctx, 999)
	requireKind(t, err, usecase.KindNotFound)
}

func TestOrderUsecase_CreateOrder_AfterSettlementCreatesNewOrder(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	u := f.user(t, "alice")
	p := f.product(t, "Mug", "50.00")

	_, err := f.cart.AddToCart(ctx, usecase.AddCartInput{UserID: u.ID, ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)
	first, err := f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, TotalAmount: dec("50")})
	require.NoError(t, err)

	_, err = f.payments.ProcessPayment(ctx, usecase.ProcessPaymentInput{OrderID: first.ID, Succeeded: false, Method: model.PaymentMethodCard})
	require.NoError(t, err)

	second, err := f.orders.CreateOrder(ctx, usecase.CreateOrderInput{UserID: u.ID, TotalAmount: dec("50")})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.OrderStatusPending, second.Status)
}
