package usecase_test

import (
	"context"
	"testing"
	"time"

	"ecommerce/internal/domain/model"
	"ecommerce/internal/infra/repository/memory"
	"ecommerce/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return fixedNow }

type fixture struct {
	store    *memory.Store
	cart     *usecase.CartUsecase
	orders   *usecase.OrderUsecase
	payments *usecase.PaymentUsecase
	products *usecase.ProductUsecase
	category *usecase.CategoryUsecase
}

func setup(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	return &fixture{
		store:    s,
		cart:     usecase.NewCartUsecase(s, s.Users(), s.Products(), s.CartItems()),
		orders:   usecase.NewOrderUsecase(s, s.Orders(), fixedClock{}),
		payments: usecase.NewPaymentUsecase(s, s.Payments(), fixedClock{}),
		products: usecase.NewProductUsecase(s, s.Products()),
		category: usecase.NewCategoryUsecase(s, s.Categories(), s.Products()),
	}
}

func (f *fixture) user(t *testing.T, name string) model.User {
	t.Helper()
	u := model.User{Username: name, Email: name + "@example.com", PasswordHash: "x", Role: model.RoleCustomer}
	require.NoError(t, f.store.Users().Create(context.Background(), &u))
	return u
}

func (f *fixture) product(t *testing.T, name string, price string) model.Product {
	t.Helper()
	p := model.Product{Name: name, Description: name, Price: decimal.RequireFromString(price), StockQuantity: 10}
	require.NoError(t, f.store.Products().Create(context.Background(), &p))
	return p
}

func (f *fixture) cartOf(t *testing.T, userID int64) []model.CartItem {
	t.Helper()
	items, err := f.store.CartItems().ListByUserID(context.Background(), userID)
	require.NoError(t, err)
	return items
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireKind(t *testing.T, err error, kind usecase.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, usecase.KindOf(err), "err=%v", err)
}
