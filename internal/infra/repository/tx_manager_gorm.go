package repository

import (
	"context"

	repo "ecommerce/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users      repo.UserRepository
	categories repo.CategoryRepository
	products   repo.ProductRepository
	cartItems  repo.CartItemRepository
	orders     repo.OrderRepository
	payments   repo.PaymentRepository
}

func newTxReposGorm(db *gorm.DB) *txReposGorm {
	return &txReposGorm{
		users:      NewUserGormRepository(db),
		categories: NewCategoryGormRepository(db),
		products:   NewProductGormRepository(db),
		cartItems:  NewCartItemGormRepository(db),
		orders:     NewOrderGormRepository(db),
		payments:   NewPaymentGormRepository(db),
	}
}

func (r *txReposGorm) Users() repo.UserRepository          { return r.users }
func (r *txReposGorm) Categories() repo.CategoryRepository { return r.categories }
func (r *txReposGorm) Products() repo.ProductRepository    { return r.products }
func (r *txReposGorm) CartItems() repo.CartItemRepository  { return r.cartItems }
func (r *txReposGorm) Orders() repo.OrderRepository        { return r.orders }
func (r *txReposGorm) Payments() repo.PaymentRepository    { return r.payments }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		return fn(newTxReposGorm(tx))
	})
}

// 非Tx用（読み取りなど）
func NewRepos(db *gorm.DB) repo.TxRepos {
	return newTxReposGorm(db)
}
