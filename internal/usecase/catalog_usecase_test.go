package usecase_test

import (
	"context"
	"testing"

	"ecommerce/internal/domain/model"
	"ecommerce/internal/infra/repository/memory"
	repo "ecommerce/internal/repository"
	"ecommerce/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productInput(name, category string) usecase.ProductInput {
	return usecase.ProductInput{
		Name:          name,
		Description:   "a " + name,
		Price:         dec("12.50"),
		StockQuantity: 3,
		CategoryName:  category,
	}
}

func TestProductUsecase_AddProduct_LinksExistingCategory(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	cat, err := f.category.AddCategory(ctx, usecase.CategoryInput{Name: "Kitchen"})
	require.NoError(t, err)

	p, err := f.products.AddProduct(ctx, productInput("Mug", "kitchen"))
	require.NoError(t, err)
	require.NotNil(t, p.CategoryID)
	assert.Equal(t, cat.ID, *p.CategoryID)

	cats, err := f.category.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestProductUsecase_AddProduct_CreatesMissingCategory(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	p, err := f.products.AddProduct(ctx, productInput("Mug", "Home Goods"))
	require.NoError(t, err)
	require.NotNil(t, p.CategoryID)

	cat, err := f.category.GetCategory(ctx, *p.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, "Home Goods", cat.Name)

	ps, err := f.category.ListCategoryProducts(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, p.ID, ps[0].ID)
}

func TestProductUsecase_AddProduct_Validation(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	in := productInput("Mug", "")
	in.Price = dec("-1")
	_, err := f.products.AddProduct(ctx, in)
	requireKind(t, err, usecase.KindInvalidArgument)

	in = productInput("Mug", "")
	in.Description = " "
	_, err = f.products.AddProduct(ctx, in)
	requireKind(t, err, usecase.KindInvalidArgument)

	in = productInput("Mug", "")
	in.StockQuantity = -1
	_, err = f.products.AddProduct(ctx, in)
	requireKind(t, err, usecase.KindInvalidArgument)

	_, err = f.products.AddProduct(ctx, productInput("Mug", "Kitchen2"))
	requireKind(t, err, usecase.KindInvalidArgument)
}

func TestProductUsecase_UpdateGetDelete(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	p, err := f.products.AddProduct(ctx, productInput("Mug", ""))
	require.NoError(t, err)
	assert.Nil(t, p.CategoryID)

	in := productInput("Big Mug", "")
	in.Price = dec("20")
	updated, err := f.products.UpdateProduct(ctx, p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", updated.Name)

	got, err := f.products.GetProductDetails(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, dec("20").Equal(got.Price))

	all, err := f.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, f.products.DeleteProduct(ctx, p.ID))
	requireKind(t, f.products.DeleteProduct(ctx, p.ID), usecase.KindNotFound)

	_, err = f.products.GetProductDetails(ctx, p.ID)
	requireKind(t, err, usecase.KindNotFound)
	_, err = f.products.UpdateProduct(ctx, p.ID, in)
	requireKind(t, err, usecase.KindNotFound)
}

func TestCategoryUsecase_AddCategory_DuplicateIgnoresCase(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.category.AddCategory(ctx, usecase.CategoryInput{Name: "Books"})
	require.NoError(t, err)

	_, err = f.category.AddCategory(ctx, usecase.CategoryInput{Name: "BOOKS"})
	requireKind(t, err, usecase.KindConflict)
}

func TestCategoryUsecase_AddCategory_Update(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	books, err := f.category.AddCategory(ctx, usecase.CategoryInput{Name: "Books"})
	require.NoError(t, err)
	_, err = f.category.AddCategory(ctx, usecase.CategoryInput{Name: "Toys"})
	require.NoError(t, err)

	renamed, err := f.category.AddCategory(ctx, usecase.CategoryInput{ID: &books.ID, Name: "Comics"})
	require.NoError(t, err)
	assert.Equal(t, books.ID, renamed.ID)
	assert.Equal(t, "Comics", renamed.Name)

	// 自分と同じ名前（大文字小文字違い）はOK
	_, err = f.category.AddCategory(ctx, usecase.CategoryInput{ID: &books.ID, Name: "COMICS"})
	require.NoError(t, err)

	_, err = f.category.AddCategory(ctx, usecase.CategoryInput{ID: &books.ID, Name: "toys"})
	requireKind(t, err, usecase.KindConflict)

	missing := int64(999)
	_, err = f.category.AddCategory(ctx, usecase.CategoryInput{ID: &missing, Name: "Games"})
	requireKind(t, err, usecase.KindNotFound)

	_, err = f.category.AddCategory(ctx, usecase.CategoryInput{Name: "Games 2"})
	requireKind(t, err, usecase.KindInvalidArgument)
}

func TestCategoryUsecase_DeleteCategory_KeepsProducts(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	p, err := f.products.AddProduct(ctx, productInput("Mug", "Kitchen"))
	require.NoError(t, err)

	cat, found, err := f.category.DeleteCategory(ctx, *p.CategoryID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Kitchen", cat.Name)

	got, err := f.products.GetProductDetails(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	_, found, err = f.category.DeleteCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = f.category.ListCategoryProducts(ctx, cat.ID)
	requireKind(t, err, usecase.KindNotFound)
}

// 同名チェックの後に別のTxが先に作った状態を再現する（FindAllByNameFoldが空を返す）
type staleCategories struct {
	repo.CategoryRepository
}

func (staleCategories) FindAllByNameFold(ctx context.Context, name string) ([]model.Category, error) {
	return []model.Category{}, nil
}

type staleTxRepos struct {
	repo.TxRepos
}

func (r staleTxRepos) Categories() repo.CategoryRepository {
	return staleCategories{r.TxRepos.Categories()}
}

type staleTx struct {
	s *memory.Store
}

func (t staleTx) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return t.s.WithinTx(ctx, func(r repo.TxRepos) error {
		return fn(staleTxRepos{r})
	})
}

func TestCatalog_LostCategoryRaceIsConflict(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.category.AddCategory(ctx, usecase.CategoryInput{Name: "Books"})
	require.NoError(t, err)

	tx := staleTx{s: f.store}
	categories := usecase.NewCategoryUsecase(tx, f.store.Categories(), f.store.Products())
	products := usecase.NewProductUsecase(tx, f.store.Products())

	_, err = categories.AddCategory(ctx, usecase.CategoryInput{Name: "books"})
	requireKind(t, err, usecase.KindConflict)

	_, err = products.AddProduct(ctx, productInput("Novel", "BOOKS"))
	requireKind(t, err, usecase.KindConflict)

	// 失敗したTxの商品は残らない
	all, err := f.products.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	cats, err := f.category.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestCategoryStore_NameKeyIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	books := model.Category{Name: "Books"}
	require.NoError(t, f.store.Categories().Create(ctx, &books))
	assert.Equal(t, "books", books.NameKey)

	dup := model.Category{Name: "BOOKS"}
	assert.ErrorIs(t, f.store.Categories().Create(ctx, &dup), repo.ErrDuplicate)

	toys := model.Category{Name: "Toys"}
	require.NoError(t, f.store.Categories().Create(ctx, &toys))
	toys.Name = "books"
	assert.ErrorIs(t, f.store.Categories().Update(ctx, toys), repo.ErrDuplicate)
}
