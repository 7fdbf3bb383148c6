package usecase

import (
	"context"
	"strings"

	"ecommerce/internal/domain/model"
	repo "ecommerce/internal/repository"
	"ecommerce/internal/validator"

	"github.com/pkg/errors"
)

type CategoryUsecase struct {
	tx         repo.TransactionManager
	categories repo.CategoryRepository
	products   repo.ProductRepository
}

// DI
func NewCategoryUsecase(tx repo.TransactionManager, categories repo.CategoryRepository, products repo.ProductRepository) *CategoryUsecase {
	return &CategoryUsecase{tx: tx, categories: categories, products: products}
}

// ID無し=新規、ID有り=名前の変更
type CategoryInput struct {
	ID   *int64
	Name string
}

func (u *CategoryUsecase) AddCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	name := strings.TrimSpace(in.Name)
	if err := validator.ValidateCategoryName(name); err != nil {
		return model.Category{}, WrapError(KindInvalidArgument, err, "invalid category")
	}

	var out model.Category
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		same, err := sameNameCategory(ctx, r.Categories(), name)
		if err != nil {
			return err
		}

		if in.ID == nil {
			if same != nil {
				return NewError(KindConflict, "category %q already exists", name)
			}
			c := model.Category{Name: name}
			if err := r.Categories().Create(ctx, &c); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					return NewError(KindConflict, "category %q already exists", name)
				}
				return internal(err, "create category")
			}
			out = c
			return nil
		}

		c, err := r.Categories().FindByID(ctx, *in.ID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewError(KindNotFound, "category not found with id %d", *in.ID)
			}
			return internal(err, "find category")
		}
		if same != nil && same.ID != c.ID {
			return NewError(KindConflict, "category %q already exists", name)
		}

		c.Name = name
		if err := r.Categories().Update(ctx, c); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return NewError(KindConflict, "category %q already exists", name)
			}
			return internal(err, "update category")
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Category{}, err
	}
	return out, nil
}

// 同名（大文字小文字無視）のカテゴリ。2件以上はデータ不整合
func sameNameCategory(ctx context.Context, categories repo.CategoryRepository, name string) (*model.Category, error) {
	found, err := categories.FindAllByNameFold(ctx, name)
	if err != nil {
		return nil, internal(err, "find category by name")
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return &found[0], nil
	default:
		return nil, NewError(KindInternal, "data integrity error: %d categories named %q", len(found), name)
	}
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	c, err := u.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Category{}, NewError(KindNotFound, "category not found with id %d", id)
		}
		return model.Category{}, internal(err, "find category")
	}
	return c, nil
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cs, err := u.categories.List(ctx)
	if err != nil {
		return nil, internal(err, "list categories")
	}
	return cs, nil
}

// カテゴリに属する商品
func (u *CategoryUsecase) ListCategoryProducts(ctx context.Context, id int64) ([]model.Product, error) {
	if _, err := u.GetCategory(ctx, id); err != nil {
		return nil, err
	}
	ps, err := u.products.ListByCategoryID(ctx, id)
	if err != nil {
		return nil, internal(err, "list products by category")
	}
	return ps, nil
}

// DeleteCategory は削除したカテゴリを返す。無ければ found=false。
// 商品は残り、カテゴリ無しになる。
func (u *CategoryUsecase) DeleteCategory(ctx context.Context, id int64) (model.Category, bool, error) {
	var (
		out   model.Category
		found bool
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return internal(err, "find category")
		}
		if err := r.Categories().Delete(ctx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil
			}
			return internal(err, "delete category")
		}
		out, found = c, true
		return nil
	})
	if err != nil {
		return model.Category{}, false, err
	}
	return out, found, nil
}
