package usecase

import (
	"context"
	"strings"

	"ecommerce/internal/domain/model"
	repo "ecommerce/internal/repository"
	"ecommerce/internal/validator"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
}

// DI
func NewProductUsecase(tx repo.TransactionManager, products repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{tx: tx, products: products}
}

type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int64
	// 空ならカテゴリ無し
	CategoryName string
}

func (in ProductInput) validate() error {
	if err := validator.ValidateProduct(in.Name, in.Description, in.Price, in.StockQuantity); err != nil {
		return WrapError(KindInvalidArgument, err, "invalid product")
	}
	return nil
}

// AddProduct は商品を作る。カテゴリ名が既存なら紐づけ、無ければ作る。
func (u *ProductUsecase) AddProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}
	categoryName := strings.TrimSpace(in.CategoryName)
	if categoryName != "" {
		if err := validator.ValidateCategoryName(categoryName); err != nil {
			return model.Product{}, WrapError(KindInvalidArgument, err, "invalid category")
		}
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p := model.Product{
			Name:          strings.TrimSpace(in.Name),
			Description:   in.Description,
			Price:         in.Price,
			StockQuantity: in.StockQuantity,
		}

		if categoryName != "" {
			c, err := sameNameCategory(ctx, r.Categories(), categoryName)
			if err != nil {
				return err
			}
			if c == nil {
				c = &model.Category{Name: categoryName}
				if err := r.Categories().Create(ctx, c); err != nil {
					// 同時に同名カテゴリが作られた
					if errors.Is(err, repo.ErrDuplicate) {
						return NewError(KindConflict, "category %q already exists", categoryName)
					}
					return internal(err, "create category")
				}
			}
			p.CategoryID = &c.ID
		}

		if err := r.Products().Create(ctx, &p); err != nil {
			return internal(err, "create product")
		}
		out = p
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// name/description/price/stockだけ更新
func (u *ProductUsecase) UpdateProduct(ctx context.Context, id int64, in ProductInput) (model.Product, error) {
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	p, err := u.GetProductDetails(ctx, id)
	if err != nil {
		return model.Product{}, err
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.StockQuantity = in.StockQuantity

	if err := u.products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewError(KindNotFound, "product not found with id %d", id)
		}
		return model.Product{}, internal(err, "update product")
	}
	return p, nil
}

func (u *ProductUsecase) GetProductDetails(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Product{}, NewError(KindNotFound, "product not found with id %d", id)
		}
		return model.Product{}, internal(err, "find product")
	}
	return p, nil
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]model.Product, error) {
	ps, err := u.products.List(ctx)
	if err != nil {
		return nil, internal(err, "list products")
	}
	return ps, nil
}

// カートの明細はFKで一緒に消える
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id int64) error {
	if err := u.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewError(KindNotFound, "product not found with id %d", id)
		}
		return internal(err, "delete product")
	}
	return nil
}
