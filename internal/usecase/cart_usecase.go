package usecase

import (
	"context"

	"ecommerce/internal/domain/model"
	repo "ecommerce/internal/repository"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CartUsecase はカートの業務ロジックです。
// 更新系はユーザー行をロックしてから読むので、同じユーザーへの追加が並んでも数量が消えない。
type CartUsecase struct {
	tx        repo.TransactionManager
	users     repo.UserRepository
	products  repo.ProductRepository
	cartItems repo.CartItemRepository
}

// DI
func NewCartUsecase(
	tx repo.TransactionManager,
	users repo.UserRepository,
	products repo.ProductRepository,
	cartItems repo.CartItemRepository,
) *CartUsecase {
	return &CartUsecase{
		tx:        tx,
		users:     users,
		products:  products,
		cartItems: cartItems,
	}
}

type AddCartInput struct {
	UserID    int64
	ProductID int64
	Quantity  int64
}

// CartLine はカート明細に商品名と単価を付けたもの
type CartLine struct {
	CartItemID     int64           `json:"cart_item_id"`
	UserID         int64           `json:"user_id"`
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	ItemPriceTotal decimal.Decimal `json:"item_price_total"`
}

func lineTotal(price decimal.Decimal, qty int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(qty))
}

func validQuantity(qty int64) error {
	if qty < 1 {
		return NewError(KindInvalidArgument, "quantity must not be less than 1")
	}
	return nil
}

// AddToCart はカートに追加（同一商品は数量加算、合計は現在の価格で再計算）。
func (u *CartUsecase) AddToCart(ctx context.Context, in AddCartInput) (model.CartItem, error) {
	if err := validQuantity(in.Quantity); err != nil {
		return model.CartItem{}, err
	}

	var out model.CartItem
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByIDForUpdate(ctx, in.UserID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewError(KindNotFound, "user not found with id %d", in.UserID)
			}
			return internal(err, "lock user")
		}

		p, err := r.Products().FindByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewError(KindNotFound, "product not found with id %d", in.ProductID)
			}
			return internal(err, "find product")
		}

		item, err := r.CartItems().FindByUserAndProduct(ctx, in.UserID, in.ProductID)
		switch {
		case err == nil:
			item.Quantity += in.Quantity
		case errors.Is(err, repo.ErrNotFound):
			item = model.CartItem{
				UserID:    in.UserID,
				ProductID: in.ProductID,
				Quantity:  in.Quantity,
			}
		default:
			return internal(err, "find cart item")
		}
		item.ItemPriceTotal = lineTotal(p.Price, item.Quantity)

		if err := r.CartItems().Save(ctx, &item); err != nil {
			return internal(err, "save cart item")
		}
		out = item
		return nil
	})
	if err != nil {
		return model.CartItem{}, err
	}
	return out, nil
}

// RemoveFromCart は明細を削除して返す。無ければ found=false（エラーではない）。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, cartItemID int64) (model.CartItem, bool, error) {
	var (
		out   model.CartItem
		found bool
	)
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.CartItems().FindByID(ctx, cartItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		if err != nil {
			return internal(err, "find cart item")
		}

		if _, err := r.Users().FindByIDForUpdate(ctx, item.UserID); err != nil {
			return internal(err, "lock user")
		}

		// ロック待ちの間に消されていたら無かったことにする
		if err := r.CartItems().DeleteByID(ctx, cartItemID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil
			}
			return internal(err, "delete cart item")
		}
		out, found = item, true
		return nil
	})
	if err != nil {
		return model.CartItem{}, false, err
	}
	return out, found, nil
}

// GetCartDetails はユーザーのカートを商品名・単価付きで返す。
func (u *CartUsecase) GetCartDetails(ctx context.Context, userID int64) ([]CartLine, error) {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewError(KindNotFound, "no user found with id %d", userID)
		}
		return nil, internal(err, "find user")
	}

	items, err := u.cartItems.ListByUserID(ctx, userID)
	if err != nil {
		return nil, internal(err, "list cart items")
	}

	ids := make([]int64, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := u.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, internal(err, "find products")
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]CartLine, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			// 読み取りの間に商品が消えた
			continue
		}
		lines = append(lines, CartLine{
			CartItemID:     it.ID,
			UserID:         it.UserID,
			ProductID:      it.ProductID,
			ProductName:    p.Name,
			Quantity:       it.Quantity,
			UnitPrice:      p.Price,
			ItemPriceTotal: it.ItemPriceTotal,
		})
	}
	return lines, nil
}

// UpdateQuantity は数量を上書きして合計を再計算する。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, cartItemID int64, quantity int64) (model.CartItem, error) {
	// ストレージに触る前に弾く
	if err := validQuantity(quantity); err != nil {
		return model.CartItem{}, err
	}

	var out model.CartItem
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		notFound := func() error {
			return NewError(KindNotFound, "no cart item found with id %d", cartItemID)
		}

		item, err := r.CartItems().FindByID(ctx, cartItemID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound()
		}
		if err != nil {
			return internal(err, "find cart item")
		}

		if _, err := r.Users().FindByIDForUpdate(ctx, item.UserID); err != nil {
			return internal(err, "lock user")
		}

		p, err := r.Products().FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound()
			}
			return internal(err, "find product")
		}

		item.Quantity = quantity
		item.ItemPriceTotal = lineTotal(p.Price, quantity)
		if err := r.CartItems().Save(ctx, &item); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return notFound()
			}
			return internal(err, "save cart item")
		}
		out = item
		return nil
	})
	if err != nil {
		return model.CartItem{}, err
	}
	return out, nil
}
