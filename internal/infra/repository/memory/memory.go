// Package memory はrepositoryのポートをメモリ上で実装する（テスト用）。
// WithinTxは全体で直列化され、fnがerrorを返すと開始時点の状態に戻す。
package memory

import (
	"context"
	"sort"
	"sync"

	"ecommerce/internal/domain/model"
	repo "ecommerce/internal/repository"
)

type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex

	nextID     int64
	users      map[int64]model.User
	categories map[int64]model.Category
	products   map[int64]model.Product
	cartItems  map[int64]model.CartItem
	orders     map[int64]model.Order
	payments   map[int64]model.Payment

	// 障害注入
	PaymentCreateErr error
}

func NewStore() *Store {
	return &Store{
		users:      map[int64]model.User{},
		categories: map[int64]model.Category{},
		products:   map[int64]model.Product{},
		cartItems:  map[int64]model.CartItem{},
		orders:     map[int64]model.Order{},
		payments:   map[int64]model.Payment{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type snapshot struct {
	nextID     int64
	users      map[int64]model.User
	categories map[int64]model.Category
	products   map[int64]model.Product
	cartItems  map[int64]model.CartItem
	orders     map[int64]model.Order
	payments   map[int64]model.Payment
}

func copyMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		nextID:     s.nextID,
		users:      copyMap(s.users),
		categories: copyMap(s.categories),
		products:   copyMap(s.products),
		cartItems:  copyMap(s.cartItems),
		orders:     copyMap(s.orders),
		payments:   copyMap(s.payments),
	}
}

func (s *Store) restore(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = sn.nextID
	s.users = sn.users
	s.categories = sn.categories
	s.products = sn.products
	s.cartItems = sn.cartItems
	s.orders = sn.orders
	s.payments = sn.payments
}

func (s *Store) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	sn := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(sn)
		return err
	}
	return nil
}

func (s *Store) Users() repo.UserRepository          { return users{s} }
func (s *Store) Categories() repo.CategoryRepository { return categories{s} }
func (s *Store) Products() repo.ProductRepository    { return products{s} }
func (s *Store) CartItems() repo.CartItemRepository  { return cartItems{s} }
func (s *Store) Orders() repo.OrderRepository        { return orders{s} }
func (s *Store) Payments() repo.PaymentRepository    { return payments{s} }

// ---- users

type users struct{ s *Store }

func (r users) Create(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.Username == u.Username {
			return repo.ErrDuplicate
		}
	}
	u.ID = r.s.id()
	r.s.users[u.ID] = *u
	return nil
}

func (r users) FindByID(ctx context.Context, id int64) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, repo.ErrNotFound
	}
	return u, nil
}

// WithinTxで直列化済みなので通常のFindと同じ
func (r users) FindByIDForUpdate(ctx context.Context, id int64) (model.User, error) {
	return r.FindByID(ctx, id)
}

func (r users) FindByUsername(ctx context.Context, username string) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repo.ErrNotFound
}

func (r users) Update(ctx context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return repo.ErrNotFound
	}
	for _, other := range r.s.users {
		if other.ID != u.ID && other.Username == u.Username {
			return repo.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

// ---- categories

type categories struct{ s *Store }

// name_keyのunique index
func (r categories) taken(c model.Category) bool {
	for _, other := range r.s.categories {
		if other.ID != c.ID && other.NameKey == c.NameKey {
			return true
		}
	}
	return false
}

func (r categories) Create(ctx context.Context, c *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.NameKey = model.CategoryNameKey(c.Name)
	if r.taken(*c) {
		return repo.ErrDuplicate
	}
	c.ID = r.s.id()
	r.s.categories[c.ID] = *c
	return nil
}

func (r categories) Update(ctx context.Context, c model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return repo.ErrNotFound
	}
	c.NameKey = model.CategoryNameKey(c.Name)
	if r.taken(c) {
		return repo.ErrDuplicate
	}
	r.s.categories[c.ID] = c
	return nil
}

func (r categories) FindByID(ctx context.Context, id int64) (model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return model.Category{}, repo.ErrNotFound
	}
	return c, nil
}

func (r categories) FindAllByNameFold(ctx context.Context, name string) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Category{}
	for _, c := range r.s.categories {
		if c.NameKey == model.CategoryNameKey(name) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r categories) List(ctx context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sorted(r.s.categories, func(c model.Category) int64 { return c.ID }), nil
}

// ON DELETE SET NULL
func (r categories) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.categories, id)
	for pid, p := range r.s.products {
		if p.CategoryID != nil && *p.CategoryID == id {
			p.CategoryID = nil
			r.s.products[pid] = p
		}
	}
	return nil
}

// ---- products

type products struct{ s *Store }

func (r products) Create(ctx context.Context, p *model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	r.s.products[p.ID] = *p
	return nil
}

func (r products) Update(ctx context.Context, p model.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.Price = p.Price
	cur.StockQuantity = p.StockQuantity
	r.s.products[p.ID] = cur
	return nil
}

func (r products) FindByID(ctx context.Context, id int64) (model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r products) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.Product{}
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r products) List(ctx context.Context) ([]model.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sorted(r.s.products, func(p model.Product) int64 { return p.ID }), nil
}

func (r products) ListByCategoryID(ctx context.Context, categoryID int64) ([]model.Product, error) {
	all, _ := r.List(ctx)
	out := []model.Product{}
	for _, p := range all {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ON DELETE CASCADE（cart_items）
func (r products) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.products, id)
	for cid, it := range r.s.cartItems {
		if it.ProductID == id {
			delete(r.s.cartItems, cid)
		}
	}
	return nil
}

// ---- cart items

type cartItems struct{ s *Store }

func (r cartItems) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []model.CartItem{}
	for _, it := range sorted(r.s.cartItems, func(it model.CartItem) int64 { return it.ID }) {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r cartItems) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	items, _ := r.ListByUserID(ctx, userID)
	return int64(len(items)), nil
}

func (r cartItems) FindByID(ctx context.Context, id int64) (model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.cartItems[id]
	if !ok {
		return model.CartItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r cartItems) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.cartItems {
		if it.UserID == userID && it.ProductID == productID {
			return it, nil
		}
	}
	return model.CartItem{}, repo.ErrNotFound
}

func (r cartItems) Save(ctx context.Context, item *model.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID == 0 {
		for _, it := range r.s.cartItems {
			if it.UserID == item.UserID && it.ProductID == item.ProductID {
				return repo.ErrDuplicate
			}
		}
		item.ID = r.s.id()
		r.s.cartItems[item.ID] = *item
		return nil
	}
	if _, ok := r.s.cartItems[item.ID]; !ok {
		return repo.ErrNotFound
	}
	r.s.cartItems[item.ID] = *item
	return nil
}

func (r cartItems) DeleteByID(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.cartItems[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.cartItems, id)
	return nil
}

func (r cartItems) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, it := range r.s.cartItems {
		if it.UserID == userID {
			delete(r.s.cartItems, id)
			n++
		}
	}
	return n, nil
}

// ---- orders

type orders struct{ s *Store }

func (r orders) Create(ctx context.Context, o *model.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.ID = r.s.id()
	r.s.orders[o.ID] = *o
	return nil
}

func (r orders) FindByID(ctx context.Context, id int64) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r orders) FindByIDForUpdate(ctx context.Context, id int64) (model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r orders) FindPendingByUserID(ctx context.Context, userID int64) (model.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.UserID == userID && o.Status == model.OrderStatusPending {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (r orders) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	r.s.orders[id] = o
	return nil
}

// ---- payments

type payments struct{ s *Store }

func (r payments) Create(ctx context.Context, p *model.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.PaymentCreateErr != nil {
		return r.s.PaymentCreateErr
	}
	for _, other := range r.s.payments {
		if other.OrderID == p.OrderID {
			return repo.ErrDuplicate
		}
	}
	p.ID = r.s.id()
	r.s.payments[p.ID] = *p
	return nil
}

func (r payments) FindByID(ctx context.Context, id int64) (model.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return model.Payment{}, repo.ErrNotFound
	}
	return p, nil
}

func sorted[V any](m map[int64]V, id func(V) int64) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
