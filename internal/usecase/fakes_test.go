package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"campus-shop/internal/data/entity"
	"campus-shop/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes. They enforce the same uniqueness rules as
// the real schema (unique email, one active cart per user, one row per
// cart/product pair) so the services' conflict-retry paths are exercised
// for real, including under concurrent callers.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		out := u
		return &out, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID)
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.IsActive = false
	f.users[id] = u
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	order    []uuid.UUID
	products map[uuid.UUID]entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]entity.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ID] = *product
	f.order = append(f.order, product.ID)
	return nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.products[id]; ok && p.IsActive {
		out := p
		return &out, nil
	}
	return nil, nil
}

func (f *fakeProductRepo) matches(p entity.Product, filter repository.ProductFilter) bool {
	if !p.IsActive {
		return false
	}
	if filter.Category != nil &&
		!strings.Contains(strings.ToLower(p.Category), strings.ToLower(*filter.Category)) {
		return false
	}
	if filter.Search != nil {
		needle := strings.ToLower(*filter.Search)
		title := strings.ToLower(p.Title)
		description := ""
		if p.Description != nil {
			description = strings.ToLower(*p.Description)
		}
		if !strings.Contains(title, needle) && !strings.Contains(description, needle) {
			return false
		}
	}
	if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
		return false
	}
	if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
		return false
	}
	return true
}

func (f *fakeProductRepo) FindAll(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*entity.Product
	for _, id := range f.order {
		p := f.products[id]
		if f.matches(p, filter) {
			out := p
			matched = append(matched, &out)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeProductRepo) CountAll(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.products {
		if f.matches(p, filter) {
			count++
		}
	}
	return count, nil
}

func (f *fakeProductRepo) Categories(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[string]bool)
	for _, p := range f.products {
		if p.IsActive {
			seen[p.Category] = true
		}
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[product.ID]; !ok {
		return fmt.Errorf("product %s not found", product.ID)
	}
	f.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return fmt.Errorf("product %s not found", id)
	}
	p.IsActive = false
	f.products[id] = p
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[uuid.UUID]entity.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uuid.UUID]entity.Cart)}
}

func (f *fakeCartRepo) Create(ctx context.Context, cart *entity.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cart.IsActive {
		for _, c := range f.carts {
			if c.UserID == cart.UserID && c.IsActive {
				return repository.ErrDuplicate
			}
		}
	}
	f.carts[cart.ID] = *cart
	return nil
}

func (f *fakeCartRepo) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.carts {
		if c.UserID == userID && c.IsActive {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeCartRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.carts[id]; ok {
		out := c
		return &out, nil
	}
	return nil, nil
}

func (f *fakeCartRepo) Update(ctx context.Context, cart *entity.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.carts[cart.ID]; !ok {
		return fmt.Errorf("cart %s not found", cart.ID)
	}
	f.carts[cart.ID] = *cart
	return nil
}

func (f *fakeCartRepo) Close(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.carts[id]
	if !ok || !c.IsActive {
		return fmt.Errorf("cart %s not found or already closed", id)
	}
	c.IsActive = false
	f.carts[id] = c
	return nil
}

type fakeCartItemRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]entity.CartItem
}

func newFakeCartItemRepo() *fakeCartItemRepo {
	return &fakeCartItemRepo{items: make(map[uuid.UUID]entity.CartItem)}
}

func (f *fakeCartItemRepo) Create(ctx context.Context, item *entity.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID {
			return repository.ErrDuplicate
		}
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeCartItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[id]; ok {
		out := item
		return &out, nil
	}
	return nil, nil
}

func (f *fakeCartItemRepo) FindByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.items {
		if item.CartID == cartID && item.ProductID == productID {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeCartItemRepo) FindByCartID(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var items []*entity.CartItem
	for _, item := range f.items {
		if item.CartID == cartID {
			out := item
			items = append(items, &out)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (f *fakeCartItemRepo) IncrementQuantity(ctx context.Context, id uuid.UUID, add int) (*entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	item.Quantity += add
	item.ComputeSubtotal()
	item.UpdatedAt = time.Now()
	f.items[id] = item
	out := item
	return &out, nil
}

func (f *fakeCartItemRepo) Update(ctx context.Context, item *entity.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return fmt.Errorf("cart item %s not found", item.ID)
	}
	f.items[item.ID] = *item
	return nil
}

func (f *fakeCartItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return fmt.Errorf("cart item %s not found", id)
	}
	delete(f.items, id)
	return nil
}

func (f *fakeCartItemRepo) DeleteByCartID(ctx context.Context, cartID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for id, item := range f.items {
		if item.CartID == cartID {
			delete(f.items, id)
			removed++
		}
	}
	return removed, nil
}

func newFakeRepository() *repository.Repository {
	return &repository.Repository{
		User:     newFakeUserRepo(),
		Product:  newFakeProductRepo(),
		Cart:     newFakeCartRepo(),
		CartItem: newFakeCartItemRepo(),
	}
}
