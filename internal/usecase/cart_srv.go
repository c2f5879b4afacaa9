package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-shop/internal/data/entity"
	"campus-shop/internal/data/repository"
	"campus-shop/internal/dto/request"
	"campus-shop/internal/dto/response"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *request.AddItemRequest) (*response.CartItemResponse, error)
	UpdateItem(ctx context.Context, userID uuid.UUID, itemID string, req *request.UpdateItemRequest) (*response.CartItemResponse, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, itemID string) error
	ClearCart(ctx context.Context, userID uuid.UUID) (*response.CartClearResponse, error)
	Checkout(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error)
}

type cartService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCartService(repo *repository.Repository, log *zap.Logger) CartService {
	return &cartService{
		repo: repo,
		log:  log.With(zap.String("service", "cart")),
	}
}

// GetCart returns the user's active cart, or an empty view when none
// exists. Reading never persists a cart; only add-to-cart does.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	cart, err := s.repo.Cart.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find active cart: %w", err)
	}
	if cart == nil {
		return response.EmptyCartResponse(userID), nil
	}

	items, err := s.repo.CartItem.FindByCartID(ctx, cart.ID)
	if err != nil {
		s.log.Error("Failed to load cart items",
			zap.Error(err),
			zap.String("cart_id", cart.ID.String()),
		)
		return nil, fmt.Errorf("load cart items: %w", err)
	}

	return response.CartToResponse(cart, items), nil
}

func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *request.AddItemRequest) (*response.CartItemResponse, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	// Only active products can be added
	product, err := s.repo.Product.FindByID(ctx, productID)
	if err != nil {
		s.log.Error("Failed to look up product",
			zap.Error(err),
			zap.String("product_id", req.ProductID),
		)
		return nil, fmt.Errorf("look up product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	cart, err := s.getOrCreateActiveCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Re-adding a product bumps the quantity on the existing row
	existing, err := s.repo.CartItem.FindByCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	if existing != nil {
		return s.incrementItem(ctx, existing.ID, req.Quantity, product)
	}

	now := time.Now()
	item := &entity.CartItem{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  req.Quantity,
		UnitPrice: product.Price, // price snapshot at add-time
	}
	item.ComputeSubtotal()

	if err := s.repo.CartItem.Create(ctx, item); err != nil {
		// A concurrent add of the same product won the insert; retry as
		// an update against the winner's row.
		if errors.Is(err, repository.ErrDuplicate) {
			winner, ferr := s.repo.CartItem.FindByCartAndProduct(ctx, cart.ID, productID)
			if ferr != nil {
				return nil, fmt.Errorf("find cart item after conflict: %w", ferr)
			}
			if winner == nil {
				return nil, fmt.Errorf("cart item vanished after conflict")
			}
			return s.incrementItem(ctx, winner.ID, req.Quantity, product)
		}

		s.log.Error("Failed to create cart item",
			zap.Error(err),
			zap.String("cart_id", cart.ID.String()),
			zap.String("product_id", req.ProductID),
		)
		return nil, fmt.Errorf("add cart item: %w", err)
	}

	s.log.Info("Item added to cart",
		zap.String("cart_id", cart.ID.String()),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)

	item.ProductTitle = product.Title
	item.ProductImage = product.Image

	resp := response.CartItemToResponse(item)
	return &resp, nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID uuid.UUID, itemID string, req *request.UpdateItemRequest) (*response.CartItemResponse, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	id, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("cart item %w", ErrNotFound)
	}

	cart, item, err := s.findOwnedItem(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	item.Quantity = req.Quantity
	item.ComputeSubtotal()
	item.UpdatedAt = time.Now()

	if err := s.repo.CartItem.Update(ctx, item); err != nil {
		s.log.Error("Failed to update cart item",
			zap.Error(err),
			zap.String("item_id", itemID),
		)
		return nil, fmt.Errorf("update cart item: %w", err)
	}

	s.log.Info("Cart item updated",
		zap.String("cart_id", cart.ID.String()),
		zap.String("item_id", itemID),
		zap.Int("quantity", req.Quantity),
	)

	resp := response.CartItemToResponse(item)
	return &resp, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, itemID string) error {
	id, err := uuid.Parse(itemID)
	if err != nil {
		return fmt.Errorf("cart item %w", ErrNotFound)
	}

	cart, item, err := s.findOwnedItem(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := s.repo.CartItem.Delete(ctx, item.ID); err != nil {
		s.log.Error("Failed to remove cart item",
			zap.Error(err),
			zap.String("item_id", itemID),
		)
		return fmt.Errorf("remove cart item: %w", err)
	}

	s.log.Info("Cart item removed",
		zap.String("cart_id", cart.ID.String()),
		zap.String("item_id", itemID),
	)

	return nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) (*response.CartClearResponse, error) {
	cart, err := s.repo.Cart.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find active cart: %w", err)
	}
	if cart == nil {
		// Nothing to clear
		return &response.CartClearResponse{ItemsRemoved: 0}, nil
	}

	removed, err := s.repo.CartItem.DeleteByCartID(ctx, cart.ID)
	if err != nil {
		s.log.Error("Failed to clear cart",
			zap.Error(err),
			zap.String("cart_id", cart.ID.String()),
		)
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	s.log.Info("Cart cleared",
		zap.String("cart_id", cart.ID.String()),
		zap.Int64("items_removed", removed),
	)

	return &response.CartClearResponse{ItemsRemoved: removed}, nil
}

// Checkout soft-closes the active cart and returns its final totals.
// The next add-to-cart lazily opens a fresh cart.
func (s *cartService) Checkout(ctx context.Context, userID uuid.UUID) (*response.CartResponse, error) {
	cart, err := s.repo.Cart.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find active cart: %w", err)
	}
	if cart == nil {
		return nil, fmt.Errorf("active cart %w", ErrNotFound)
	}

	items, err := s.repo.CartItem.FindByCartID(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("load cart items: %w", err)
	}

	if err := s.repo.Cart.Close(ctx, cart.ID); err != nil {
		s.log.Error("Failed to close cart",
			zap.Error(err),
			zap.String("cart_id", cart.ID.String()),
		)
		return nil, fmt.Errorf("close cart: %w", err)
	}
	cart.IsActive = false
	cart.UpdatedAt = time.Now()

	s.log.Info("Cart checked out",
		zap.String("cart_id", cart.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(items)),
	)

	return response.CartToResponse(cart, items), nil
}

// ==================== HELPER METHODS ====================

// getOrCreateActiveCart returns the user's active cart, lazily creating
// one with zero tax and shipping. Creation relies on the partial unique
// index: if two first-add requests race, the loser's insert fails with
// ErrDuplicate and it re-selects the winner's cart.
func (s *cartService) getOrCreateActiveCart(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	cart, err := s.repo.Cart.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find active cart: %w", err)
	}
	if cart != nil {
		return cart, nil
	}

	now := time.Now()
	cart = &entity.Cart{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userID,
		Tax:      decimal.Zero,
		Shipping: decimal.Zero,
		IsActive: true,
	}

	if err := s.repo.Cart.Create(ctx, cart); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			cart, err = s.repo.Cart.FindActiveByUserID(ctx, userID)
			if err != nil {
				return nil, fmt.Errorf("find active cart after conflict: %w", err)
			}
			if cart == nil {
				return nil, fmt.Errorf("active cart vanished after conflict")
			}
			return cart, nil
		}

		s.log.Error("Failed to create cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("create cart: %w", err)
	}

	s.log.Info("Cart created",
		zap.String("cart_id", cart.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return cart, nil
}

// findOwnedItem loads an item and checks it belongs to the caller's
// active cart. An item in someone else's cart, or in a closed cart,
// reads as not found.
func (s *cartService) findOwnedItem(ctx context.Context, userID, itemID uuid.UUID) (*entity.Cart, *entity.CartItem, error) {
	item, err := s.repo.CartItem.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("find cart item: %w", err)
	}
	if item == nil {
		return nil, nil, fmt.Errorf("cart item %w", ErrNotFound)
	}

	cart, err := s.repo.Cart.FindByID(ctx, item.CartID)
	if err != nil {
		return nil, nil, fmt.Errorf("find cart: %w", err)
	}
	if cart == nil || cart.UserID != userID || !cart.IsActive {
		return nil, nil, fmt.Errorf("cart item %w", ErrNotFound)
	}

	return cart, item, nil
}

// incrementItem bumps an existing row's quantity. The arithmetic runs in
// the database, so concurrent adds of the same product never overwrite
// each other's increments.
func (s *cartService) incrementItem(ctx context.Context, itemID uuid.UUID, add int, product *entity.Product) (*response.CartItemResponse, error) {
	item, err := s.repo.CartItem.IncrementQuantity(ctx, itemID, add)
	if err != nil {
		s.log.Error("Failed to increment cart item",
			zap.Error(err),
			zap.String("item_id", itemID.String()),
		)
		return nil, fmt.Errorf("increment cart item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("cart item %w", ErrNotFound)
	}

	s.log.Info("Cart item quantity increased",
		zap.String("item_id", item.ID.String()),
		zap.Int("quantity", item.Quantity),
	)

	item.ProductTitle = product.Title
	item.ProductImage = product.Image

	resp := response.CartItemToResponse(item)
	return &resp, nil
}
