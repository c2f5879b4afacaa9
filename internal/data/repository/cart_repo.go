package repository

import (
	"context"
	"fmt"

	"campus-shop/internal/data/entity"
	"campus-shop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)
	Update(ctx context.Context, cart *entity.Cart) error
	Close(ctx context.Context, id uuid.UUID) error
}

type cartRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartRepository(db database.PgxIface, log *zap.Logger) CartRepository {
	return &cartRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart")),
	}
}

// Create inserts a new active cart. The partial unique index
// ux_carts_user_active makes a second active cart for the same user fail
// with ErrDuplicate; callers re-select the winner's cart instead of
// trusting a prior existence check.
func (cr *cartRepository) Create(ctx context.Context, cart *entity.Cart) error {
	query := `
		INSERT INTO carts (id, user_id, tax, shipping, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := cr.db.Exec(ctx, query,
		cart.ID,
		cart.UserID,
		cart.Tax,
		cart.Shipping,
		cart.IsActive,
		cart.CreatedAt,
		cart.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		cr.log.Error("Failed to create cart",
			zap.Error(err),
			zap.String("user_id", cart.UserID.String()),
		)
		return fmt.Errorf("create cart for user %s: %w", cart.UserID.String(), err)
	}

	return nil
}

func (cr *cartRepository) FindActiveByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	query := `
		SELECT id, user_id, tax, shipping, is_active, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND is_active = TRUE
	`

	var cart entity.Cart
	err := cr.db.QueryRow(ctx, query, userID).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Tax,
		&cart.Shipping,
		&cart.IsActive,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cr.log.Error("Failed to find active cart",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find active cart for user %s: %w", userID.String(), err)
	}

	return &cart, nil
}

func (cr *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	query := `
		SELECT id, user_id, tax, shipping, is_active, created_at, updated_at
		FROM carts
		WHERE id = $1
	`

	var cart entity.Cart
	err := cr.db.QueryRow(ctx, query, id).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Tax,
		&cart.Shipping,
		&cart.IsActive,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cr.log.Error("Failed to find cart by ID",
			zap.Error(err),
			zap.String("cart_id", id.String()),
		)
		return nil, fmt.Errorf("find cart by ID %s: %w", id.String(), err)
	}

	return &cart, nil
}

func (cr *cartRepository) Update(ctx context.Context, cart *entity.Cart) error {
	query := `
		UPDATE carts
		SET tax = $2, shipping = $3, is_active = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := cr.db.Exec(ctx, query,
		cart.ID,
		cart.Tax,
		cart.Shipping,
		cart.IsActive,
		cart.UpdatedAt,
	)

	if err != nil {
		cr.log.Error("Failed to update cart",
			zap.Error(err),
			zap.String("cart_id", cart.ID.String()),
		)
		return fmt.Errorf("update cart %s: %w", cart.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart %s not found", cart.ID.String())
	}

	return nil
}

// Close soft-closes a cart at checkout. Items stay attached to the
// closed cart; a later add-to-cart starts a fresh one.
func (cr *cartRepository) Close(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE carts SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`

	result, err := cr.db.Exec(ctx, query, id)
	if err != nil {
		cr.log.Error("Failed to close cart",
			zap.Error(err),
			zap.String("cart_id", id.String()),
		)
		return fmt.Errorf("close cart %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart %s not found or already closed", id.String())
	}

	cr.log.Info("Cart closed", zap.String("cart_id", id.String()))
	return nil
}
