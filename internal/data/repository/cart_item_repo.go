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

type CartItemRepository interface {
	Create(ctx context.Context, item *entity.CartItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error)
	FindByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error)
	FindByCartID(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error)
	IncrementQuantity(ctx context.Context, id uuid.UUID, add int) (*entity.CartItem, error)
	Update(ctx context.Context, item *entity.CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCartID(ctx context.Context, cartID uuid.UUID) (int64, error)
}

type cartItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCartItemRepository(db database.PgxIface, log *zap.Logger) CartItemRepository {
	return &cartItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "cart_item")),
	}
}

// Create inserts a new cart item. The unique index on (cart_id, product_id)
// turns a concurrent second add of the same product into ErrDuplicate;
// the service retries it as a quantity update.
func (cir *cartItemRepository) Create(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, unit_price,
		                        subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := cir.db.Exec(ctx, query,
		item.ID,
		item.CartID,
		item.ProductID,
		item.Quantity,
		item.UnitPrice,
		item.Subtotal,
		item.CreatedAt,
		item.UpdatedAt,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		cir.log.Error("Failed to create cart item",
			zap.Error(err),
			zap.String("cart_id", item.CartID.String()),
			zap.String("product_id", item.ProductID.String()),
		)
		return fmt.Errorf("create cart item: %w", err)
	}

	return nil
}

func (cir *cartItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, subtotal,
		       created_at, updated_at
		FROM cart_items
		WHERE id = $1
	`

	var item entity.CartItem
	err := cir.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPrice,
		&item.Subtotal,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cir.log.Error("Failed to find cart item by ID",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return nil, fmt.Errorf("find cart item by ID %s: %w", id.String(), err)
	}

	return &item, nil
}

func (cir *cartItemRepository) FindByCartAndProduct(ctx context.Context, cartID, productID uuid.UUID) (*entity.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, quantity, unit_price, subtotal,
		       created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`

	var item entity.CartItem
	err := cir.db.QueryRow(ctx, query, cartID, productID).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPrice,
		&item.Subtotal,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cir.log.Error("Failed to find cart item",
			zap.Error(err),
			zap.String("cart_id", cartID.String()),
			zap.String("product_id", productID.String()),
		)
		return nil, fmt.Errorf("find cart item: %w", err)
	}

	return &item, nil
}

// FindByCartID lists a cart's items joined with the product columns the
// cart view needs. Related data is fetched explicitly here, never lazily.
func (cir *cartItemRepository) FindByCartID(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.unit_price,
		       ci.subtotal, ci.created_at, ci.updated_at, p.title, p.image
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at
	`

	rows, err := cir.db.Query(ctx, query, cartID)
	if err != nil {
		cir.log.Error("Failed to get cart items",
			zap.Error(err),
			zap.String("cart_id", cartID.String()),
		)
		return nil, fmt.Errorf("find items for cart %s: %w", cartID.String(), err)
	}
	defer rows.Close()

	var items []*entity.CartItem
	for rows.Next() {
		var item entity.CartItem
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.ProductTitle,
			&item.ProductImage,
		)
		if err != nil {
			cir.log.Error("Failed to scan cart item row", zap.Error(err))
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		cir.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate cart item rows: %w", err)
	}

	return items, nil
}

// IncrementQuantity bumps a row's quantity by add and recomputes the
// subtotal in the same statement. The arithmetic happens in the database
// so concurrent increments serialize on the row instead of overwriting
// each other's reads.
func (cir *cartItemRepository) IncrementQuantity(ctx context.Context, id uuid.UUID, add int) (*entity.CartItem, error) {
	query := `
		UPDATE cart_items
		SET quantity = quantity + $2,
		    subtotal = unit_price * (quantity + $2),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, cart_id, product_id, quantity, unit_price, subtotal,
		          created_at, updated_at
	`

	var item entity.CartItem
	err := cir.db.QueryRow(ctx, query, id, add).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPrice,
		&item.Subtotal,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		cir.log.Error("Failed to increment cart item quantity",
			zap.Error(err),
			zap.String("item_id", id.String()),
			zap.Int("add", add),
		)
		return nil, fmt.Errorf("increment cart item %s: %w", id.String(), err)
	}

	return &item, nil
}

func (cir *cartItemRepository) Update(ctx context.Context, item *entity.CartItem) error {
	query := `
		UPDATE cart_items
		SET quantity = $2, subtotal = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := cir.db.Exec(ctx, query,
		item.ID,
		item.Quantity,
		item.Subtotal,
		item.UpdatedAt,
	)

	if err != nil {
		cir.log.Error("Failed to update cart item",
			zap.Error(err),
			zap.String("item_id", item.ID.String()),
		)
		return fmt.Errorf("update cart item %s: %w", item.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", item.ID.String())
	}

	return nil
}

func (cir *cartItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cart_items WHERE id = $1`

	result, err := cir.db.Exec(ctx, query, id)
	if err != nil {
		cir.log.Error("Failed to delete cart item",
			zap.Error(err),
			zap.String("item_id", id.String()),
		)
		return fmt.Errorf("delete cart item %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cart item %s not found", id.String())
	}

	return nil
}

// DeleteByCartID empties a cart and reports how many items were removed
func (cir *cartItemRepository) DeleteByCartID(ctx context.Context, cartID uuid.UUID) (int64, error) {
	query := `DELETE FROM cart_items WHERE cart_id = $1`

	result, err := cir.db.Exec(ctx, query, cartID)
	if err != nil {
		cir.log.Error("Failed to clear cart items",
			zap.Error(err),
			zap.String("cart_id", cartID.String()),
		)
		return 0, fmt.Errorf("clear items for cart %s: %w", cartID.String(), err)
	}

	return result.RowsAffected(), nil
}
