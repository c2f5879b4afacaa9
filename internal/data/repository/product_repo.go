package repository

import (
	"context"
	"fmt"

	"campus-shop/internal/data/entity"
	"campus-shop/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductFilter narrows catalog queries. All set fields are conjunctive.
type ProductFilter struct {
	Category *string
	Search   *string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	CountAll(ctx context.Context, filter ProductFilter) (int64, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, product *entity.Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

func (pr *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, title, description, price, stock, category,
		                      image, rating_rate, rating_count, is_active,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := pr.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Stock,
		product.Category,
		product.Image,
		product.RatingRate,
		product.RatingCount,
		product.IsActive,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		pr.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("title", product.Title),
		)
		return fmt.Errorf("create product %s: %w", product.Title, err)
	}

	return nil
}

// FindByID only returns active products
func (pr *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	query := `
		SELECT id, title, description, price, stock, category,
		       image, rating_rate, rating_count, is_active, created_at, updated_at
		FROM products
		WHERE id = $1 AND is_active = TRUE
	`

	var product entity.Product
	err := pr.db.QueryRow(ctx, query, id).Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.Category,
		&product.Image,
		&product.RatingRate,
		&product.RatingCount,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		pr.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("find product by ID %s: %w", id.String(), err)
	}

	return &product, nil
}

// filterClause builds the shared WHERE clause for FindAll and CountAll so
// both always agree on which rows they cover.
func (pr *productRepository) filterClause(filter ProductFilter) (string, []any) {
	clause := ` WHERE is_active = TRUE`
	args := []any{}

	if filter.Category != nil {
		args = append(args, "%"+*filter.Category+"%")
		clause += fmt.Sprintf(" AND category ILIKE $%d", len(args))
	}

	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		clause += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", n, n)
	}

	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		clause += fmt.Sprintf(" AND price >= $%d", len(args))
	}

	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clause += fmt.Sprintf(" AND price <= $%d", len(args))
	}

	return clause, args
}

// FindAll retrieves a filtered, paginated slice of active products
func (pr *productRepository) FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entity.Product, error) {
	clause, args := pr.filterClause(filter)

	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT id, title, description, price, stock, category,
		       image, rating_rate, rating_count, is_active, created_at, updated_at
		FROM products
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, clause, len(args)-1, len(args))

	rows, err := pr.db.Query(ctx, query, args...)
	if err != nil {
		pr.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all products limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var product entity.Product
		err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Description,
			&product.Price,
			&product.Stock,
			&product.Category,
			&product.Image,
			&product.RatingRate,
			&product.RatingCount,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			pr.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, &product)
	}

	if err := rows.Err(); err != nil {
		pr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (pr *productRepository) CountAll(ctx context.Context, filter ProductFilter) (int64, error) {
	clause, args := pr.filterClause(filter)
	query := `SELECT COUNT(*) FROM products` + clause

	var count int64
	err := pr.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		pr.log.Error("Database error counting products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

// Categories lists the distinct categories of active products, sorted
func (pr *productRepository) Categories(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT category
		FROM products
		WHERE is_active = TRUE
		ORDER BY category
	`

	rows, err := pr.db.Query(ctx, query)
	if err != nil {
		pr.log.Error("Failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			pr.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		pr.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

func (pr *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET title = $2, description = $3, price = $4, stock = $5,
		    category = $6, image = $7, rating_rate = $8, rating_count = $9,
		    is_active = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := pr.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Stock,
		product.Category,
		product.Image,
		product.RatingRate,
		product.RatingCount,
		product.IsActive,
		product.UpdatedAt,
	)

	if err != nil {
		pr.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("update product %s: %w", product.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", product.ID.String())
	}

	return nil
}

// Deactivate soft-removes a product from the catalog. Rows stay behind
// because cart_items reference them with ON DELETE RESTRICT.
func (pr *productRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE products SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`

	result, err := pr.db.Exec(ctx, query, id)
	if err != nil {
		pr.log.Error("Failed to deactivate product",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("deactivate product %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s not found", id.String())
	}

	pr.log.Info("Product deactivated", zap.String("id", id.String()))
	return nil
}
