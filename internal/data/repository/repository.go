package repository

import (
	"errors"

	"campus-shop/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrDuplicate is returned when an insert violates a uniqueness
// constraint (duplicate email, second active cart, second item row for
// the same product). Callers decide whether to retry as an update.
var ErrDuplicate = errors.New("duplicate record")

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type Repository struct {
	User     UserRepository
	Product  ProductRepository
	Cart     CartRepository
	CartItem CartItemRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Product:  NewProductRepository(db, log),
		Cart:     NewCartRepository(db, log),
		CartItem: NewCartItemRepository(db, log),
	}
}
