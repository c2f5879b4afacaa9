package wire

import (
	"campus-shop/internal/adaptor"
	"campus-shop/internal/data/repository"
	"campus-shop/pkg/middleware"
	"campus-shop/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// Public catalog routes. The categories route is registered before
	// the {id} route so chi matches it first.
	r.Get("/api/products", productHandler.GetProducts)
	r.Get("/api/products/categories/list", productHandler.GetCategories)
	r.Get("/api/products/{id}", productHandler.GetProductByID)

	// Admin routes
	admin := r.With(
		middleware.Auth(tokens, repo.User, log),
		middleware.Admin(log),
	)
	admin.Post("/api/products", productHandler.CreateProduct)
	admin.Put("/api/products/{id}", productHandler.UpdateProduct)
	admin.Delete("/api/products/{id}", productHandler.DeleteProduct)
}
