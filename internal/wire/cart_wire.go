package wire

import (
	"campus-shop/internal/adaptor"
	"campus-shop/internal/data/repository"
	"campus-shop/pkg/middleware"
	"campus-shop/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCart(
	r chi.Router,
	cartHandler *adaptor.CartHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// Every cart route operates on the caller's active cart
	protected := r.With(middleware.Auth(tokens, repo.User, log))

	protected.Get("/api/cart", cartHandler.GetCart)
	protected.Post("/api/cart/items", cartHandler.AddItem)
	protected.Put("/api/cart/items/{itemID}", cartHandler.UpdateItem)
	protected.Delete("/api/cart/items/{itemID}", cartHandler.RemoveItem)
	protected.Delete("/api/cart", cartHandler.ClearCart)
	protected.Post("/api/cart/checkout", cartHandler.Checkout)
}
