package wire

import (
	"campus-shop/internal/adaptor"
	"campus-shop/internal/data/repository"
	"campus-shop/pkg/middleware"
	"campus-shop/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) {
	// Public routes
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// Protected routes
	protected := r.With(middleware.Auth(tokens, repo.User, log))
	protected.Get("/api/auth/me", authHandler.Me)
	protected.Put("/api/auth/me", authHandler.UpdateMe)
}
