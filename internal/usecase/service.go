package usecase

import (
	"campus-shop/internal/data/repository"
	"campus-shop/pkg/token"
	"campus-shop/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Product ProductService
	Cart    CartService
}

func NewService(repo *repository.Repository, tokens *token.Manager, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, tokens, config, log),
		Product: NewProductService(repo, log),
		Cart:    NewCartService(repo, log),
	}
}
