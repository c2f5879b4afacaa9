package usecase

import (
	"context"
	"fmt"
	"time"

	"campus-shop/internal/data/entity"
	"campus-shop/internal/data/repository"
	"campus-shop/internal/dto/request"
	"campus-shop/internal/dto/response"
	"campus-shop/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductService interface {
	GetProducts(ctx context.Context, req *request.ProductListRequest) (*response.ProductListResponse, error)
	GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error)
	GetCategories(ctx context.Context) (*response.CategoriesResponse, error)
	CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type productService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewProductService(repo *repository.Repository, log *zap.Logger) ProductService {
	return &productService{
		repo: repo,
		log:  log.With(zap.String("service", "product")),
	}
}

func (s *productService) GetProducts(ctx context.Context, req *request.ProductListRequest) (*response.ProductListResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Product list validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	filter := repository.ProductFilter{
		Category: req.Category,
		Search:   req.Search,
	}
	if req.MinPrice != nil {
		min := decimal.NewFromFloat(*req.MinPrice)
		filter.MinPrice = &min
	}
	if req.MaxPrice != nil {
		max := decimal.NewFromFloat(*req.MaxPrice)
		filter.MaxPrice = &max
	}

	limit := req.Limit()
	offset := req.Offset()

	// A page past the end is not an error, it just comes back empty
	products, err := s.repo.Product.FindAll(ctx, filter, limit, offset)
	if err != nil {
		s.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("page_size", req.PageSize),
		)
		return nil, fmt.Errorf("get products: %w", err)
	}

	total, err := s.repo.Product.CountAll(ctx, filter)
	if err != nil {
		s.log.Error("Failed to count products", zap.Error(err))
		return nil, fmt.Errorf("count products: %w", err)
	}

	productResponses := make([]response.ProductResponse, len(products))
	for i, product := range products {
		productResponses[i] = response.ProductToResponse(product)
	}

	s.log.Info("Products retrieved",
		zap.Int("count", len(products)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return &response.ProductListResponse{
		Products:   productResponses,
		Total:      total,
		Page:       req.Page,
		PageSize:   limit,
		TotalPages: utils.CalculateTotalPages(total, limit),
	}, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		s.log.Warn("Invalid product ID format", zap.String("product_id", productID))
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get product by ID",
			zap.Error(err),
			zap.String("product_id", productID),
		)
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	if product == nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) GetCategories(ctx context.Context) (*response.CategoriesResponse, error) {
	categories, err := s.repo.Product.Categories(ctx)
	if err != nil {
		s.log.Error("Failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("get categories: %w", err)
	}

	return &response.CategoriesResponse{Categories: categories}, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create product validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || !price.IsPositive() {
		return nil, newValidationError(map[string]string{"Price": "Must be a positive decimal number"})
	}

	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		Price:       price,
		Stock:       req.Stock,
		Category:    req.Category,
		Image:       req.Image,
		RatingRate:  req.RatingRate,
		IsActive:    true,
	}
	if req.RatingCount != nil {
		product.RatingCount = *req.RatingCount
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		s.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("title", product.Title),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update product validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %w", ErrNotFound)
	}

	// Apply partial updates only for provided fields
	updated := false

	if req.Title != nil && *req.Title != product.Title {
		product.Title = *req.Title
		updated = true
	}

	if req.Description != nil {
		product.Description = req.Description
		updated = true
	}

	if req.Price != nil {
		price, err := decimal.NewFromString(*req.Price)
		if err != nil || !price.IsPositive() {
			return nil, newValidationError(map[string]string{"Price": "Must be a positive decimal number"})
		}
		product.Price = price
		updated = true
	}

	if req.Stock != nil && *req.Stock != product.Stock {
		product.Stock = *req.Stock
		updated = true
	}

	if req.Category != nil && *req.Category != product.Category {
		product.Category = *req.Category
		updated = true
	}

	if req.Image != nil {
		product.Image = req.Image
		updated = true
	}

	if req.RatingRate != nil {
		product.RatingRate = req.RatingRate
		updated = true
	}

	if req.RatingCount != nil && *req.RatingCount != product.RatingCount {
		product.RatingCount = *req.RatingCount
		updated = true
	}

	if updated {
		product.UpdatedAt = time.Now()
		if err := s.repo.Product.Update(ctx, product); err != nil {
			s.log.Error("Failed to update product",
				zap.Error(err),
				zap.String("product_id", productID),
			)
			return nil, fmt.Errorf("update product: %w", err)
		}
	}

	s.log.Info("Product updated",
		zap.String("product_id", productID),
		zap.Bool("was_updated", updated),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("product %w", ErrNotFound)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return fmt.Errorf("product %w", ErrNotFound)
	}

	// Soft-deactivate: cart items may still reference the row
	if err := s.repo.Product.Deactivate(ctx, id); err != nil {
		s.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", productID),
		)
		return fmt.Errorf("delete product: %w", err)
	}

	s.log.Info("Product deleted", zap.String("product_id", productID))
	return nil
}
