package usecase

import (
	"context"
	"testing"
	"time"

	"campus-shop/internal/data/entity"
	"campus-shop/internal/data/repository"
	"campus-shop/internal/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProductFixture() (ProductService, *repository.Repository) {
	repo := newFakeRepository()
	return NewProductService(repo, zap.NewNop()), repo
}

func seedProduct(t *testing.T, repo *repository.Repository, title, category, price string) uuid.UUID {
	t.Helper()
	now := time.Now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Stock:    10,
		Category: category,
		IsActive: true,
	}
	require.NoError(t, repo.Product.Create(context.Background(), product))
	return product.ID
}

func TestGetProductsPagination(t *testing.T) {
	svc, repo := newProductFixture()
	ctx := context.Background()

	seedProduct(t, repo, "USB-C Cable", "electronics", "9.99")
	seedProduct(t, repo, "Notebook", "stationery", "3.49")
	seedProduct(t, repo, "Headphones", "electronics", "59.99")

	page1, err := svc.GetProducts(ctx, &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Len(t, page1.Products, 2)
	assert.Equal(t, int64(3), page1.Total)
	assert.Equal(t, 2, page1.TotalPages)

	page2, err := svc.GetProducts(ctx, &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 2, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Len(t, page2.Products, 1)
	assert.Equal(t, int64(3), page2.Total)

	// A page past the end is empty, not an error
	page3, err := svc.GetProducts(ctx, &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 3, PageSize: 2},
	})
	require.NoError(t, err)
	assert.Empty(t, page3.Products)
	assert.Equal(t, int64(3), page3.Total)
	assert.Equal(t, 2, page3.TotalPages)
}

func TestGetProductsFilters(t *testing.T) {
	svc, repo := newProductFixture()
	ctx := context.Background()

	seedProduct(t, repo, "USB-C Cable", "electronics", "9.99")
	seedProduct(t, repo, "Wireless Headphones", "electronics", "59.99")
	seedProduct(t, repo, "Notebook", "stationery", "3.49")

	category := "Electronics"
	byCategory, err := svc.GetProducts(ctx, &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PageSize: 10},
		Category:         &category,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byCategory.Total)

	search := "headphones"
	bySearch, err := svc.GetProducts(ctx, &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PageSize: 10},
		Search:           &search,
	})
	require.NoError(t, err)
	require.Len(t, bySearch.Products, 1)
	assert.Equal(t, "Wireless Headphones", bySearch.Products[0].Title)

	minPrice, maxPrice := 5.0, 20.0
	byPrice, err := svc.GetProducts(ctx, &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PageSize: 10},
		MinPrice:         &minPrice,
		MaxPrice:         &maxPrice,
	})
	require.NoError(t, err)
	require.Len(t, byPrice.Products, 1)
	assert.Equal(t, "USB-C Cable", byPrice.Products[0].Title)
}

func TestGetProductByID(t *testing.T) {
	svc, repo := newProductFixture()
	ctx := context.Background()

	id := seedProduct(t, repo, "Notebook", "stationery", "3.49")

	product, err := svc.GetProductByID(ctx, id.String())
	require.NoError(t, err)
	assert.Equal(t, "Notebook", product.Title)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("3.49")))

	_, err = svc.GetProductByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	// A malformed ID reads as not found, not as a server error
	_, err = svc.GetProductByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCategories(t *testing.T) {
	svc, repo := newProductFixture()
	ctx := context.Background()

	empty, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.Categories)
	assert.Empty(t, empty.Categories)

	seedProduct(t, repo, "Headphones", "electronics", "59.99")
	seedProduct(t, repo, "Cable", "electronics", "9.99")
	seedProduct(t, repo, "Notebook", "stationery", "3.49")
	hidden := seedProduct(t, repo, "Old Lamp", "furniture", "20.00")
	require.NoError(t, repo.Product.Deactivate(ctx, hidden))

	resp, err := svc.GetCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "stationery"}, resp.Categories)
}

func TestCreateProduct(t *testing.T) {
	svc, _ := newProductFixture()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &request.ProductRequest{
		Title:    "Desk Lamp",
		Price:    "24.90",
		Stock:    5,
		Category: "furniture",
	})
	require.NoError(t, err)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("24.90")))

	got, err := svc.GetProductByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", got.Title)
}

func TestCreateProductRejectsBadPrice(t *testing.T) {
	svc, _ := newProductFixture()
	ctx := context.Background()

	for _, price := range []string{"free", "-1.00", "0"} {
		_, err := svc.CreateProduct(ctx, &request.ProductRequest{
			Title:    "Desk Lamp",
			Price:    price,
			Stock:    5,
			Category: "furniture",
		})
		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr, "price %q", price)
	}
}

func TestUpdateProductPartial(t *testing.T) {
	svc, repo := newProductFixture()
	ctx := context.Background()

	id := seedProduct(t, repo, "Notebook", "stationery", "3.49")

	newPrice := "4.99"
	newStock := 42
	updated, err := svc.UpdateProduct(ctx, id.String(), &request.ProductUpdateRequest{
		Price: &newPrice,
		Stock: &newStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Notebook", updated.Title)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("4.99")))
	assert.Equal(t, 42, updated.Stock)

	_, err = svc.UpdateProduct(ctx, uuid.NewString(), &request.ProductUpdateRequest{Stock: &newStock})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProductHidesFromCatalog(t *testing.T) {
	svc, repo := newProductFixture()
	ctx := context.Background()

	id := seedProduct(t, repo, "Notebook", "stationery", "3.49")
	require.NoError(t, svc.DeleteProduct(ctx, id.String()))

	_, err := svc.GetProductByID(ctx, id.String())
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.GetProducts(ctx, &request.ProductListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), list.Total)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, id.String()), ErrNotFound)
}
