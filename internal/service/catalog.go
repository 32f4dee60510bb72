package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/repo"
	"github.com/kissaten/cafepos/internal/transport"
)

// CatalogService fronts the product store: browsing for the counter UI,
// availability and stock for the checkout, CRUD for administration.
type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return s.Repo.ListProductsByCategory(ctx, category)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.Name == "" || p.Category == "" {
		return fmt.Errorf("%w: name and category are required", ErrValidation)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	return s.Repo.CreateProduct(ctx, p)
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id int) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}

	p, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

// DeleteProduct removes a product. Products referenced by order items are
// protected by the restrict constraint and surface as a conflict.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	err := s.Repo.DeleteProduct(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("product %d is referenced by orders: %w", id, ErrConflict)
	}
	return err
}

// UpdateStock overwrites the stock level (delivery intake, cycle count).
func (s *CatalogService) UpdateStock(ctx context.Context, id, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	err := s.Repo.SetStock(ctx, id, quantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return err
}

// IsAvailable reports whether an active product can cover the requested
// quantity right now.
func (s *CatalogService) IsAvailable(ctx context.Context, id, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	return s.Repo.IsAvailable(ctx, id, quantity)
}
