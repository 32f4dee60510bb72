package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/transport"
)

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("category ASC").Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var items []models.Product
	err := r.DB.WithContext(ctx).
		Where("is_active = ? AND category = ?", true, category).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &cats).Error
	if err != nil {
		return nil, err
	}
	return cats, nil
}

// GetProduct returns an active product by id.
func (r *GormRepo) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	err := r.DB.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id int) (*models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.ImageURL != nil {
		p.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}

	if err := r.DB.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id int) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetStock overwrites the stock level and refreshes updated_at.
func (r *GormRepo) SetStock(ctx context.Context, id, quantity int) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock_quantity": quantity,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TryDecrementStock decrements stock only when enough is on hand. The
// check and the write are one statement, so concurrent checkouts cannot
// jointly oversell. Returns false when the product is missing or short.
func (r *GormRepo) TryDecrementStock(ctx context.Context, id, quantity int) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// IsAvailable reports whether an active product has at least quantity in
// stock.
func (r *GormRepo) IsAvailable(ctx context.Context, id, quantity int) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND stock_quantity >= ?", id, true, quantity).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
