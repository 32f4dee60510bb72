package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kissaten/cafepos/internal/cart"
	"github.com/kissaten/cafepos/internal/models"
	"github.com/kissaten/cafepos/internal/repo"
)

// newTestRepo opens a per-test in-memory database with the POS schema.
// cache=shared keeps the database alive across gorm's pooled connections.
func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return &repo.GormRepo{DB: db}
}

func seedProduct(t *testing.T, r *repo.GormRepo, name, category string, price int64, stock int) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:          name,
		Category:      category,
		Price:         decimal.NewFromInt(price),
		IsActive:      true,
		StockQuantity: stock,
	}
	require.NoError(t, r.DB.Create(p).Error)
	return p
}

func cartWith(t *testing.T, lines ...cartLine) *cart.Cart {
	t.Helper()

	c := cart.New()
	for _, ln := range lines {
		require.NoError(t, c.AddItem(ln.product, ln.quantity))
	}
	return c
}

type cartLine struct {
	product  *models.Product
	quantity int
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func stockOf(t *testing.T, r *repo.GormRepo, id int) int {
	t.Helper()

	var p models.Product
	require.NoError(t, r.DB.First(&p, id).Error)
	return p.StockQuantity
}

func orderCount(t *testing.T, r *repo.GormRepo) int64 {
	t.Helper()

	var n int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&n).Error)
	return n
}
