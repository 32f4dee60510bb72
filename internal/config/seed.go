package config

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kissaten/cafepos/internal/models"
)

func yen(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// SeedCatalog loads the café menu the first time the service starts
// against an empty catalog. Never touches a non-empty table.
func SeedCatalog(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products := []models.Product{
		{Name: "Drip Coffee", Category: "Drinks", Price: yen(350), Description: "Aromatic house blend", StockQuantity: 100, IsActive: true},
		{Name: "Caffe Latte", Category: "Drinks", Price: yen(420), Description: "Espresso with steamed milk", StockQuantity: 80, IsActive: true},
		{Name: "Caffe Americano", Category: "Drinks", Price: yen(380), Description: "Espresso over hot water", StockQuantity: 90, IsActive: true},
		{Name: "Cappuccino", Category: "Drinks", Price: yen(450), Description: "Espresso with foamed milk", StockQuantity: 70, IsActive: true},
		{Name: "Caramel Macchiato", Category: "Drinks", Price: yen(480), Description: "Vanilla syrup and caramel sauce", StockQuantity: 60, IsActive: true},

		{Name: "Croissant", Category: "Food", Price: yen(320), Description: "Buttery, baked fresh", StockQuantity: 25, IsActive: true},
		{Name: "Ham & Cheese Filone", Category: "Food", Price: yen(580), Description: "Stone-oven bread, parmigiano sauce", StockQuantity: 15, IsActive: true},
		{Name: "Salad Wrap", Category: "Food", Price: yen(520), Description: "Fresh vegetable wrap", StockQuantity: 20, IsActive: true},
		{Name: "American Waffle", Category: "Food", Price: yen(340), Description: "Syrup-soaked waffle", StockQuantity: 12, IsActive: true},

		{Name: "New York Cheesecake", Category: "Desserts", Price: yen(480), Description: "Rich New York style", StockQuantity: 8, IsActive: true},
		{Name: "Chocolate Chunk Scone", Category: "Desserts", Price: yen(300), Description: "Loaded with chocolate", StockQuantity: 6, IsActive: true},
		{Name: "Double Chocolate Cookie", Category: "Desserts", Price: yen(250), Description: "Chocolate chip cookie", StockQuantity: 40, IsActive: true},
	}

	return db.Create(&products).Error
}
