package configs

import (
	"log"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCategories = []string{"Fruits", "Vegetables", "Dairy", "Bakery", "Beverages", "Snacks"}

type seedProduct struct {
	name     string
	category string
	price    string
	original string
	unit     string
	stock    int
}

var seedProducts = []seedProduct{
	{"Bananas", "Fruits", "1.99", "2.49", "dozen", 150},
	{"Red Apples", "Fruits", "3.99", "4.49", "kg", 100},
	{"Carrots", "Vegetables", "1.49", "1.49", "kg", 80},
	{"Whole Milk", "Dairy", "2.79", "2.99", "litre", 60},
	{"Sourdough Bread", "Bakery", "4.50", "4.50", "loaf", 25},
	{"Orange Juice", "Beverages", "3.25", "3.75", "litre", 40},
	{"Potato Chips", "Snacks", "2.20", "2.50", "pack", 0},
}

// SeedInitialData inserts demo users, a shop, categories and products when the
// users table is empty.
func SeedInitialData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("skip seeding: users already exist")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		owner := entity.User{Name: "Demo Owner", Email: "owner@example.com", Password: string(hash), Phone: "555-0100", Role: entity.RoleOwner}
		buyer := entity.User{Name: "Demo Buyer", Email: "buyer@example.com", Password: string(hash), Phone: "555-0101", Role: entity.RoleBuyer}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		if err := tx.Create(&buyer).Error; err != nil {
			return err
		}

		lat, lng := 40.7128, -74.0060
		shop := entity.ShopProfile{
			UserID: owner.ID, ShopName: "Downtown Fresh Market",
			AddressLine1: "12 Broadway", City: "New York", State: "NY", ZipCode: "10004",
			DeliveryRadius: 10, MinimumOrder: decimal.NewFromInt(5),
			OpeningTime: "07:00", ClosingTime: "23:00", IsOpen: true,
			Latitude: &lat, Longitude: &lng,
		}
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}

		alat, alng := 40.7130, -74.0065
		addr := entity.Address{
			UserID: buyer.ID, Label: "Home", AddressLine1: "1 Battery Pl",
			City: "New York", State: "NY", ZipCode: "10004", IsDefault: true,
			Latitude: &alat, Longitude: &alng,
		}
		if err := tx.Create(&addr).Error; err != nil {
			return err
		}

		cats := map[string]uint{}
		for _, name := range seedCategories {
			c := entity.Category{Name: name}
			if err := tx.Where(entity.Category{Name: name}).FirstOrCreate(&c).Error; err != nil {
				return err
			}
			cats[name] = c.ID
		}

		for _, sp := range seedProducts {
			p := entity.Product{
				Name:          sp.name,
				Price:         decimal.RequireFromString(sp.price),
				OriginalPrice: decimal.RequireFromString(sp.original),
				Unit:          sp.unit,
				CategoryID:    cats[sp.category],
				ShopID:        shop.ID,
				Stock:         sp.stock,
				InStock:       sp.stock > 0,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}

		log.Println("initial data seeded")
		return nil
	})
}
