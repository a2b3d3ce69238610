package initializers

import (
	"log"

	"github.com/arslan3804/food-project/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.PromoCode{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		log.Fatal("Failed to sync database:", err)
	}
	log.Println("Database synced successfully.")
}
