package db

import (
	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table managed by AutoMigrate, parents first
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.UnregisteredCustomer{},
		&model.ProductType{},
		&model.Product{},
		&model.DeliveryType{},
		&model.Order{},
		&model.OrderProducts{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	return MigrateDB(DB)
}

func MigrateDB(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", logger.Fields{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the default delivery types when none exist
func Seed() error {
	return SeedDB(DB)
}

func SeedDB(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.DeliveryType{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Delivery types already seeded, skipping...", logger.Fields{
			"existing_count": count,
		})
		return nil
	}

	deliveryTypes := []model.DeliveryType{
		{Name: "Courier"},
		{Name: "Pickup"},
		{Name: "Post"},
	}
	for _, dt := range deliveryTypes {
		if err := db.Create(&dt).Error; err != nil {
			logger.Error("Failed to create delivery type", err, logger.Fields{
				"delivery_type": dt.Name,
			})
			return err
		}
	}

	logger.Info("Delivery types seeded successfully", logger.Fields{
		"total": len(deliveryTypes),
	})
	return nil
}
