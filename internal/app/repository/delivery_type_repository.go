package repository

import (
	"github.com/ikkim/shop-backend/internal/app/model"
	"gorm.io/gorm"
)

type DeliveryTypeRepository interface {
	Repository[model.DeliveryType]
}

type deliveryTypeRepository struct {
	*crudRepository[model.DeliveryType, *model.DeliveryType]
}

func NewDeliveryTypeRepository(db *gorm.DB) DeliveryTypeRepository {
	return &deliveryTypeRepository{
		crudRepository: newCrudRepository[model.DeliveryType, *model.DeliveryType](db, "delivery_type", map[string]string{
			"name": "name",
		}),
	}
}
