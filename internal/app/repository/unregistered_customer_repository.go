package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"gorm.io/gorm"
)

type UnregisteredCustomerRepository interface {
	Repository[model.UnregisteredCustomer]
	GetByPhone(ctx context.Context, phone string) (*model.UnregisteredCustomer, error)
}

type unregisteredCustomerRepository struct {
	*crudRepository[model.UnregisteredCustomer, *model.UnregisteredCustomer]
}

func NewUnregisteredCustomerRepository(db *gorm.DB) UnregisteredCustomerRepository {
	return &unregisteredCustomerRepository{
		crudRepository: newCrudRepository[model.UnregisteredCustomer, *model.UnregisteredCustomer](db, "unregistered_customer", map[string]string{
			"phone": "phone",
			"name":  fullNameColumn,
		}),
	}
}

func (r *unregisteredCustomerRepository) GetByPhone(ctx context.Context, phone string) (*model.UnregisteredCustomer, error) {
	customers, err := r.GetByColumn(ctx, "phone", phone, true)
	if err != nil {
		return nil, err
	}
	if len(customers) == 0 {
		return nil, nil
	}
	return &customers[0], nil
}
