package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"gorm.io/gorm"
)

// full name as shown to staff; || is understood by both postgres and sqlite
const fullNameColumn = "first_name || ' ' || last_name"

type UserRepository interface {
	Repository[model.User]
	// GetByPhone returns nil, nil when no user has the phone
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
}

type userRepository struct {
	*crudRepository[model.User, *model.User]
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		crudRepository: newCrudRepository[model.User, *model.User](db, "user", map[string]string{
			"phone": "phone",
			"email": "email",
			"name":  fullNameColumn,
		}),
	}
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*model.User, error) {
	users, err := r.GetByColumn(ctx, "phone", phone, true)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}
