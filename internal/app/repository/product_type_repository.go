package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/db"
	"gorm.io/gorm"
)

type ProductTypeRepository interface {
	Repository[model.ProductType]
	GetByIDs(ctx context.Context, ids []uint) ([]model.ProductType, error)
}

type productTypeRepository struct {
	*crudRepository[model.ProductType, *model.ProductType]
}

func NewProductTypeRepository(db *gorm.DB) ProductTypeRepository {
	return &productTypeRepository{
		crudRepository: newCrudRepository[model.ProductType, *model.ProductType](db, "product_type", map[string]string{
			"name": "name",
		}),
	}
}

func (r *productTypeRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.ProductType, error) {
	var types []model.ProductType
	if len(ids) == 0 {
		return types, nil
	}
	err := db.WithSession(ctx, r.db, func(tx *gorm.DB) error {
		return tx.Where("id IN ?", ids).Order("id ASC").Find(&types).Error
	})
	return types, err
}

// Delete detaches the type from every product before removing it
func (r *productTypeRepository) Delete(ctx context.Context, id uint) error {
	return db.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := r.mustExist(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&model.ProductType{ID: id}).Association("Products").Clear(); err != nil {
			return err
		}
		return r.deleteTx(tx, id)
	})
}
