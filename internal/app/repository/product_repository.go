package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/db"
	"gorm.io/gorm"
)

// ErrMissingProductType is returned when a product references a product
// type that does not exist
var ErrMissingProductType = errors.New("product type does not exist")

type ProductRepository interface {
	Repository[model.Product]
}

type productRepository struct {
	*crudRepository[model.Product, *model.Product]
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	repo := newCrudRepository[model.Product, *model.Product](db, "product", map[string]string{
		"name": "name",
	})
	repo.preload = func(tx *gorm.DB) *gorm.DB {
		return tx.Preload("ProductTypes", func(q *gorm.DB) *gorm.DB {
			return q.Order("product_types.id ASC")
		})
	}
	return &productRepository{crudRepository: repo}
}

func (r *productRepository) Insert(ctx context.Context, product *model.Product) (uint, error) {
	err := db.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		types, err := resolveProductTypes(tx, product.ProductTypes)
		if err != nil {
			return err
		}
		if err := r.insertTx(tx, product); err != nil {
			return err
		}
		return replaceProductTypes(tx, product, types)
	})
	if err != nil {
		return 0, err
	}
	return product.ID, nil
}

// Update overwrites the product row and its full set of product types
func (r *productRepository) Update(ctx context.Context, product *model.Product) (uint, error) {
	err := db.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		types, err := resolveProductTypes(tx, product.ProductTypes)
		if err != nil {
			return err
		}
		if err := r.updateTx(tx, product); err != nil {
			return err
		}
		return replaceProductTypes(tx, product, types)
	})
	if err != nil {
		return 0, err
	}
	return product.ID, nil
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return db.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := r.mustExist(tx, id); err != nil {
			return err
		}
		if err := tx.Model(&model.Product{ID: id}).Association("ProductTypes").Clear(); err != nil {
			return err
		}
		return r.deleteTx(tx, id)
	})
}

func resolveProductTypes(tx *gorm.DB, refs []model.ProductType) ([]model.ProductType, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(refs))
	seen := make(map[uint]struct{}, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		ids = append(ids, ref.ID)
	}

	var types []model.ProductType
	if err := tx.Where("id IN ?", ids).Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	if len(types) != len(ids) {
		found := make(map[uint]struct{}, len(types))
		for _, t := range types {
			found[t.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, fmt.Errorf("%w: id %d", ErrMissingProductType, id)
			}
		}
	}
	return types, nil
}

func replaceProductTypes(tx *gorm.DB, product *model.Product, types []model.ProductType) error {
	association := tx.Model(product).Association("ProductTypes")
	if len(types) == 0 {
		if err := association.Clear(); err != nil {
			return err
		}
		product.ProductTypes = nil
		return nil
	}
	if err := association.Replace(&types); err != nil {
		return err
	}
	product.ProductTypes = types
	return nil
}
