package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
)

const kindProduct = "product"

type ProductService interface {
	GetAll(ctx context.Context, params ListParams) ([]model.Product, error)
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) (uint, error)
	Update(ctx context.Context, product *model.Product) (uint, error)
	Delete(ctx context.Context, id uint) error
	// SetImage stores the public URL of the product image
	SetImage(ctx context.Context, id uint, imageURL string) error
}

type productService struct {
	repo     repository.ProductRepository
	typeRepo repository.ProductTypeRepository
}

func NewProductService(repo repository.ProductRepository, typeRepo repository.ProductTypeRepository) ProductService {
	return &productService{
		repo:     repo,
		typeRepo: typeRepo,
	}
}

func (s *productService) GetAll(ctx context.Context, params ListParams) ([]model.Product, error) {
	return list[model.Product](ctx, s.repo, "name", params)
}

func (s *productService) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	return getByID[model.Product](ctx, s.repo, kindProduct, id)
}

func (s *productService) Create(ctx context.Context, product *model.Product) (uint, error) {
	fields, err := s.validate(ctx, product)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotCreated(kindProduct, fields)
	}

	id, err := s.repo.Insert(ctx, product)
	if err != nil {
		logger.Error("Failed to create product", err, logger.Fields{"name": product.Name})
		if errors.Is(err, repository.ErrMissingProductType) {
			return 0, newNotCreated(kindProduct, map[string]string{"product_types": err.Error()})
		}
		return 0, wrapCreateError(kindProduct, err)
	}

	logger.Info("Product created", logger.Fields{
		"id":    id,
		"name":  product.Name,
		"types": len(product.ProductTypes),
	})
	return id, nil
}

// Update keeps the stored image when product.Image is empty
func (s *productService) Update(ctx context.Context, product *model.Product) (uint, error) {
	existing, err := s.GetByID(ctx, product.ID)
	if err != nil {
		return 0, err
	}
	if product.Image == "" {
		product.Image = existing.Image
	}

	fields, err := s.validate(ctx, product)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotUpdated(kindProduct, fields)
	}

	id, err := s.repo.Update(ctx, product)
	if err != nil {
		logger.Error("Failed to update product", err, logger.Fields{"id": product.ID})
		if errors.Is(err, repository.ErrMissingProductType) {
			return 0, newNotUpdated(kindProduct, map[string]string{"product_types": err.Error()})
		}
		return 0, wrapUpdateError(kindProduct, product.ID, err)
	}
	return id, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Product](ctx, s.repo, kindProduct, id)
}

func (s *productService) SetImage(ctx context.Context, id uint, imageURL string) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	product.Image = imageURL
	if _, err := s.repo.Update(ctx, product); err != nil {
		logger.Error("Failed to store product image", err, logger.Fields{"id": id})
		return wrapUpdateError(kindProduct, id, err)
	}
	logger.Info("Product image updated", logger.Fields{"id": id})
	return nil
}

// validate checks the price and stock bounds and that every referenced
// product type exists
func (s *productService) validate(ctx context.Context, product *model.Product) (map[string]string, error) {
	var fields map[string]string
	if product.Price < 0 || product.Price > model.MaxProductPrice {
		fields = mergeFields(fields, map[string]string{
			"price": fmt.Sprintf("must be between 0 and %d", model.MaxProductPrice),
		})
	}
	if product.Stock < 0 {
		fields = mergeFields(fields, map[string]string{"stock": "must not be negative"})
	}

	if len(product.ProductTypes) == 0 {
		return fields, nil
	}
	ids := make([]uint, 0, len(product.ProductTypes))
	for _, pt := range product.ProductTypes {
		ids = append(ids, pt.ID)
	}
	found, err := s.typeRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[uint]struct{}, len(found))
	for _, pt := range found {
		known[pt.ID] = struct{}{}
	}
	for i, id := range ids {
		if _, ok := known[id]; !ok {
			fields = mergeFields(fields, map[string]string{
				fmt.Sprintf("product_types[%d].id", i): fmt.Sprintf("product type %d does not exist", id),
			})
		}
	}
	return fields, nil
}
