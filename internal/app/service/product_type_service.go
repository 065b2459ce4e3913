package service

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
)

const kindProductType = "product type"

type ProductTypeService interface {
	GetAll(ctx context.Context, params ListParams) ([]model.ProductType, error)
	GetByID(ctx context.Context, id uint) (*model.ProductType, error)
	Create(ctx context.Context, productType *model.ProductType) (uint, error)
	Update(ctx context.Context, productType *model.ProductType) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type productTypeService struct {
	repo repository.ProductTypeRepository
}

func NewProductTypeService(repo repository.ProductTypeRepository) ProductTypeService {
	return &productTypeService{repo: repo}
}

func (s *productTypeService) GetAll(ctx context.Context, params ListParams) ([]model.ProductType, error) {
	return list[model.ProductType](ctx, s.repo, "name", params)
}

func (s *productTypeService) GetByID(ctx context.Context, id uint) (*model.ProductType, error) {
	return getByID[model.ProductType](ctx, s.repo, kindProductType, id)
}

func (s *productTypeService) Create(ctx context.Context, productType *model.ProductType) (uint, error) {
	fields, err := checkUnique[model.ProductType, *model.ProductType](ctx, s.repo, kindProductType, "name", productType.Name, 0)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotCreated(kindProductType, fields)
	}

	id, err := s.repo.Insert(ctx, productType)
	if err != nil {
		logger.Error("Failed to create product type", err, logger.Fields{"name": productType.Name})
		return 0, wrapCreateError(kindProductType, err)
	}

	logger.Info("Product type created", logger.Fields{
		"id":   id,
		"name": productType.Name,
	})
	return id, nil
}

func (s *productTypeService) Update(ctx context.Context, productType *model.ProductType) (uint, error) {
	if _, err := s.GetByID(ctx, productType.ID); err != nil {
		return 0, err
	}

	fields, err := checkUnique[model.ProductType, *model.ProductType](ctx, s.repo, kindProductType, "name", productType.Name, productType.ID)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotUpdated(kindProductType, fields)
	}

	id, err := s.repo.Update(ctx, productType)
	if err != nil {
		logger.Error("Failed to update product type", err, logger.Fields{"id": productType.ID})
		return 0, wrapUpdateError(kindProductType, productType.ID, err)
	}
	return id, nil
}

func (s *productTypeService) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.ProductType](ctx, s.repo, kindProductType, id)
}
