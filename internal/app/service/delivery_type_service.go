package service

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
)

const kindDeliveryType = "delivery type"

type DeliveryTypeService interface {
	GetAll(ctx context.Context, params ListParams) ([]model.DeliveryType, error)
	GetByID(ctx context.Context, id uint) (*model.DeliveryType, error)
	Create(ctx context.Context, deliveryType *model.DeliveryType) (uint, error)
	Update(ctx context.Context, deliveryType *model.DeliveryType) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type deliveryTypeService struct {
	repo repository.DeliveryTypeRepository
}

func NewDeliveryTypeService(repo repository.DeliveryTypeRepository) DeliveryTypeService {
	return &deliveryTypeService{repo: repo}
}

func (s *deliveryTypeService) GetAll(ctx context.Context, params ListParams) ([]model.DeliveryType, error) {
	return list[model.DeliveryType](ctx, s.repo, "name", params)
}

func (s *deliveryTypeService) GetByID(ctx context.Context, id uint) (*model.DeliveryType, error) {
	return getByID[model.DeliveryType](ctx, s.repo, kindDeliveryType, id)
}

func (s *deliveryTypeService) Create(ctx context.Context, deliveryType *model.DeliveryType) (uint, error) {
	fields, err := checkUnique[model.DeliveryType, *model.DeliveryType](ctx, s.repo, kindDeliveryType, "name", deliveryType.Name, 0)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotCreated(kindDeliveryType, fields)
	}

	id, err := s.repo.Insert(ctx, deliveryType)
	if err != nil {
		logger.Error("Failed to create delivery type", err, logger.Fields{"name": deliveryType.Name})
		return 0, wrapCreateError(kindDeliveryType, err)
	}

	logger.Info("Delivery type created", logger.Fields{
		"id":   id,
		"name": deliveryType.Name,
	})
	return id, nil
}

func (s *deliveryTypeService) Update(ctx context.Context, deliveryType *model.DeliveryType) (uint, error) {
	if _, err := s.GetByID(ctx, deliveryType.ID); err != nil {
		return 0, err
	}

	fields, err := checkUnique[model.DeliveryType, *model.DeliveryType](ctx, s.repo, kindDeliveryType, "name", deliveryType.Name, deliveryType.ID)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotUpdated(kindDeliveryType, fields)
	}

	id, err := s.repo.Update(ctx, deliveryType)
	if err != nil {
		logger.Error("Failed to update delivery type", err, logger.Fields{"id": deliveryType.ID})
		return 0, wrapUpdateError(kindDeliveryType, deliveryType.ID, err)
	}
	return id, nil
}

func (s *deliveryTypeService) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.DeliveryType](ctx, s.repo, kindDeliveryType, id)
}
