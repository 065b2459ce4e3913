package service

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
)

const kindUnregisteredCustomer = "unregistered customer"

type UnregisteredCustomerService interface {
	GetAll(ctx context.Context, params ListParams) ([]model.UnregisteredCustomer, error)
	GetByID(ctx context.Context, id uint) (*model.UnregisteredCustomer, error)
	Create(ctx context.Context, customer *model.UnregisteredCustomer) (uint, error)
	Update(ctx context.Context, customer *model.UnregisteredCustomer) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type unregisteredCustomerService struct {
	repo repository.UnregisteredCustomerRepository
}

func NewUnregisteredCustomerService(repo repository.UnregisteredCustomerRepository) UnregisteredCustomerService {
	return &unregisteredCustomerService{repo: repo}
}

func (s *unregisteredCustomerService) GetAll(ctx context.Context, params ListParams) ([]model.UnregisteredCustomer, error) {
	return list[model.UnregisteredCustomer](ctx, s.repo, "name", params)
}

func (s *unregisteredCustomerService) GetByID(ctx context.Context, id uint) (*model.UnregisteredCustomer, error) {
	return getByID[model.UnregisteredCustomer](ctx, s.repo, kindUnregisteredCustomer, id)
}

func (s *unregisteredCustomerService) Create(ctx context.Context, customer *model.UnregisteredCustomer) (uint, error) {
	fields, err := checkUnique[model.UnregisteredCustomer, *model.UnregisteredCustomer](ctx, s.repo, kindUnregisteredCustomer, "phone", customer.Phone, 0)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotCreated(kindUnregisteredCustomer, fields)
	}

	id, err := s.repo.Insert(ctx, customer)
	if err != nil {
		logger.Error("Failed to create unregistered customer", err)
		return 0, wrapCreateError(kindUnregisteredCustomer, err)
	}
	logger.Info("Unregistered customer created", logger.Fields{"id": id})
	return id, nil
}

func (s *unregisteredCustomerService) Update(ctx context.Context, customer *model.UnregisteredCustomer) (uint, error) {
	if _, err := s.GetByID(ctx, customer.ID); err != nil {
		return 0, err
	}

	fields, err := checkUnique[model.UnregisteredCustomer, *model.UnregisteredCustomer](ctx, s.repo, kindUnregisteredCustomer, "phone", customer.Phone, customer.ID)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotUpdated(kindUnregisteredCustomer, fields)
	}

	id, err := s.repo.Update(ctx, customer)
	if err != nil {
		logger.Error("Failed to update unregistered customer", err, logger.Fields{"id": customer.ID})
		return 0, wrapUpdateError(kindUnregisteredCustomer, customer.ID, err)
	}
	return id, nil
}

func (s *unregisteredCustomerService) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.UnregisteredCustomer](ctx, s.repo, kindUnregisteredCustomer, id)
}
