package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
)

const kindOrder = "order"

type OrderService interface {
	// GetAll ignores params.Pattern; orders have no natural key
	GetAll(ctx context.Context, params ListParams) ([]model.Order, error)
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	GetByUser(ctx context.Context, userID uint, params ListParams) ([]model.Order, error)
	GetByUnregisteredCustomer(ctx context.Context, customerID uint, params ListParams) ([]model.Order, error)
	Create(ctx context.Context, order *model.Order) (uint, error)
	Update(ctx context.Context, order *model.Order) (uint, error)
	// ChangeStatus moves an order along its lifecycle without touching line items
	ChangeStatus(ctx context.Context, id uint, status model.Status) (uint, error)
	Delete(ctx context.Context, id uint) error
}

type orderService struct {
	repo             repository.OrderRepository
	userRepo         repository.UserRepository
	customerRepo     repository.UnregisteredCustomerRepository
	deliveryTypeRepo repository.DeliveryTypeRepository
	productRepo      repository.ProductRepository
	now              func() time.Time
}

func NewOrderService(
	repo repository.OrderRepository,
	userRepo repository.UserRepository,
	customerRepo repository.UnregisteredCustomerRepository,
	deliveryTypeRepo repository.DeliveryTypeRepository,
	productRepo repository.ProductRepository,
) OrderService {
	return &orderService{
		repo:             repo,
		userRepo:         userRepo,
		customerRepo:     customerRepo,
		deliveryTypeRepo: deliveryTypeRepo,
		productRepo:      productRepo,
		now:              time.Now,
	}
}

func (s *orderService) GetAll(ctx context.Context, params ListParams) ([]model.Order, error) {
	params.Pattern = ""
	return list[model.Order](ctx, s.repo, "", params)
}

func (s *orderService) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	return getByID[model.Order](ctx, s.repo, kindOrder, id)
}

func (s *orderService) GetByUser(ctx context.Context, userID uint, params ListParams) ([]model.Order, error) {
	if _, err := getByID[model.User](ctx, s.userRepo, kindUser, userID); err != nil {
		return nil, err
	}
	orders, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return MakeCut(orders, params.Quantity, params.Offset), nil
}

func (s *orderService) GetByUnregisteredCustomer(ctx context.Context, customerID uint, params ListParams) ([]model.Order, error) {
	if _, err := getByID[model.UnregisteredCustomer](ctx, s.customerRepo, kindUnregisteredCustomer, customerID); err != nil {
		return nil, err
	}
	orders, err := s.repo.GetByUnregisteredCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return MakeCut(orders, params.Quantity, params.Offset), nil
}

func (s *orderService) Create(ctx context.Context, order *model.Order) (uint, error) {
	now := s.now()
	if order.PostTime.IsZero() {
		order.PostTime = now
	}
	if order.Status == "" {
		order.Status = model.StatusPosted
	}

	fields, err := s.validate(ctx, order, nil, now)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotCreated(kindOrder, fields)
	}

	id, err := s.repo.Insert(ctx, order)
	if err != nil {
		logger.Error("Failed to create order", err)
		return 0, wrapCreateError(kindOrder, err)
	}

	logger.Info("Order created", logger.Fields{
		"order_id": id,
		"status":   order.Status,
		"items":    len(order.OrderProducts),
	})
	return id, nil
}

func (s *orderService) Update(ctx context.Context, order *model.Order) (uint, error) {
	existing, err := s.GetByID(ctx, order.ID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	if order.PostTime.IsZero() {
		order.PostTime = existing.PostTime
	}
	if order.Status == "" {
		order.Status = existing.Status
	}
	if order.CompleteTime == nil && order.Status == existing.Status {
		order.CompleteTime = existing.CompleteTime
	}

	fields, err := s.validate(ctx, order, existing, now)
	if err != nil {
		return 0, err
	}
	if fields != nil {
		return 0, newNotUpdated(kindOrder, fields)
	}

	id, err := s.repo.Update(ctx, order)
	if err != nil {
		logger.Error("Failed to update order", err, logger.Fields{"order_id": order.ID})
		if errors.Is(err, model.ErrForeignLineItem) || errors.Is(err, model.ErrDuplicateLineItem) {
			return 0, newNotUpdated(kindOrder, map[string]string{"order_products": err.Error()})
		}
		return 0, wrapUpdateError(kindOrder, order.ID, err)
	}

	logger.Info("Order updated", logger.Fields{
		"order_id": id,
		"status":   order.Status,
	})
	return id, nil
}

func (s *orderService) ChangeStatus(ctx context.Context, id uint, status model.Status) (uint, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if order.Status != status {
		order.CompleteTime = nil
	}
	order.Status = status
	return s.Update(ctx, order)
}

// Delete removes the order together with its line items
func (s *orderService) Delete(ctx context.Context, id uint) error {
	return deleteByID[model.Order](ctx, s.repo, kindOrder, id)
}

// validate collects every rule violation of order. existing is nil on
// create. A terminal status without a complete time is stamped with now.
func (s *orderService) validate(ctx context.Context, order, existing *model.Order, now time.Time) (map[string]string, error) {
	var fields map[string]string
	add := func(key, msg string) {
		fields = mergeFields(fields, map[string]string{key: msg})
	}

	if err := order.CheckOwner(); err != nil {
		add("owner", err.Error())
	}
	if order.UserID != nil {
		user, err := s.userRepo.Get(ctx, *order.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			add("user_id", fmt.Sprintf("user %d does not exist", *order.UserID))
		}
	}
	if order.UnregisteredCustomerID != nil {
		customer, err := s.customerRepo.Get(ctx, *order.UnregisteredCustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			add("unregistered_customer_id", fmt.Sprintf("unregistered customer %d does not exist", *order.UnregisteredCustomerID))
		}
	}

	deliveryType, err := s.deliveryTypeRepo.Get(ctx, order.DeliveryTypeID)
	if err != nil {
		return nil, err
	}
	if deliveryType == nil {
		add("delivery_type_id", fmt.Sprintf("delivery type %d does not exist", order.DeliveryTypeID))
	}

	if order.PostTime.After(now) {
		add("post_time", "must not be in the future")
	}

	if _, err := order.Status.Code(); err != nil {
		add("status", err.Error())
	} else {
		if existing != nil && !existing.Status.CanTransitionTo(order.Status) {
			add("status", fmt.Sprintf("cannot change from %s to %s", existing.Status, order.Status))
		}
		switch {
		case order.Status.IsTerminal() && order.CompleteTime == nil:
			completed := now
			order.CompleteTime = &completed
		case !order.Status.IsTerminal() && order.CompleteTime != nil:
			add("complete_time", "may only be set for a completed or abolished order")
		}
	}
	if order.CompleteTime != nil && order.CompleteTime.Before(order.PostTime) {
		add("complete_time", "must not be before post time")
	}

	if len(order.OrderProducts) == 0 {
		add("order_products", "order must contain at least one product")
	}
	persisted := make(map[uint]struct{})
	if existing != nil {
		for _, item := range existing.OrderProducts {
			persisted[item.ID] = struct{}{}
		}
	}
	for i, item := range order.OrderProducts {
		if item.ID != 0 {
			if _, ok := persisted[item.ID]; !ok {
				add(fmt.Sprintf("order_products[%d].id", i), "line item does not belong to this order")
			}
		}
		if item.Quantity < 1 {
			add(fmt.Sprintf("order_products[%d].quantity", i), "must be at least 1")
		}
		product, err := s.productRepo.Get(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			add(fmt.Sprintf("order_products[%d].product_id", i), fmt.Sprintf("product %d does not exist", item.ProductID))
		}
	}

	return fields, nil
}
