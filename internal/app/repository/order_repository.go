package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Repository[model.Order]
	GetByUser(ctx context.Context, userID uint) ([]model.Order, error)
	GetByUnregisteredCustomer(ctx context.Context, customerID uint) ([]model.Order, error)
}

type orderRepository struct {
	*crudRepository[model.Order, *model.Order]
}

// NewOrderRepository has no natural keys, so GetByColumn always returns
// ErrUnsupportedOperation
func NewOrderRepository(db *gorm.DB) OrderRepository {
	repo := newCrudRepository[model.Order, *model.Order](db, "order", nil)
	repo.preload = preloadOrder
	return &orderRepository{crudRepository: repo}
}

func preloadOrder(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("User").
		Preload("UnregisteredCustomer").
		Preload("DeliveryType").
		Preload("OrderProducts", func(q *gorm.DB) *gorm.DB {
			return q.Order("order_products.id ASC")
		}).
		Preload("OrderProducts.Product").
		Preload("OrderProducts.Product.ProductTypes")
}

func (r *orderRepository) GetByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	return r.findWhere(ctx, "user_id = ?", userID)
}

func (r *orderRepository) GetByUnregisteredCustomer(ctx context.Context, customerID uint) ([]model.Order, error) {
	return r.findWhere(ctx, "unregistered_customer_id = ?", customerID)
}

func (r *orderRepository) findWhere(ctx context.Context, cond string, args ...interface{}) ([]model.Order, error) {
	var orders []model.Order
	err := db.WithSession(ctx, r.db, func(tx *gorm.DB) error {
		return preloadOrder(tx).Where(cond, args...).Order("id ASC").Find(&orders).Error
	})
	if err != nil {
		logger.Error("Failed to find orders in database", err, logger.Fields{"condition": cond})
		return nil, err
	}
	return orders, nil
}

// Insert writes the order header and every line item in one transaction
func (r *orderRepository) Insert(ctx context.Context, order *model.Order) (uint, error) {
	err := db.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := r.insertTx(tx, order); err != nil {
			return err
		}
		for i := range order.OrderProducts {
			item := &order.OrderProducts[i]
			item.ID = 0
			item.OrderID = order.ID
			if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
				logger.Error("Failed to insert order line item", err, logger.Fields{
					"order_id":   order.ID,
					"product_id": item.ProductID,
				})
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return order.ID, nil
}

// Update reconciles the persisted line items against order.OrderProducts
// and then overwrites the header
func (r *orderRepository) Update(ctx context.Context, order *model.Order) (uint, error) {
	err := db.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := r.mustExist(tx, order.ID); err != nil {
			return err
		}

		var persisted []model.OrderProducts
		if err := tx.Where("order_id = ?", order.ID).Order("id ASC").Find(&persisted).Error; err != nil {
			return err
		}

		plan, err := model.ReconcileOrderProducts(persisted, order.OrderProducts)
		if err != nil {
			return err
		}
		if err := applyLineItemPlan(tx, order.ID, plan); err != nil {
			return err
		}

		logger.Debug("Order line items reconciled", logger.Fields{
			"order_id": order.ID,
			"created":  len(plan.Create),
			"updated":  len(plan.Update),
			"deleted":  len(plan.Delete),
		})

		return r.updateTx(tx, order)
	})
	if err != nil {
		return 0, err
	}
	return order.ID, nil
}

func applyLineItemPlan(tx *gorm.DB, orderID uint, plan model.LineItemPlan) error {
	if len(plan.Delete) > 0 {
		if err := tx.Where("order_id = ? AND id IN ?", orderID, plan.Delete).Delete(&model.OrderProducts{}).Error; err != nil {
			return err
		}
	}
	for _, item := range plan.Update {
		err := tx.Model(&model.OrderProducts{}).
			Where("id = ? AND order_id = ?", item.ID, orderID).
			Updates(map[string]interface{}{
				"product_id": item.ProductID,
				"quantity":   item.Quantity,
			}).Error
		if err != nil {
			return err
		}
	}
	for _, item := range plan.Create {
		item.ID = 0
		item.OrderID = orderID
		if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the line items and then the order
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	return db.WithTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := r.mustExist(tx, id); err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderProducts{}).Error; err != nil {
			return err
		}
		return r.deleteTx(tx, id)
	})
}
