package model

import (
	"errors"
	"fmt"
)

var (
	ErrForeignLineItem   = errors.New("line item does not belong to the order")
	ErrDuplicateLineItem = errors.New("line item appears more than once")
)

type OrderProducts struct {
	ID        uint `gorm:"primarykey"`
	OrderID   uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null;index"`
	Quantity  int  `gorm:"not null"` // >= 1

	Product Product `gorm:"foreignKey:ProductID"`
}

func (OrderProducts) TableName() string {
	return "order_products"
}

func (p OrderProducts) GetID() uint    { return p.ID }
func (p *OrderProducts) SetID(id uint) { p.ID = id }

// Sum is product price times quantity; requires Product to be loaded
func (p OrderProducts) Sum() float64 {
	return p.Product.Price * float64(p.Quantity)
}

// LineItemPlan is the set of writes that moves persisted line items to the
// desired collection
type LineItemPlan struct {
	Create []OrderProducts
	Update []OrderProducts
	Delete []uint
}

func (p LineItemPlan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// ReconcileOrderProducts diffs incoming against persisted by id.
// Items without an id are created, items matched by id are updated when their
// product or quantity changed, persisted items missing from incoming are
// deleted. An incoming id that is not persisted is rejected.
func ReconcileOrderProducts(persisted, incoming []OrderProducts) (LineItemPlan, error) {
	var plan LineItemPlan

	current := make(map[uint]OrderProducts, len(persisted))
	for _, item := range persisted {
		current[item.ID] = item
	}

	kept := make(map[uint]struct{}, len(incoming))
	for _, item := range incoming {
		if item.ID == 0 {
			plan.Create = append(plan.Create, item)
			continue
		}
		existing, ok := current[item.ID]
		if !ok {
			return LineItemPlan{}, fmt.Errorf("%w: id %d", ErrForeignLineItem, item.ID)
		}
		if _, seen := kept[item.ID]; seen {
			return LineItemPlan{}, fmt.Errorf("%w: id %d", ErrDuplicateLineItem, item.ID)
		}
		kept[item.ID] = struct{}{}
		if existing.ProductID != item.ProductID || existing.Quantity != item.Quantity {
			plan.Update = append(plan.Update, item)
		}
	}

	for _, item := range persisted {
		if _, ok := kept[item.ID]; !ok {
			plan.Delete = append(plan.Delete, item.ID)
		}
	}

	return plan, nil
}
