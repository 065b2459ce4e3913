package dto

import (
	"time"

	"github.com/ikkim/shop-backend/internal/app/model"
)

// OrderProductsDTO is a line item. Product and Sum are filled on output only.
type OrderProductsDTO struct {
	ID        uint        `json:"id"`
	ProductID uint        `json:"product_id" validate:"required"`
	Product   *ProductDTO `json:"product,omitempty" validate:"-"`
	Quantity  int         `json:"quantity" validate:"min=1"`
	Sum       float64     `json:"sum"`
}

func OfOrderProducts(item *model.OrderProducts) *OrderProductsDTO {
	if item == nil {
		return nil
	}
	out := &OrderProductsDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product.ID != 0 {
		out.Product = OfProduct(&item.Product)
		out.Sum = item.Sum()
	}
	return out
}

func (d *OrderProductsDTO) ToModel() model.OrderProducts {
	return model.OrderProducts{
		ID:        d.ID,
		ProductID: d.ProductID,
		Quantity:  d.Quantity,
	}
}

// OrderDTO references its owner and delivery type by id on input; the
// expanded objects and Total are filled on output only
type OrderDTO struct {
	ID                     uint                     `json:"id"`
	UserID                 *uint                    `json:"user_id,omitempty"`
	UnregisteredCustomerID *uint                    `json:"unregistered_customer_id,omitempty"`
	User                   *UserDTO                 `json:"user,omitempty" validate:"-"`
	UnregisteredCustomer   *UnregisteredCustomerDTO `json:"unregistered_customer,omitempty" validate:"-"`
	PostTime               *time.Time               `json:"post_time,omitempty"`
	CompleteTime           *time.Time               `json:"complete_time,omitempty"`
	Status                 string                   `json:"status,omitempty" validate:"omitempty,oneof=POSTED ACCEPTED SHIPPING DELIVERED COMPLETED ABOLISHED"`
	DeliveryTypeID         uint                     `json:"delivery_type_id" validate:"required"`
	DeliveryType           *DeliveryTypeDTO         `json:"delivery_type,omitempty" validate:"-"`
	OrderProducts          []*OrderProductsDTO      `json:"order_products" validate:"required,min=1,dive,required"`
	Total                  float64                  `json:"total"`
}

func OfOrder(o *model.Order) *OrderDTO {
	if o == nil {
		return nil
	}

	items := make([]*OrderProductsDTO, 0, len(o.OrderProducts))
	for i := range o.OrderProducts {
		if item := OfOrderProducts(&o.OrderProducts[i]); item != nil {
			items = append(items, item)
		}
	}

	postTime := o.PostTime
	out := &OrderDTO{
		ID:                     o.ID,
		UserID:                 copyUint(o.UserID),
		UnregisteredCustomerID: copyUint(o.UnregisteredCustomerID),
		User:                   OfUser(o.User),
		UnregisteredCustomer:   OfUnregisteredCustomer(o.UnregisteredCustomer),
		PostTime:               &postTime,
		CompleteTime:           copyTime(o.CompleteTime),
		Status:                 string(o.Status),
		DeliveryTypeID:         o.DeliveryTypeID,
		OrderProducts:          items,
		Total:                  o.Total(),
	}
	if o.DeliveryType.ID != 0 {
		out.DeliveryType = OfDeliveryType(&o.DeliveryType)
	}
	return out
}

func OfOrders(orders []model.Order) []*OrderDTO {
	out := make([]*OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, OfOrder(&orders[i]))
	}
	return out
}

// ToModel leaves PostTime zero and Status empty when they were not sent
func (d *OrderDTO) ToModel() *model.Order {
	items := make([]model.OrderProducts, 0, len(d.OrderProducts))
	for _, item := range d.OrderProducts {
		if item == nil {
			continue
		}
		items = append(items, item.ToModel())
	}

	order := &model.Order{
		ID:                     d.ID,
		UserID:                 copyUint(d.UserID),
		UnregisteredCustomerID: copyUint(d.UnregisteredCustomerID),
		CompleteTime:           copyTime(d.CompleteTime),
		Status:                 model.Status(d.Status),
		DeliveryTypeID:         d.DeliveryTypeID,
		OrderProducts:          items,
	}
	if d.PostTime != nil {
		order.PostTime = *d.PostTime
	}
	return order
}

// StatusDTO is the body of a status change
type StatusDTO struct {
	Status string `json:"status" validate:"required,oneof=POSTED ACCEPTED SHIPPING DELIVERED COMPLETED ABOLISHED"`
}

func copyUint(v *uint) *uint {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
