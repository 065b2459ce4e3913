package model

import (
	"errors"
	"time"
)

var (
	ErrOrderOwnerMissing   = errors.New("order must belong to a user or an unregistered customer")
	ErrOrderOwnerAmbiguous = errors.New("order cannot belong to both a user and an unregistered customer")
)

type Order struct {
	ID                     uint       `gorm:"primarykey"`
	UserID                 *uint      `gorm:"index"`
	UnregisteredCustomerID *uint      `gorm:"index"`
	PostTime               time.Time  `gorm:"not null"`
	CompleteTime           *time.Time // set only for terminal statuses
	Status                 Status     `gorm:"type:char(1);not null"`
	DeliveryTypeID         uint       `gorm:"not null;index"`

	User                 *User                 `gorm:"foreignKey:UserID"`
	UnregisteredCustomer *UnregisteredCustomer `gorm:"foreignKey:UnregisteredCustomerID"`
	DeliveryType         DeliveryType          `gorm:"foreignKey:DeliveryTypeID"`
	OrderProducts        []OrderProducts       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string {
	return "orders"
}

func (o Order) GetID() uint    { return o.ID }
func (o *Order) SetID(id uint) { o.ID = id }

// CheckOwner enforces that exactly one owner is set
func (o *Order) CheckOwner() error {
	hasUser := o.UserID != nil
	hasCustomer := o.UnregisteredCustomerID != nil
	switch {
	case hasUser && hasCustomer:
		return ErrOrderOwnerAmbiguous
	case !hasUser && !hasCustomer:
		return ErrOrderOwnerMissing
	}
	return nil
}

// Total is the sum of all line items
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.OrderProducts {
		total += item.Sum()
	}
	return total
}
