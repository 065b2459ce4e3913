package dto

import "github.com/ikkim/shop-backend/internal/app/model"

type AddressDTO struct {
	Region     string `json:"region" validate:"max=100"`
	District   string `json:"district" validate:"max=100"`
	City       string `json:"city" validate:"required,max=100"`
	Street     string `json:"street" validate:"required,max=100"`
	Building   int    `json:"building" validate:"min=1"`
	Apartment  *int   `json:"apartment,omitempty" validate:"omitempty,min=1"`
	PostalCode int    `json:"postal_code" validate:"min=1001,max=99999"`
}

func OfAddress(a model.Address) *AddressDTO {
	return &AddressDTO{
		Region:     a.Region,
		District:   a.District,
		City:       a.City,
		Street:     a.Street,
		Building:   a.Building,
		Apartment:  copyInt(a.Apartment),
		PostalCode: a.PostalCode,
	}
}

func (d *AddressDTO) ToModel() model.Address {
	if d == nil {
		return model.Address{}
	}
	return model.Address{
		Region:     d.Region,
		District:   d.District,
		City:       d.City,
		Street:     d.Street,
		Building:   d.Building,
		Apartment:  copyInt(d.Apartment),
		PostalCode: d.PostalCode,
	}
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
