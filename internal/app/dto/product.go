package dto

import "github.com/ikkim/shop-backend/internal/app/model"

type ProductTypeDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required,max=100"`
}

func OfProductType(t *model.ProductType) *ProductTypeDTO {
	if t == nil {
		return nil
	}
	return &ProductTypeDTO{ID: t.ID, Name: t.Name}
}

func OfProductTypes(types []model.ProductType) []*ProductTypeDTO {
	out := make([]*ProductTypeDTO, 0, len(types))
	for i := range types {
		out = append(out, OfProductType(&types[i]))
	}
	return out
}

func (d *ProductTypeDTO) ToModel() *model.ProductType {
	return &model.ProductType{ID: d.ID, Name: d.Name}
}

type DeliveryTypeDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name" validate:"required,max=100"`
}

func OfDeliveryType(t *model.DeliveryType) *DeliveryTypeDTO {
	if t == nil {
		return nil
	}
	return &DeliveryTypeDTO{ID: t.ID, Name: t.Name}
}

func OfDeliveryTypes(types []model.DeliveryType) []*DeliveryTypeDTO {
	out := make([]*DeliveryTypeDTO, 0, len(types))
	for i := range types {
		out = append(out, OfDeliveryType(&types[i]))
	}
	return out
}

func (d *DeliveryTypeDTO) ToModel() *model.DeliveryType {
	return &model.DeliveryType{ID: d.ID, Name: d.Name}
}

// ProductDTO references product types by id on input; names are ignored
type ProductDTO struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name" validate:"required,max=255"`
	Description  string            `json:"description"`
	Price        float64           `json:"price" validate:"gte=0,lte=99999999"`
	Stock        int               `json:"stock" validate:"gte=0"`
	Image        string            `json:"image,omitempty" validate:"omitempty,url,max=512"`
	ProductTypes []*ProductTypeDTO `json:"product_types" validate:"-"`
}

func OfProduct(p *model.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		Image:        p.Image,
		ProductTypes: OfProductTypes(p.ProductTypes),
	}
}

func OfProducts(products []model.Product) []*ProductDTO {
	out := make([]*ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, OfProduct(&products[i]))
	}
	return out
}

func (d *ProductDTO) ToModel() *model.Product {
	types := make([]model.ProductType, 0, len(d.ProductTypes))
	for _, t := range d.ProductTypes {
		if t == nil {
			continue
		}
		types = append(types, *t.ToModel())
	}
	return &model.Product{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		Stock:        d.Stock,
		Image:        d.Image,
		ProductTypes: types,
	}
}
