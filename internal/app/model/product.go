package model

const (
	MaxProductPrice = 99999999
)

type Product struct {
	ID          uint    `gorm:"primarykey"`
	Name        string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text"`
	Price       float64 `gorm:"not null"`
	Stock       int     `gorm:"not null;default:0"`
	Image       string  `gorm:"size:512"` // image URL

	ProductTypes []ProductType `gorm:"many2many:product_product_types;"`
}

func (Product) TableName() string {
	return "products"
}

func (p Product) GetID() uint    { return p.ID }
func (p *Product) SetID(id uint) { p.ID = id }

type ProductType struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`

	Products []Product `gorm:"many2many:product_product_types;"`
}

func (ProductType) TableName() string {
	return "product_types"
}

func (t ProductType) GetID() uint    { return t.ID }
func (t *ProductType) SetID(id uint) { t.ID = id }

type DeliveryType struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

func (DeliveryType) TableName() string {
	return "delivery_types"
}

func (t DeliveryType) GetID() uint    { return t.ID }
func (t *DeliveryType) SetID(id uint) { t.ID = id }
