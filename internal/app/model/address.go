package model

// Address is embedded into the users and unregistered_customers tables
type Address struct {
	Region     string `gorm:"size:100"`
	District   string `gorm:"size:100"`
	City       string `gorm:"size:100;not null"`
	Street     string `gorm:"size:100;not null"`
	Building   int    `gorm:"not null"` // >= 1
	Apartment  *int
	PostalCode int `gorm:"not null"` // 1001..99999
}
