package model

type User struct {
	ID           uint    `gorm:"primarykey"`
	Phone        string  `gorm:"size:10;uniqueIndex;not null"` // natural id
	Email        string  `gorm:"size:255"`
	FirstName    string  `gorm:"size:100;not null"`
	LastName     string  `gorm:"size:100;not null"`
	PasswordHash string  `gorm:"not null"`
	Access       Access  `gorm:"type:char(1);not null"`
	Address      Address `gorm:"embedded;embeddedPrefix:address_"`
}

func (User) TableName() string {
	return "users"
}

func (u User) GetID() uint    { return u.ID }
func (u *User) SetID(id uint) { u.ID = id }

type UnregisteredCustomer struct {
	ID        uint    `gorm:"primarykey"`
	Phone     string  `gorm:"size:10;uniqueIndex;not null"`
	FirstName string  `gorm:"size:100;not null"`
	LastName  string  `gorm:"size:100;not null"`
	Address   Address `gorm:"embedded;embeddedPrefix:address_"`
}

func (UnregisteredCustomer) TableName() string {
	return "unregistered_customers"
}

func (c UnregisteredCustomer) GetID() uint    { return c.ID }
func (c *UnregisteredCustomer) SetID(id uint) { c.ID = id }
