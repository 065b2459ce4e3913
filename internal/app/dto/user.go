package dto

import "github.com/ikkim/shop-backend/internal/app/model"

// UserDTO never carries the password hash; Password is write-only
type UserDTO struct {
	ID        uint        `json:"id"`
	Phone     string      `json:"phone" validate:"required,phone"`
	Email     string      `json:"email" validate:"omitempty,email,max=255"`
	FirstName string      `json:"first_name" validate:"required,max=100"`
	LastName  string      `json:"last_name" validate:"required,max=100"`
	Password  string      `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Access    string      `json:"access,omitempty" validate:"omitempty,oneof=USER MANAGER ADMINISTRATOR"`
	Address   *AddressDTO `json:"address" validate:"required"`
}

func OfUser(u *model.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Phone:     u.Phone,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Access:    string(u.Access),
		Address:   OfAddress(u.Address),
	}
}

func OfUsers(users []model.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for i := range users {
		out = append(out, OfUser(&users[i]))
	}
	return out
}

// ToModel leaves PasswordHash empty; the service hashes Password
func (d *UserDTO) ToModel() *model.User {
	return &model.User{
		ID:        d.ID,
		Phone:     d.Phone,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Access:    model.Access(d.Access),
		Address:   d.Address.ToModel(),
	}
}

type UnregisteredCustomerDTO struct {
	ID        uint        `json:"id"`
	Phone     string      `json:"phone" validate:"required,phone"`
	FirstName string      `json:"first_name" validate:"required,max=100"`
	LastName  string      `json:"last_name" validate:"required,max=100"`
	Address   *AddressDTO `json:"address" validate:"required"`
}

func OfUnregisteredCustomer(c *model.UnregisteredCustomer) *UnregisteredCustomerDTO {
	if c == nil {
		return nil
	}
	return &UnregisteredCustomerDTO{
		ID:        c.ID,
		Phone:     c.Phone,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Address:   OfAddress(c.Address),
	}
}

func OfUnregisteredCustomers(customers []model.UnregisteredCustomer) []*UnregisteredCustomerDTO {
	out := make([]*UnregisteredCustomerDTO, 0, len(customers))
	for i := range customers {
		out = append(out, OfUnregisteredCustomer(&customers[i]))
	}
	return out
}

func (d *UnregisteredCustomerDTO) ToModel() *model.UnregisteredCustomer {
	return &model.UnregisteredCustomer{
		ID:        d.ID,
		Phone:     d.Phone,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Address:   d.Address.ToModel(),
	}
}
