package model

// Entity is implemented by every persisted record with a surrogate id
type Entity interface {
	GetID() uint
	SetID(id uint)
}
