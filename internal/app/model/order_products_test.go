package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileOrderProducts_RemoveTwoAddOne(t *testing.T) {
	persisted := []OrderProducts{
		{ID: 1, OrderID: 9, ProductID: 10, Quantity: 1},
		{ID: 2, OrderID: 9, ProductID: 11, Quantity: 2},
		{ID: 3, OrderID: 9, ProductID: 12, Quantity: 3},
	}
	incoming := []OrderProducts{
		{ID: 2, ProductID: 11, Quantity: 2},
		{ProductID: 13, Quantity: 5},
	}

	plan, err := ReconcileOrderProducts(persisted, incoming)
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 3}, plan.Delete)
	require.Len(t, plan.Create, 1)
	assert.Equal(t, uint(13), plan.Create[0].ProductID)
	assert.Empty(t, plan.Update)
}

func TestReconcileOrderProducts_UpdateChanged(t *testing.T) {
	persisted := []OrderProducts{
		{ID: 1, ProductID: 10, Quantity: 1},
		{ID: 2, ProductID: 11, Quantity: 2},
	}
	incoming := []OrderProducts{
		{ID: 1, ProductID: 10, Quantity: 4},
		{ID: 2, ProductID: 12, Quantity: 2},
	}

	plan, err := ReconcileOrderProducts(persisted, incoming)
	require.NoError(t, err)
	assert.Len(t, plan.Update, 2)
	assert.Empty(t, plan.Create)
	assert.Empty(t, plan.Delete)
}

func TestReconcileOrderProducts_Unchanged(t *testing.T) {
	items := []OrderProducts{{ID: 1, ProductID: 10, Quantity: 1}}

	plan, err := ReconcileOrderProducts(items, items)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
}

func TestReconcileOrderProducts_Rejects(t *testing.T) {
	persisted := []OrderProducts{{ID: 1, ProductID: 10, Quantity: 1}}

	_, err := ReconcileOrderProducts(persisted, []OrderProducts{{ID: 99, ProductID: 10, Quantity: 1}})
	assert.ErrorIs(t, err, ErrForeignLineItem)

	_, err = ReconcileOrderProducts(persisted, []OrderProducts{
		{ID: 1, ProductID: 10, Quantity: 1},
		{ID: 1, ProductID: 10, Quantity: 2},
	})
	assert.ErrorIs(t, err, ErrDuplicateLineItem)
}

func TestReconcileOrderProducts_EmptyIncomingDeletesAll(t *testing.T) {
	persisted := []OrderProducts{{ID: 1}, {ID: 2}}

	plan, err := ReconcileOrderProducts(persisted, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, plan.Delete)
}

func TestOrder_CheckOwnerAndTotal(t *testing.T) {
	id := uint(1)

	assert.ErrorIs(t, (&Order{}).CheckOwner(), ErrOrderOwnerMissing)
	assert.ErrorIs(t, (&Order{UserID: &id, UnregisteredCustomerID: &id}).CheckOwner(), ErrOrderOwnerAmbiguous)
	assert.NoError(t, (&Order{UserID: &id}).CheckOwner())

	order := Order{OrderProducts: []OrderProducts{
		{Quantity: 2, Product: Product{Price: 10}},
		{Quantity: 1, Product: Product{Price: 5.5}},
	}}
	assert.InDelta(t, 25.5, order.Total(), 0.0001)
}
