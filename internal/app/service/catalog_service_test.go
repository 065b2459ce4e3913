package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductTypeService_PatternSearch(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	for _, name := range []string{"Bread", "Meat", "Water"} {
		_, err := s.productTypes.Create(ctx, &model.ProductType{Name: name})
		require.NoError(t, err)
	}

	for _, pattern := range []string{"EA", "ea", "eA"} {
		t.Run(pattern, func(t *testing.T) {
			found, err := s.productTypes.GetAll(ctx, ListParams{Pattern: pattern})
			require.NoError(t, err)
			require.Len(t, found, 2)
			assert.Equal(t, "Bread", found[0].Name)
			assert.Equal(t, "Meat", found[1].Name)
		})
	}

	all, err := s.productTypes.GetAll(ctx, ListParams{Pattern: "   "})
	require.NoError(t, err)
	assert.Len(t, all, 3, "blank pattern lists everything")

	page, err := s.productTypes.GetAll(ctx, ListParams{Quantity: intPtr(1), Offset: intPtr(2)})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Water", page[0].Name)
}

func TestDeliveryTypeService_DuplicateName(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	_, err := s.deliveryTypes.Create(ctx, &model.DeliveryType{Name: "Courier"})
	require.NoError(t, err)

	_, err = s.deliveryTypes.Create(ctx, &model.DeliveryType{Name: "COURIER"})
	var notCreated *NotCreatedError
	require.True(t, errors.As(err, &notCreated))
	assert.Equal(t, map[string]string{"name": "delivery type with this name already exists"}, notCreated.Fields)
}

func TestDeliveryTypeService_Update(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	courierID, err := s.deliveryTypes.Create(ctx, &model.DeliveryType{Name: "Courier"})
	require.NoError(t, err)
	_, err = s.deliveryTypes.Create(ctx, &model.DeliveryType{Name: "Pickup"})
	require.NoError(t, err)

	// renaming to its own name in another case is not a conflict
	_, err = s.deliveryTypes.Update(ctx, &model.DeliveryType{ID: courierID, Name: "courier"})
	require.NoError(t, err)

	_, err = s.deliveryTypes.Update(ctx, &model.DeliveryType{ID: courierID, Name: "Pickup"})
	var notUpdated *NotUpdatedError
	require.True(t, errors.As(err, &notUpdated))
	assert.Contains(t, notUpdated.Fields, "name")

	_, err = s.deliveryTypes.Update(ctx, &model.DeliveryType{ID: 999, Name: "Post"})
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestDeliveryTypeService_GetAndDelete(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	id, err := s.deliveryTypes.Create(ctx, &model.DeliveryType{Name: "Post"})
	require.NoError(t, err)

	found, err := s.deliveryTypes.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Post", found.Name)

	require.NoError(t, s.deliveryTypes.Delete(ctx, id))

	_, err = s.deliveryTypes.GetByID(ctx, id)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, kindDeliveryType, notFound.Kind)

	err = s.deliveryTypes.Delete(ctx, id)
	assert.True(t, errors.As(err, &notFound))
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	typeID, err := s.productTypes.Create(ctx, &model.ProductType{Name: "Dairy"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		product    *model.Product
		wantFields []string
	}{
		{
			name: "Valid product",
			product: &model.Product{
				Name: "Milk", Price: 45, Stock: 3,
				ProductTypes: []model.ProductType{{ID: typeID}},
			},
		},
		{
			name:       "Price above maximum",
			product:    &model.Product{Name: "Gold milk", Price: model.MaxProductPrice + 1},
			wantFields: []string{"price"},
		},
		{
			name:       "Negative stock and price",
			product:    &model.Product{Name: "Debt", Price: -1, Stock: -1},
			wantFields: []string{"price", "stock"},
		},
		{
			name: "Unknown product type",
			product: &model.Product{
				Name: "Kefir", Price: 40,
				ProductTypes: []model.ProductType{{ID: typeID}, {ID: 404}},
			},
			wantFields: []string{"product_types[1].id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.products.Create(ctx, tt.product)
			if tt.wantFields == nil {
				require.NoError(t, err)
				found, err := s.products.GetByID(ctx, id)
				require.NoError(t, err)
				assert.Equal(t, tt.product.Name, found.Name)
				require.Len(t, found.ProductTypes, 1)
				assert.Equal(t, "Dairy", found.ProductTypes[0].Name)
				return
			}

			var notCreated *NotCreatedError
			require.True(t, errors.As(err, &notCreated))
			for _, field := range tt.wantFields {
				assert.Contains(t, notCreated.Fields, field)
			}
			assert.Len(t, notCreated.Fields, len(tt.wantFields))
		})
	}
}

func TestProductService_DeletionIndependence(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	bakeryID, err := s.productTypes.Create(ctx, &model.ProductType{Name: "Bakery"})
	require.NoError(t, err)
	veganID, err := s.productTypes.Create(ctx, &model.ProductType{Name: "Vegan"})
	require.NoError(t, err)

	breadID, err := s.products.Create(ctx, &model.Product{
		Name: "Bread", Price: 30,
		ProductTypes: []model.ProductType{{ID: bakeryID}, {ID: veganID}},
	})
	require.NoError(t, err)
	bunID, err := s.products.Create(ctx, &model.Product{
		Name: "Bun", Price: 12,
		ProductTypes: []model.ProductType{{ID: bakeryID}},
	})
	require.NoError(t, err)

	// deleting a product keeps every product type
	require.NoError(t, s.products.Delete(ctx, breadID))
	types, err := s.productTypes.GetAll(ctx, ListParams{})
	require.NoError(t, err)
	assert.Len(t, types, 2)

	// deleting a product type keeps every product
	require.NoError(t, s.productTypes.Delete(ctx, bakeryID))
	products, err := s.products.GetAll(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, bunID, products[0].ID)
	assert.Empty(t, products[0].ProductTypes)
}

func TestProductService_SetImage(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	id, err := s.products.Create(ctx, &model.Product{Name: "Cake", Price: 300})
	require.NoError(t, err)

	require.NoError(t, s.products.SetImage(ctx, id, "https://cdn.example.com/products/cake.png"))

	found, err := s.products.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/products/cake.png", found.Image)

	var notFound *NotFoundError
	assert.True(t, errors.As(s.products.SetImage(ctx, 999, "x"), &notFound))
}

func TestUnregisteredCustomerService_DuplicatePhone(t *testing.T) {
	ctx := context.Background()
	s := setupServices(t)

	customer := func() *model.UnregisteredCustomer {
		return &model.UnregisteredCustomer{
			Phone: "0671234567", FirstName: "Ivan", LastName: "Franko",
			Address: model.Address{City: "Lviv", Street: "Svobody", Building: 1, PostalCode: 79000},
		}
	}

	_, err := s.customers.Create(ctx, customer())
	require.NoError(t, err)

	_, err = s.customers.Create(ctx, customer())
	var notCreated *NotCreatedError
	require.True(t, errors.As(err, &notCreated))
	assert.Contains(t, notCreated.Fields, "phone")

	found, err := s.customers.GetAll(ctx, ListParams{Pattern: "van fr"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
