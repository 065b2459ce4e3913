package service

import (
	"testing"
	"time"

	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServices struct {
	db            *gorm.DB
	deliveryTypes DeliveryTypeService
	productTypes  ProductTypeService
	products      ProductService
	customers     UnregisteredCustomerService
	users         UserService
	orders        *orderService
	revoker       *memoryRevoker
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	customerRepo := repository.NewUnregisteredCustomerRepository(testDB)
	deliveryTypeRepo := repository.NewDeliveryTypeRepository(testDB)
	productTypeRepo := repository.NewProductTypeRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	revoker := newMemoryRevoker()

	return &testServices{
		db:            testDB,
		deliveryTypes: NewDeliveryTypeService(deliveryTypeRepo),
		productTypes:  NewProductTypeService(productTypeRepo),
		products:      NewProductService(productRepo, productTypeRepo),
		customers:     NewUnregisteredCustomerService(customerRepo),
		users:         NewUserService(userRepo, revoker, "test-secret", time.Hour),
		orders:        NewOrderService(orderRepo, userRepo, customerRepo, deliveryTypeRepo, productRepo).(*orderService),
		revoker:       revoker,
	}
}
