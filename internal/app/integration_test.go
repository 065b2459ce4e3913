package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/config"
	"github.com/ikkim/shop-backend/internal/app/controller"
	"github.com/ikkim/shop-backend/internal/app/dto"
	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/ikkim/shop-backend/internal/middleware"
	"github.com/ikkim/shop-backend/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
	Users  service.UserService
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, db.SeedDB(testDB))

	// Repositories
	userRepo := repository.NewUserRepository(testDB)
	customerRepo := repository.NewUnregisteredCustomerRepository(testDB)
	deliveryTypeRepo := repository.NewDeliveryTypeRepository(testDB)
	productTypeRepo := repository.NewProductTypeRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	// Services
	userService := service.NewUserService(userRepo, nil, "test-secret", 15*time.Minute)
	orderService := service.NewOrderService(orderRepo, userRepo, customerRepo, deliveryTypeRepo, productRepo)

	cfg := &config.Config{Server: config.ServerConfig{GinMode: gin.TestMode}}
	r := router.NewRouter(
		controller.NewAuthController(userService),
		controller.NewUserController(userService, orderService),
		controller.NewUnregisteredCustomerController(service.NewUnregisteredCustomerService(customerRepo), orderService),
		controller.NewDeliveryTypeController(service.NewDeliveryTypeService(deliveryTypeRepo)),
		controller.NewProductTypeController(service.NewProductTypeService(productTypeRepo)),
		controller.NewProductController(service.NewProductService(productRepo, productTypeRepo), nil),
		controller.NewOrderController(orderService),
		middleware.NewAuthMiddleware(userService),
		cfg,
	)

	return &TestServer{
		Router: r.Setup(),
		DB:     testDB,
		Users:  userService,
	}
}

func (ts *TestServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func (ts *TestServer) login(t *testing.T, phone, password string) dto.LoginResponse {
	t.Helper()
	w := ts.request(t, http.MethodPost, "/api/v2/login", "", gin.H{"phone": phone, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func registration(phone, firstName string) gin.H {
	return gin.H{
		"phone":      phone,
		"first_name": firstName,
		"last_name":  "Kovalenko",
		"password":   "password123",
		"address": gin.H{
			"city":        "Odesa",
			"street":      "Derybasivska",
			"building":    3,
			"postal_code": 65000,
		},
	}
}

func TestCompleteCustomerJourney(t *testing.T) {
	ts := setupIntegrationTest(t)

	// The catalog is maintained by a manager
	_, err := ts.Users.Create(t.Context(), &model.User{
		Phone: "0441112233", FirstName: "Olena", LastName: "Manager", Access: model.AccessManager,
		Address: model.Address{City: "Kyiv", Street: "Volodymyrska", Building: 1, PostalCode: 1001},
	}, "manager-pass")
	require.NoError(t, err)
	manager := ts.login(t, "0441112233", "manager-pass")

	t.Log("Step 1: Manager fills the catalog")
	w := ts.request(t, http.MethodPost, "/api/v2/product_types", manager.Token, gin.H{"name": "Bakery"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var bakeryID uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bakeryID))

	w = ts.request(t, http.MethodPost, "/api/v2/products", manager.Token, gin.H{
		"name":          "Rye bread",
		"price":         30,
		"stock":         20,
		"product_types": []gin.H{{"id": bakeryID}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var breadID uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &breadID))

	t.Log("Step 2: Customer registers and logs in")
	w = ts.request(t, http.MethodPost, "/api/v2/users", "", registration("0501234567", "Mykola"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var userID uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &userID))
	customer := ts.login(t, "0501234567", "password123")
	assert.Equal(t, userID, customer.User.ID)

	t.Log("Step 3: Customer browses and orders")
	w = ts.request(t, http.MethodGet, "/api/v2/products?pattern=rye", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []dto.ProductDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	require.Len(t, products, 1)

	w = ts.request(t, http.MethodGet, "/api/v2/delivery_types?pattern=courier", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var deliveryTypes []dto.DeliveryTypeDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deliveryTypes))
	require.Len(t, deliveryTypes, 1)

	w = ts.request(t, http.MethodPost, "/api/v2/orders", customer.Token, gin.H{
		"user_id":          userID,
		"delivery_type_id": deliveryTypes[0].ID,
		"order_products":   []gin.H{{"product_id": breadID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var orderID uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orderID))

	t.Log("Step 4: Manager moves the order through its lifecycle")
	for _, status := range []string{"ACCEPTED", "SHIPPING", "DELIVERED", "COMPLETED"} {
		w = ts.request(t, http.MethodPatch, fmt.Sprintf("/api/v2/orders/%d/status", orderID), manager.Token, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	t.Log("Step 5: Customer sees the completed order")
	w = ts.request(t, http.MethodGet, fmt.Sprintf("/api/v2/users/%d/orders", userID), customer.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []dto.OrderDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, string(model.StatusCompleted), orders[0].Status)
	assert.NotNil(t, orders[0].CompleteTime)
	assert.Equal(t, 90.0, orders[0].Total)
	require.Len(t, orders[0].OrderProducts, 1)
	require.NotNil(t, orders[0].OrderProducts[0].Product)
	assert.Equal(t, "Rye bread", orders[0].OrderProducts[0].Product.Name)
}

func TestAuthenticationFlow(t *testing.T) {
	ts := setupIntegrationTest(t)

	w := ts.request(t, http.MethodPost, "/api/v2/users", "", registration("0501234567", "Mykola"))
	require.Equal(t, http.StatusCreated, w.Code)
	var userID uint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &userID))

	session := ts.login(t, "0501234567", "password123")

	w = ts.request(t, http.MethodPost, fmt.Sprintf("/api/v2/ping/%d", userID), "", gin.H{"token": session.Token})
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, http.MethodGet, fmt.Sprintf("/api/v2/users/%d", userID), session.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, http.MethodPost, "/api/v2/login", "", gin.H{"phone": "0501234567", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUnauthorizedAccess(t *testing.T) {
	ts := setupIntegrationTest(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v2/orders"},
		{http.MethodGet, "/api/v2/users"},
		{http.MethodGet, "/api/v2/users/1/orders"},
		{http.MethodPost, "/api/v2/products"},
		{http.MethodDelete, "/api/v2/product_types/1"},
	}

	for _, p := range paths {
		w := ts.request(t, p.method, p.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", p.method, p.path)
	}
}
