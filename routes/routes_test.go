package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sabores/configs"
	"sabores/entity"
	"sabores/middlewares"
	"sabores/pkg/logger"
	"sabores/pkg/testdb"
	"sabores/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "test-secret"

type envelope struct {
	OK     bool              `json:"ok"`
	Data   json.RawMessage   `json:"data"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
	Token  string            `json:"token"`
}

type server struct {
	t  *testing.T
	r  *gin.Engine
	db *gorm.DB
}

func newServer(t *testing.T) *server {
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	r := gin.New()
	cfg := &configs.Config{JWTSecret: secret, JWTTTL: time.Hour, CORSOrigins: []string{"*"}}
	RegisterRoutes(r, db, cfg, logger.Discard())
	return &server{t: t, r: r, db: db}
}

func (s *server) token(u *entity.User) string {
	tok, err := utils.GenerateToken(u.ID, u.Role, secret, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *server) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "image/png" && w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type orderJSON struct {
	ID          uint   `json:"id"`
	OrderCode   string `json:"order_code"`
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount"`
	Items       []struct {
		Price    string `json:"price"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}

func TestHealthAndRequestID(t *testing.T) {
	s := newServer(t)
	w, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middlewares.RequestIDHeader))
}

func TestRegisterLoginMe(t *testing.T) {
	s := newServer(t)

	w, env := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "ana@example.com", "password": "secreto1", "password2": "secreto1", "name": "Ana",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.OK)

	w, env = s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "not-an-email", "password": "123", "password2": "123", "name": "",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Fields, "email")
	assert.Contains(t, env.Fields, "password")
	assert.Contains(t, env.Fields, "name")

	w, env = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "secreto1"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, env.Token)

	w, env = s.do(http.MethodGet, "/api/auth/me", env.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, env.Data)
	assert.Equal(t, "ana@example.com", me["email"])
	assert.Equal(t, "customer", me["role"])

	w, _ = s.do(http.MethodPost, "/api/auth/admin/login", "", gin.H{"email": "ana@example.com", "password": "secreto1"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	s := newServer(t)
	ana := testdb.User(t, s.db, "ana@example.com", entity.RoleCustomer)
	bob := testdb.User(t, s.db, "bob@example.com", entity.RoleCustomer)
	staff := testdb.User(t, s.db, "cocina@example.com", entity.RoleStaff)
	agua := testdb.MenuItem(t, s.db, "Agua Mineral", "2000.00", true)

	w, env := s.do(http.MethodPost, "/api/orders/cart/add", s.token(ana), gin.H{"menu_item_id": agua.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cart := decode[map[string]any](t, env.Data)
	assert.Equal(t, "6000.00", cart["total_amount"])

	w, env = s.do(http.MethodPost, "/api/orders/create", s.token(ana), gin.H{
		"delivery_address": "Calle Falsa 123", "payment_method": "cash",
		"items": []gin.H{{"menu_item_id": agua.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	order := decode[orderJSON](t, env.Data)
	assert.Equal(t, "6000.00", order.TotalAmount)
	assert.Equal(t, "2000.00", order.Items[0].Price)
	assert.Equal(t, "pending", order.Status)

	// other customers cannot see it
	w, _ = s.do(http.MethodGet, "/api/orders/"+order.OrderCode, s.token(bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodGet, "/api/orders/"+order.OrderCode+"/status", s.token(bob), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodGet, "/api/orders/admin", s.token(ana), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodGet, "/api/orders/"+order.OrderCode, s.token(ana), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/api/orders/"+order.OrderCode, s.token(staff), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/orders/"+order.OrderCode+"/qrcode", s.token(ana), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	path := "/api/orders/admin/" + jsonID(order.ID) + "/update_status"
	w, env = s.do(http.MethodPatch, path, s.token(staff), gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.OK)
	assert.NotEmpty(t, env.Error)

	w, _ = s.do(http.MethodPatch, path, s.token(staff), gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodPatch, path, s.token(staff), gin.H{"status": "delivered"})
	require.Equal(t, http.StatusOK, w.Code)
	w, env = s.do(http.MethodPatch, path, s.token(staff), gin.H{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", decode[orderJSON](t, env.Data).Status)

	w, _ = s.do(http.MethodPatch, path, s.token(ana), gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(http.MethodGet, "/api/orders/admin/dashboard_stats", s.token(staff), nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 1, stats["today_orders"])
	assert.Equal(t, "6000.00", stats["today_revenue"])
}

func TestCreateOrderValidationOverHTTP(t *testing.T) {
	s := newServer(t)
	ana := testdb.User(t, s.db, "ana@example.com", entity.RoleCustomer)

	w, env := s.do(http.MethodPost, "/api/orders/create", s.token(ana), gin.H{
		"delivery_address": "Calle Falsa 123", "payment_method": "cash", "items": []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Fields, "items")

	w, env = s.do(http.MethodPost, "/api/orders/create", s.token(ana), gin.H{
		"delivery_address": "Calle Falsa 123", "payment_method": "bitcoin",
		"items": []gin.H{{"menu_item_id": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is not a valid choice", env.Fields["payment_method"])

	w, _ = s.do(http.MethodPost, "/api/orders/create", s.token(ana), gin.H{
		"delivery_address": "Calle Falsa 123", "payment_method": "cash",
		"items": []gin.H{{"menu_item_id": 999, "quantity": 1}},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var n int64
	s.db.Model(&entity.Order{}).Count(&n)
	assert.Zero(t, n)
}

func TestCatalogPermissions(t *testing.T) {
	s := newServer(t)
	ana := testdb.User(t, s.db, "ana@example.com", entity.RoleCustomer)
	staff := testdb.User(t, s.db, "cocina@example.com", entity.RoleStaff)
	cat := testdb.Category(t, s.db, "Postres")

	item := gin.H{"name": "Flan", "price": "12.5", "category_id": cat.ID, "is_featured": true}
	w, _ := s.do(http.MethodPost, "/api/menu/admin/items", s.token(ana), item)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(http.MethodPost, "/api/menu/admin/items", s.token(staff), item)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[map[string]any](t, env.Data)
	assert.Equal(t, "12.50", created["price"])
	assert.Equal(t, true, created["is_available"])

	w, _ = s.do(http.MethodPost, "/api/menu/admin/items", s.token(staff), gin.H{"name": "Flan", "price": "-1", "category_id": cat.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/menu/featured", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, env = s.do(http.MethodGet, "/api/menu/items?min_price=20", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]any](t, env.Data))
}

func TestAdminUsersRequireAdmin(t *testing.T) {
	s := newServer(t)
	staff := testdb.User(t, s.db, "cocina@example.com", entity.RoleStaff)
	admin := testdb.User(t, s.db, "admin@example.com", entity.RoleAdmin)

	w, _ := s.do(http.MethodGet, "/api/admin/users", s.token(staff), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPatch, "/api/admin/users/"+jsonID(staff.ID)+"/role", s.token(admin), gin.H{"role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)
	w, env := s.do(http.MethodPatch, "/api/admin/users/"+jsonID(staff.ID)+"/role", s.token(admin), gin.H{"role": "chef"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Fields, "role")
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestCatalogChangesReachCarts(t *testing.T) {
	s := newServer(t)
	ana := testdb.User(t, s.db, "ana@example.com", entity.RoleCustomer)
	staff := testdb.User(t, s.db, "cocina@example.com", entity.RoleStaff)
	a := testdb.MenuItem(t, s.db, "Empanada", "1500.00", true)
	b := testdb.MenuItem(t, s.db, "Humita", "1800.00", true)

	w, env := s.do(http.MethodPost, "/api/menu/admin/items/bulk-update", s.token(staff), gin.H{
		"action": "set_available", "ids": []uint{a.ID, b.ID}, "value": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 2, decode[map[string]any](t, env.Data)["updated"])

	w, _ = s.do(http.MethodPost, "/api/orders/cart/add", s.token(ana), gin.H{"menu_item_id": a.ID, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	// unknown menu item is a missing resource, not a bad request
	w, _ = s.do(http.MethodPost, "/api/orders/cart/add", s.token(ana), gin.H{"menu_item_id": 9999, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodPut, "/api/menu/admin/items/"+jsonID(b.ID), s.token(staff), gin.H{
		"name": "Humita", "price": "1800.00", "category_id": b.CategoryID, "is_available": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, env = s.do(http.MethodPost, "/api/orders/cart/add", s.token(ana), gin.H{"menu_item_id": b.ID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3600.00", decode[map[string]any](t, env.Data)["total_amount"])

	w, _ = s.do(http.MethodDelete, "/api/menu/admin/categories/"+jsonID(b.CategoryID), s.token(staff), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	w, _ = s.do(http.MethodGet, "/api/menu/admin/categories/"+jsonID(b.CategoryID), s.token(staff), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(http.MethodGet, "/api/menu/items/"+jsonID(b.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodGet, "/api/orders/cart", s.token(ana), nil)
	require.Equal(t, http.StatusOK, w.Code)
	cart := decode[map[string]any](t, env.Data)
	assert.Equal(t, "0.00", cart["total_amount"])
	assert.EqualValues(t, 0, cart["total_items"])

	w, _ = s.do(http.MethodDelete, "/api/menu/admin/items/"+jsonID(a.ID), s.token(staff), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w, _ = s.do(http.MethodDelete, "/api/menu/admin/items/"+jsonID(a.ID), s.token(staff), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
