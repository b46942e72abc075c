package order

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Additional-Code/ricebowl/internal/config"
	repo "github.com/Additional-Code/ricebowl/internal/repository/order"
	service "github.com/Additional-Code/ricebowl/internal/service/order"
)

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Error     string          `json:"error"`
	Timestamp time.Time       `json:"timestamp"`
}

type orderPayload struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	TotalAmount string `json:"totalAmount"`
	ItemCount   int    `json:"itemCount"`
}

type batchPayload struct {
	Created      []orderPayload    `json:"created"`
	SuccessCount int               `json:"successCount"`
	TotalCount   int               `json:"totalCount"`
	Errors       map[string]string `json:"errors"`
}

func newTestRouter() *echo.Echo {
	cfg := config.Config{Cache: config.Cache{DefaultTTL: time.Minute}}
	svc := service.NewService(service.Params{
		Repository: repo.NewRepository(),
		Config:     cfg,
		Logger:     zap.NewNop(),
	})
	e := echo.New()
	Register(e, NewHandler(svc))
	return e
}

func perform(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

const orderBody = `{
	"orderId": "ORD100",
	"customer": {"customerId": "CUST100", "name": "Ahmad Rizki"},
	"orderItems": [
		{"itemId": "ITEM001", "riceType": "Nasi Goreng", "quantity": 2, "pricePerUnit": 100},
		{"itemId": "ITEM002", "riceType": "Nasi Uduk", "quantity": 1, "pricePerUnit": 100}
	],
	"status": "PENDING",
	"paymentMethod": "CASH"
}`

func TestCreateOrder(t *testing.T) {
	e := newTestRouter()

	rec := perform(e, http.MethodPost, "/api/v1/orders", orderBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec)
	if !env.Success {
		t.Errorf("success = false: %s", env.Error)
	}
	if env.Message != "Order created successfully with ID: ORD100" {
		t.Errorf("message = %q", env.Message)
	}

	var payload orderPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if payload.TotalAmount != "300" {
		t.Errorf("totalAmount = %q, want 300", payload.TotalAmount)
	}
	if payload.ItemCount != 2 {
		t.Errorf("itemCount = %d, want 2", payload.ItemCount)
	}
}

func TestCreateDuplicateConflict(t *testing.T) {
	e := newTestRouter()

	perform(e, http.MethodPost, "/api/v1/orders", orderBody)
	rec := perform(e, http.MethodPost, "/api/v1/orders", orderBody)
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	env := decode(t, rec)
	if env.Success {
		t.Error("success must be false on conflict")
	}
	if !strings.Contains(env.Error, "ORD100") {
		t.Errorf("error = %q, want mention of the id", env.Error)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	e := newTestRouter()

	rec := perform(e, http.MethodGet, "/api/v1/orders/MISSING", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	env := decode(t, rec)
	if env.Error != "Order with ID MISSING not found" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestListOrders(t *testing.T) {
	e := newTestRouter()

	rec := perform(e, http.MethodGet, "/api/v1/orders", "")
	env := decode(t, rec)
	if env.Message != "Retrieved 0 orders successfully" {
		t.Errorf("message = %q", env.Message)
	}

	perform(e, http.MethodPost, "/api/v1/orders", orderBody)
	rec = perform(e, http.MethodGet, "/api/v1/orders", "")
	env = decode(t, rec)
	if env.Message != "Retrieved 1 orders successfully" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestListByStatus(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)

	rec := perform(e, http.MethodGet, "/api/v1/orders/status/pending", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload []orderPayload
	env := decode(t, rec)
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(payload) != 1 {
		t.Errorf("len = %d, want 1", len(payload))
	}

	rec = perform(e, http.MethodGet, "/api/v1/orders/status/SHIPPED", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env = decode(t, rec)
	if !strings.Contains(env.Error, "PENDING") {
		t.Errorf("error must list valid statuses, got %q", env.Error)
	}
}

func TestListByCustomer(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)

	rec := perform(e, http.MethodGet, "/api/v1/orders/customer/CUST100", "")
	env := decode(t, rec)
	if env.Message != "Retrieved 1 orders for customer: CUST100" {
		t.Errorf("message = %q", env.Message)
	}

	rec = perform(e, http.MethodGet, "/api/v1/orders/customer/UNKNOWN", "")
	env = decode(t, rec)
	if env.Message != "Retrieved 0 orders for customer: UNKNOWN" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestReplaceOrder(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)

	body := `{
		"orderId": "SOMETHING-ELSE",
		"customer": {"customerId": "CUST200", "name": "Siti Nurhaliza"},
		"orderItems": [{"itemId": "ITEM003", "quantity": 1, "pricePerUnit": 500}],
		"status": "CONFIRMED"
	}`
	rec := perform(e, http.MethodPut, "/api/v1/orders/ORD100", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec)
	if env.Message != "Order updated successfully" {
		t.Errorf("message = %q", env.Message)
	}
	var payload orderPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if payload.OrderID != "ORD100" {
		t.Errorf("orderId = %q, path id must win", payload.OrderID)
	}
	if payload.TotalAmount != "500" {
		t.Errorf("totalAmount = %q, want 500", payload.TotalAmount)
	}
}

func TestReplaceNotFound(t *testing.T) {
	e := newTestRouter()

	rec := perform(e, http.MethodPut, "/api/v1/orders/MISSING", orderBody)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPatchStatusPreservesTotal(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)

	rec := perform(e, http.MethodPatch, "/api/v1/orders/ORD100", `{"status":"CONFIRMED"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec)
	if env.Message != "Order partially updated successfully" {
		t.Errorf("message = %q", env.Message)
	}
	var payload orderPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if payload.Status != "CONFIRMED" {
		t.Errorf("status = %q", payload.Status)
	}
	if payload.TotalAmount != "300" {
		t.Errorf("totalAmount = %q, must be untouched", payload.TotalAmount)
	}
}

func TestPatchInvalidStatus(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)

	rec := perform(e, http.MethodPatch, "/api/v1/orders/ORD100", `{"status":"SHIPPED"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestDeleteOrder(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)

	rec := perform(e, http.MethodDelete, "/api/v1/orders/ORD100", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decode(t, rec)
	if env.Message != "Order deleted successfully" {
		t.Errorf("message = %q", env.Message)
	}

	rec = perform(e, http.MethodDelete, "/api/v1/orders/ORD100", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestDeleteAllOrders(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)
	perform(e, http.MethodPost, "/api/v1/orders", strings.Replace(orderBody, "ORD100", "ORD101", 1))

	rec := perform(e, http.MethodDelete, "/api/v1/orders", "")
	env := decode(t, rec)
	if env.Message != "Successfully deleted 2 orders" {
		t.Errorf("message = %q", env.Message)
	}
}

func TestCreateBatchMixed(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)

	body := `{"orders": [
		{"orderId": "ORD200", "customer": {"customerId": "C2"}, "orderItems": [{"itemId": "I1", "quantity": 1, "pricePerUnit": 50}]},
		{"orderId": "ORD100", "customer": {"customerId": "C1"}, "orderItems": []},
		{"orderId": "ORD201", "customer": {"customerId": "C3"}, "orderItems": [{"itemId": "I2", "quantity": 2, "pricePerUnit": 75}]}
	]}`
	rec := perform(e, http.MethodPost, "/api/v1/orders/batch", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	env := decode(t, rec)
	if env.Message != "Successfully added 2 out of 3 orders" {
		t.Errorf("message = %q", env.Message)
	}

	var payload batchPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if payload.SuccessCount != 2 || payload.TotalCount != 3 {
		t.Errorf("counts = %d/%d", payload.SuccessCount, payload.TotalCount)
	}
	if _, ok := payload.Errors["ORD100"]; !ok {
		t.Errorf("errors = %v, want entry for the duplicate id", payload.Errors)
	}
}

func TestCreateBatchEmpty(t *testing.T) {
	e := newTestRouter()

	rec := perform(e, http.MethodPost, "/api/v1/orders/batch", `{"orders": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decode(t, rec)
	if env.Error != "Request body must contain a list of orders" {
		t.Errorf("error = %q", env.Error)
	}
}

func TestCreateBatchAllFailed(t *testing.T) {
	e := newTestRouter()
	perform(e, http.MethodPost, "/api/v1/orders", orderBody)

	body := `{"orders": [{"orderId": "ORD100", "customer": {"customerId": "C1"}, "orderItems": []}]}`
	rec := perform(e, http.MethodPost, "/api/v1/orders/batch", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decode(t, rec)
	if !env.Success {
		t.Error("batch envelope stays successful even when every item fails")
	}
	if env.Message != "Successfully added 0 out of 1 orders" {
		t.Errorf("message = %q", env.Message)
	}
}
