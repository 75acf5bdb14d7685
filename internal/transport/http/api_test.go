package inventoryserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	ordersmemory "github.com/cams-platform/inventory-management/internal/domains/orders/adapters/memory"
	ordersapp "github.com/cams-platform/inventory-management/internal/domains/orders/application"
	productsmemory "github.com/cams-platform/inventory-management/internal/domains/products/adapters/memory"
	productsapp "github.com/cams-platform/inventory-management/internal/domains/products/application"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	productRepo := productsmemory.NewRepository()
	productService := productsapp.NewService(productRepo)
	orderService := ordersapp.NewService(ordersmemory.NewRepository(productRepo))
	handlers := ApiHandleFunctions{
		ProductAPI: NewProductAPI(productService),
		OrderAPI:   NewOrderAPI(orderService, nil),
	}
	return NewRouterWithGinEngine(gin.New(), handlers)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestCreateProducts_PartialSuccessEnvelope(t *testing.T) {
	router := newTestRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/products/v1/create-products",
		`[{"name":"Apple","sku":"SKU-A","price":"1.50","stock":10}]`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, true, envelope["success"])
	require.NotContains(t, envelope, "errors")

	// Resubmitting the same SKU yields 200 with the rejection listed and no data.
	rec, envelope = doJSON(t, router, http.MethodPost, "/products/v1/create-products",
		`[{"name":"Apple","sku":"SKU-A","price":"1.50","stock":10}]`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, envelope["success"])
	require.Equal(t, []any{"Product with SKU SKU-A already exists."}, envelope["errors"])
}

func TestCreateProducts_MalformedBody(t *testing.T) {
	router := newTestRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/products/v1/create-products", `{"not":"a list"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, false, envelope["success"])
	require.Equal(t, "Validation Failed", envelope["message"])
}

func TestLowStock_EmptyResultCarriesErrorList(t *testing.T) {
	router := newTestRouter()

	rec, envelope := doJSON(t, router, http.MethodGet, "/products/v1/low-stock?stockThreshold=10", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, envelope["success"])
	require.Equal(t, []any{"No products found with the given stock threshold"}, envelope["errors"])
}

func TestCreateOrder_FullCycle(t *testing.T) {
	router := newTestRouter()

	_, created := doJSON(t, router, http.MethodPost, "/products/v1/create-products",
		`[{"name":"Apple","sku":"SKU-A","price":"1.50","stock":10}]`)
	data := created["data"].([]any)
	productID := data[0].(map[string]any)["id"].(string)

	rec, envelope := doJSON(t, router, http.MethodPost, "/orders/v1/create-order",
		fmt.Sprintf(`{"orderItems":[{"productId":"%s","quantity":3}]}`, productID))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, true, envelope["success"])
	order := envelope["data"].(map[string]any)
	require.Equal(t, "PENDING", order["status"])
	orderID := order["id"].(string)

	// Ordering more than remains answers 400 with the product named.
	rec, envelope = doJSON(t, router, http.MethodPost, "/orders/v1/create-order",
		fmt.Sprintf(`{"orderItems":[{"productId":"%s","quantity":100}]}`, productID))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, envelope["message"], "Apple")

	rec, envelope = doJSON(t, router, http.MethodPatch,
		fmt.Sprintf("/orders/v1/update-order/%s/status?orderStatus=COMPLETED", orderID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, envelope["success"])

	rec, envelope = doJSON(t, router, http.MethodGet, "/orders/v1/product-summary?orderId="+orderID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := envelope["data"].(map[string]any)
	require.Contains(t, summary, "Apple")
}

func TestCreateOrder_UnknownProductIs404(t *testing.T) {
	router := newTestRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/orders/v1/create-order",
		`{"orderItems":[{"productId":"7b0f3c4e-8a4e-4f6e-9c7d-1d2e3f4a5b6c","quantity":1}]}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, false, envelope["success"])
}

func TestUpdateOrderStatus_AbsentOrderIs200Failure(t *testing.T) {
	router := newTestRouter()

	rec, envelope := doJSON(t, router, http.MethodPatch,
		"/orders/v1/update-order/7b0f3c4e-8a4e-4f6e-9c7d-1d2e3f4a5b6c/status?orderStatus=CANCELLED", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, envelope["success"])
	require.Equal(t, []any{"Order not found or could not be updated"}, envelope["errors"])
}

func TestOrderProductSummary_UnknownOrderIsEmptyFailure(t *testing.T) {
	router := newTestRouter()

	rec, envelope := doJSON(t, router, http.MethodGet,
		"/orders/v1/product-summary?orderId=7b0f3c4e-8a4e-4f6e-9c7d-1d2e3f4a5b6c", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, envelope["success"])
	require.Equal(t, []any{"No product summary found for the given orders"}, envelope["errors"])
}

func TestProductSummaryBatch_NilItemListsSkipped(t *testing.T) {
	router := newTestRouter()

	rec, envelope := doJSON(t, router, http.MethodPost, "/products/v1/product-summary",
		`[{"id":"o1","status":"PENDING"},{"id":"o2","status":"PENDING","orderItems":[{"productId":"p1","quantity":2,"product":{"id":"p1","name":"Apple","sku":"SKU-A","price":"1.50","stock":10}}]}]`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, envelope["success"])
	summary := envelope["data"].(map[string]any)
	require.Len(t, summary, 1)
	require.Equal(t, "3", summary["Apple"])
}
