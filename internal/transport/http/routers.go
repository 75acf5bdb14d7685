// Package inventoryserver hosts the gin transport for the inventory API.
package inventoryserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// Routes is the list of the server's routes.
type Routes []Route

// ApiHandleFunctions carries the API handlers the router dispatches to.
type ApiHandleFunctions struct {
	ProductAPI ProductAPI
	OrderAPI   OrderAPI
}

// NewRouter returns a new gin engine with all API routes attached.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a bound handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			Name:        "CreateProducts",
			Method:      http.MethodPost,
			Pattern:     "/products/v1/create-products",
			HandlerFunc: handleFunctions.ProductAPI.CreateProducts,
		},
		{
			Name:        "GetLowStockProducts",
			Method:      http.MethodGet,
			Pattern:     "/products/v1/low-stock",
			HandlerFunc: handleFunctions.ProductAPI.GetLowStockProducts,
		},
		{
			Name:        "GetProductSummaryDetails",
			Method:      http.MethodPost,
			Pattern:     "/products/v1/product-summary",
			HandlerFunc: handleFunctions.ProductAPI.GetProductSummaryDetails,
		},
		{
			Name:        "CreateOrder",
			Method:      http.MethodPost,
			Pattern:     "/orders/v1/create-order",
			HandlerFunc: handleFunctions.OrderAPI.CreateOrder,
		},
		{
			Name:        "UpdateOrderStatus",
			Method:      http.MethodPatch,
			Pattern:     "/orders/v1/update-order/:orderId/status",
			HandlerFunc: handleFunctions.OrderAPI.UpdateOrderStatus,
		},
		{
			Name:        "GetOrderProductSummary",
			Method:      http.MethodGet,
			Pattern:     "/orders/v1/product-summary",
			HandlerFunc: handleFunctions.OrderAPI.GetProductSummaryDetails,
		},
	}
}
