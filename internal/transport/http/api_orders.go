package inventoryserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ordersmapper "github.com/cams-platform/inventory-management/internal/domains/orders/adapters/http/mapper"
	orderstypes "github.com/cams-platform/inventory-management/internal/domains/orders/application/types"
	"github.com/cams-platform/inventory-management/internal/domains/orders/domain"
	ordersports "github.com/cams-platform/inventory-management/internal/domains/orders/ports"
	"github.com/cams-platform/inventory-management/internal/shared/apiresponse"
	"github.com/cams-platform/inventory-management/internal/shared/projection"
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /orders/v1/create-order
// Reserves stock for every item and persists the order atomically.
func (api *OrderAPI) CreateOrder(c *gin.Context) {
	var payload ordersmapper.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidationFailed(c, err)
		return
	}
	created, err := api.createOrder(c.Request.Context(), ordersmapper.ToCreateOrderInput(payload))
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	if created == nil {
		c.JSON(http.StatusOK, apiresponse.Failed("Order creation failed or no products were created"))
		return
	}
	c.JSON(http.StatusCreated, apiresponse.OK(ordersmapper.FromProjection(created)))
}

func (api *OrderAPI) createOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*projection.Projection[*domain.Order], error) {
	if api.workflows != nil {
		return api.workflows.CreateOrder(ctx, input)
	}
	return api.service.CreateOrder(ctx, input)
}

// Patch /orders/v1/update-order/:orderId/status
// Overwrites the status of an existing order. An absent order is not an error:
// the call answers 200 with success false.
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseOrderID(c, c.Param("orderId"))
	if !ok {
		return
	}
	status, err := domain.ParseStatus(c.Query("orderStatus"))
	if err != nil {
		respondValidationFailed(c, err)
		return
	}
	updated, err := api.service.UpdateOrderStatus(c.Request.Context(), orderID, status)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	if updated == nil {
		c.JSON(http.StatusOK, apiresponse.Failed("Order not found or could not be updated"))
		return
	}
	c.JSON(http.StatusOK, apiresponse.OK(ordersmapper.FromProjection(updated)))
}

// Get /orders/v1/product-summary
// Aggregates one order's items into per-product totals.
func (api *OrderAPI) GetProductSummaryDetails(c *gin.Context) {
	orderID, ok := parseOrderID(c, c.Query("orderId"))
	if !ok {
		return
	}
	summary, err := api.service.ProductSummary(c.Request.Context(), orderID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	if len(summary) == 0 {
		c.JSON(http.StatusOK, apiresponse.Failed("No product summary found for the given orders"))
		return
	}
	c.JSON(http.StatusOK, apiresponse.OK(summary))
}

func parseOrderID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		respondValidationFailed(c, err)
		return uuid.Nil, false
	}
	return id, true
}
