package inventoryserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	productsmapper "github.com/cams-platform/inventory-management/internal/domains/products/adapters/http/mapper"
	productsports "github.com/cams-platform/inventory-management/internal/domains/products/ports"
	"github.com/cams-platform/inventory-management/internal/shared/apiresponse"
)

// ProductAPI wires HTTP transport with the products bounded context service.
type ProductAPI struct {
	service productsports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service productsports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /products/v1/create-products
// Onboards a batch of products; partial success is the normal outcome.
func (api *ProductAPI) CreateProducts(c *gin.Context) {
	var payload []productsmapper.ProductSubmission
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidationFailed(c, err)
		return
	}
	created, rejections, err := api.service.CreateProducts(c.Request.Context(), productsmapper.ToSubmissions(payload))
	if err != nil {
		respondInternalError(c, err)
		return
	}
	response := apiresponse.Response{
		Success: len(created) > 0,
		Data:    productsmapper.FromProjectionList(created),
		Errors:  rejections,
	}
	status := http.StatusOK
	if len(created) > 0 {
		status = http.StatusCreated
	}
	c.JSON(status, response)
}

// Get /products/v1/low-stock
// Lists products with stock strictly below the threshold.
func (api *ProductAPI) GetLowStockProducts(c *gin.Context) {
	threshold, err := strconv.ParseInt(c.Query("stockThreshold"), 10, 32)
	if err != nil {
		respondValidationFailed(c, err)
		return
	}
	products, err := api.service.LowStock(c.Request.Context(), int32(threshold))
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusOK, apiresponse.Failed("No products found with the given stock threshold"))
		return
	}
	c.JSON(http.StatusOK, apiresponse.OK(productsmapper.FromProjectionList(products)))
}

// Post /products/v1/product-summary
// Aggregates externally supplied order details into per-product totals.
func (api *ProductAPI) GetProductSummaryDetails(c *gin.Context) {
	var payload []productsmapper.OrderDetailsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondValidationFailed(c, err)
		return
	}
	summary, err := api.service.ProductSummary(c.Request.Context(), productsmapper.ToOrderDetails(payload))
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if len(summary) == 0 {
		c.JSON(http.StatusOK, apiresponse.Failed("No product summary found for the given orders"))
		return
	}
	c.JSON(http.StatusOK, apiresponse.OK(summary))
}
