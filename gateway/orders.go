package gateway

import (
	"net/http"

	"github.com/example/storefront/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type placeOrderRequest struct {
	CustomerID int               `json:"customerId"`
	Products   []models.LineItem `json:"products"`
}

// @Summary Place an order
// @Description Stock is not checked; an order may take a product below zero.
// @Tags orders
// @Accept json
// @Produce json
// @Param order body placeOrderRequest true "Customer and order lines"
// @Success 200 {object} orderResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /order [post]
func (g *Gateway) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	orderID, err := g.store.PlaceOrder(c.Request.Context(), req.CustomerID, req.Products)
	if err != nil {
		g.storageError(c, "place_order", err)
		return
	}

	g.logger.Info("Order placed",
		zap.Int("order_id", orderID),
		zap.Int("customer_id", req.CustomerID),
		zap.Int("line_count", len(req.Products)))
	g.audit.OrderPlaced(orderID, req.CustomerID, req.Products)

	c.JSON(http.StatusOK, orderResponse{OrderID: orderID})
}

// @Summary Caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CustomerOrder
// @Failure 403 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /orders [get]
func (g *Gateway) listOrders(c *gin.Context) {
	orders, err := g.store.OrdersByUsername(c.Request.Context(), c.GetString(usernameKey))
	if err != nil {
		g.storageError(c, "list_orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
