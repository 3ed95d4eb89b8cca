package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// @Summary Stock balance
// @Description With total=true returns only the grand total.
// @Tags stock
// @Produce json
// @Param id query int false "Product id"
// @Param total query bool false "Grand total only"
// @Success 200 {array} models.StockBalance
// @Failure 500 {object} errorResponse
// @Router /stockbalance [get]
func (g *Gateway) stockBalance(c *gin.Context) {
	ctx := c.Request.Context()

	if strings.EqualFold(c.Query("total"), "true") {
		total, err := g.store.GrandTotal(ctx)
		if err != nil {
			g.storageError(c, "grand_total", err)
			return
		}
		c.JSON(http.StatusOK, total)
		return
	}

	rows, err := g.store.StockBalance(ctx, c.Query("id"))
	if err != nil {
		g.storageError(c, "stock_balance", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// @Summary Products ordered beyond stock
// @Tags stock
// @Produce json
// @Success 200 {array} models.LowStockProduct
// @Failure 500 {object} errorResponse
// @Router /lowstockproducts [get]
func (g *Gateway) lowStockProducts(c *gin.Context) {
	rows, err := g.store.LowStockProducts(c.Request.Context())
	if err != nil {
		g.storageError(c, "low_stock_products", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
