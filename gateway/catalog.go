package gateway

import (
	"fmt"
	"net/http"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type categoryRequest struct {
	CategoryName string `json:"categoryName"`
	Description  string `json:"description"`
}

type productRequest struct {
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	ImageURL    string          `json:"imageUrl"`
	Category    string          `json:"category"`
	Amount      int             `json:"amount"`
}

type priceUpdateRequest struct {
	ID    *int             `json:"id" binding:"required"`
	Price *decimal.Decimal `json:"price" binding:"required" swaggertype:"string"`
}

// listProducts godoc
// @Summary List products
// @Description Filters by id, productname or category; the first non-empty filter wins.
// @Tags catalog
// @Produce json
// @Param id query int false "Product id"
// @Param productname query string false "Product name"
// @Param category query string false "Category name"
// @Success 200 {array} models.CatalogProduct
// @Failure 500 {object} errorResponse
// @Router /products [get]
func (g *Gateway) listProducts(c *gin.Context) {
	products, err := g.store.ListProducts(c.Request.Context(), repository.ProductFilter{
		ID:       c.Query("id"),
		Name:     c.Query("productname"),
		Category: c.Query("category"),
	})
	if err != nil {
		g.storageError(c, "list_products", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Param categoryname query string false "Category name"
// @Success 200 {array} models.Category
// @Failure 500 {object} errorResponse
// @Router /categories [get]
func (g *Gateway) listCategories(c *gin.Context) {
	categories, err := g.store.ListCategories(c.Request.Context(), c.Query("categoryname"))
	if err != nil {
		g.storageError(c, "list_categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// @Summary Add categories
// @Tags catalog
// @Accept json
// @Produce json
// @Param categories body []categoryRequest true "Categories"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /categories [post]
func (g *Gateway) addCategories(c *gin.Context) {
	var req []categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	categories := make([]models.Category, len(req))
	for i, r := range req {
		categories[i] = models.Category{CategoryName: r.CategoryName, Description: r.Description}
	}

	if err := g.store.AddCategories(c.Request.Context(), categories); err != nil {
		g.storageError(c, "add_categories", err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Categories added!"})
}

// @Summary Add products
// @Tags catalog
// @Accept json
// @Produce json
// @Param products body []productRequest true "Products"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /products [post]
func (g *Gateway) addProducts(c *gin.Context) {
	var req []productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	products := make([]models.Product, len(req))
	for i, r := range req {
		if r.Price.IsNegative() || r.Amount < 0 {
			respondError(c, http.StatusBadRequest, "Price and amount must not be negative")
			return
		}
		products[i] = models.Product{
			ProductName: r.ProductName,
			Price:       r.Price,
			ImageURL:    r.ImageURL,
			Category:    r.Category,
			Amount:      r.Amount,
		}
	}

	if err := g.store.AddProducts(c.Request.Context(), products); err != nil {
		g.storageError(c, "add_products", err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Products added!"})
}

// @Summary Update a product price
// @Tags catalog
// @Accept json
// @Produce json
// @Param update body priceUpdateRequest true "Product id and new price"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /products/priceupdate [post]
func (g *Gateway) updatePrice(c *gin.Context) {
	var req priceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Price and id are both required for request")
		return
	}
	if req.Price.IsNegative() {
		respondError(c, http.StatusBadRequest, "Price must not be negative")
		return
	}

	if err := g.store.UpdatePrice(c.Request.Context(), *req.ID, *req.Price); err != nil {
		g.storageError(c, "update_price", err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Price updated successfully for product id %d", *req.ID)})
}
