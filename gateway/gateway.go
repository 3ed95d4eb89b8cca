package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "github.com/example/storefront/docs"
	"github.com/example/storefront/pkg/audit"
	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	usernameKey     = "username"
	requestIDHeader = "X-Request-ID"
)

// ProfileCache is a read-through cache in front of customer profile lookups.
type ProfileCache interface {
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	CacheProfile(ctx context.Context, profile *models.Profile) error
}

// Options carries the optional collaborators. Nil fields are skipped.
type Options struct {
	Cache ProfileCache
	Audit *audit.Recorder
}

// Gateway is the storefront REST API. Every handler maps its own failures to
// a response; there is no shared error middleware.
type Gateway struct {
	config *config.Config
	store  *repository.Store
	issuer *auth.Issuer
	hasher *auth.Hasher
	cache  ProfileCache
	audit  *audit.Recorder
	logger *zap.Logger
	router *gin.Engine
	server *http.Server
}

func NewGateway(cfg *config.Config, store *repository.Store, logger *zap.Logger, opts Options) *Gateway {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(logger))
	router.Use(cors.Default())

	g := &Gateway{
		config: cfg,
		store:  store,
		issuer: auth.NewIssuer(cfg.Auth.JWTSecret),
		hasher: auth.NewHasher(cfg.Auth.BcryptCost),
		cache:  opts.Cache,
		audit:  opts.Audit,
		logger: logger,
		router: router,
	}
	g.server = &http.Server{
		Addr:              g.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return g
}

func (g *Gateway) SetupRoutes() {
	g.router.GET("/health", g.health)

	// Catalog
	g.router.GET("/products", g.listProducts)
	g.router.POST("/products", g.addProducts)
	g.router.POST("/products/priceupdate", g.updatePrice)
	g.router.GET("/categories", g.listCategories)
	g.router.POST("/categories", g.addCategories)

	// Customers
	g.router.POST("/register", g.register)
	g.router.POST("/login", g.login)
	g.router.GET("/customer", g.requireAuth(), g.customerProfile)

	// Orders
	g.router.POST("/order", g.placeOrder)
	g.router.GET("/orders", g.requireAuth(), g.listOrders)

	// Stock reports
	g.router.GET("/stockbalance", g.stockBalance)
	g.router.GET("/lowstockproducts", g.lowStockProducts)

	g.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (g *Gateway) Handler() http.Handler {
	return g.router
}

func (g *Gateway) Addr() string {
	return fmt.Sprintf("%s:%d", g.config.Server.Host, g.config.Server.Port)
}

// Start serves until Shutdown is called.
func (g *Gateway) Start() error {
	g.logger.Info("Gateway starting", zap.String("address", g.Addr()))
	if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	return g.server.Shutdown(ctx)
}

// @Summary Liveness and database ping
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (g *Gateway) health(c *gin.Context) {
	if err := g.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	JWTToken string `json:"jwtToken"`
}

type orderResponse struct {
	OrderID int `json:"orderId"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Error: message})
}

// storageError reports a database failure. The driver message is returned to
// the client as-is.
func (g *Gateway) storageError(c *gin.Context, op string, err error) {
	g.logger.Error("Storage operation failed",
		zap.String("op", op),
		zap.String("request_id", c.GetString(requestIDHeader)),
		zap.Error(err))
	respondError(c, http.StatusInternalServerError, err.Error())
}

func (g *Gateway) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		username, err := g.issuer.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			g.logger.Debug("Rejected bearer token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "Access forbidden."})
			return
		}
		c.Set(usernameKey, username)
		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("request_id", c.GetString(requestIDHeader)),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
