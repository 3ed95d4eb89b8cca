package gateway

import (
	"errors"
	"net/http"

	"github.com/example/storefront/pkg/auth"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @Summary Register a customer
// @Tags customers
// @Accept x-www-form-urlencoded
// @Produce json
// @Param fname formData string false "First name"
// @Param lname formData string false "Last name"
// @Param username formData string true "Username"
// @Param pw formData string true "Password"
// @Success 200 "Registered"
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /register [post]
func (g *Gateway) register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("pw")
	if username == "" || password == "" {
		respondError(c, http.StatusBadRequest, "username and pw are required")
		return
	}

	hash, err := g.hasher.Hash(password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	customer := &models.Customer{
		FirstName:    c.PostForm("fname"),
		LastName:     c.PostForm("lname"),
		Username:     username,
		PasswordHash: hash,
	}
	if err := g.store.CreateCustomer(c.Request.Context(), customer); err != nil {
		g.storageError(c, "register", err)
		return
	}

	g.audit.CustomerRegistered(username)
	c.Status(http.StatusOK)
}

// @Summary Log in
// @Tags customers
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param pw formData string true "Password"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /login [post]
func (g *Gateway) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("pw")

	hash, err := g.store.PasswordHash(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		g.storageError(c, "login", err)
		return
	}

	if err := g.hasher.Verify(hash, password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "User not authorized")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := g.issuer.Issue(username)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, tokenResponse{JWTToken: token})
}

// @Summary Caller's profile
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /customer [get]
func (g *Gateway) customerProfile(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.GetString(usernameKey)

	if g.cache != nil {
		if profile, err := g.cache.GetProfile(ctx, username); err == nil {
			c.JSON(http.StatusOK, profile)
			return
		} else if !errors.Is(err, repository.ErrCacheMiss) {
			g.logger.Warn("Profile cache read failed", zap.String("username", username), zap.Error(err))
		}
	}

	profile, err := g.store.ProfileByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		g.storageError(c, "customer_profile", err)
		return
	}

	if g.cache != nil {
		if err := g.cache.CacheProfile(ctx, profile); err != nil {
			g.logger.Warn("Profile cache write failed", zap.String("username", username), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, profile)
}
