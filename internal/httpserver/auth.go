package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/customer"
)

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func newHandlers(deps Deps, logger *log.Logger) *handlers {
	return &handlers{deps: deps, logger: logger}
}

func (h *handlers) signup(c *gin.Context) {
	var in customer.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cust, err := h.deps.Customers.Signup(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": cust})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	cust, access, err := h.deps.Customers.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, customer.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	// Signing in is the moment the guest cart folds into the customer cart.
	// The merge is best effort; a failed line never blocks the login.
	if session := strings.TrimSpace(c.GetHeader(guestSessionHeader)); session != "" {
		if err := h.deps.Reconciler.MergeOnLogin(c.Request.Context(), session, cust.ID); err != nil {
			h.logger.Printf("login: merge guest cart %s into customer %s: %v", session, cust.ID, err)
		}
		h.deps.Guests.Drop(c.Request.Context(), session)
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":    cust,
		"accessToken": access,
		"expiresIn":   h.deps.Customers.AccessTTLSeconds(),
	})
}

func (h *handlers) me(c *gin.Context) {
	cust := currentCustomer(c)
	if cust == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": cust})
}

func (h *handlers) logout(c *gin.Context) {
	token := c.GetString(ctxAccessTokenKey)
	if err := h.deps.Customers.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	// A lingering guest cart from before the signed-in period is cleared so
	// the next guest visit starts empty. The customer cart stays.
	if session := strings.TrimSpace(c.GetHeader(guestSessionHeader)); session != "" {
		if err := h.deps.Carts.ClearGuest(c.Request.Context(), session); err != nil {
			h.logger.Printf("logout: clear guest cart %s: %v", session, err)
		}
	}

	c.Status(http.StatusNoContent)
}

func (h *handlers) verifyCustomerEmail(c *gin.Context) {
	if h.deps.AdminToken == "" || c.GetHeader("X-Admin-Token") != h.deps.AdminToken {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin token required"})
		return
	}

	id := c.Param("id")
	if err := h.deps.Customers.MarkEmailVerified(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		h.logger.Printf("verify email: customer %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify email"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) issueGuestSession(c *gin.Context) {
	id, err := h.deps.Guests.Issue(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue guest session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": id,
		"expiresIn": h.deps.Guests.TTLSeconds(),
	})
}
