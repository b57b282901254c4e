package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/cart"
	"storefront/internal/service/customer"
	"storefront/internal/service/guest"
)

const (
	ctxCustomerKey    = "customer"
	ctxAccessTokenKey = "accessToken"
	ctxBackingKey     = "backing"
	ctxGuestKey       = "guestSession"

	guestSessionHeader = "X-Guest-Session"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// authMiddleware requires a valid customer access token.
func authMiddleware(customers *customer.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		cust, err := customers.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(ctxCustomerKey, cust)
		c.Set(ctxAccessTokenKey, token)
		c.Next()
	}
}

// backingMiddleware resolves which cart representation a request addresses.
// A valid bearer token wins; otherwise the guest session header is required.
func backingMiddleware(customers *customer.Service, guests *guest.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			cust, err := customers.LookupByToken(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.Set(ctxCustomerKey, cust)
			c.Set(ctxBackingKey, cart.CustomerBacking(cust.ID))
			c.Next()
			return
		}

		session := strings.TrimSpace(c.GetHeader(guestSessionHeader))
		if session == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication or guest session required"})
			return
		}
		if err := guests.Lookup(c.Request.Context(), session); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid guest session"})
			return
		}
		c.Set(ctxGuestKey, session)
		c.Set(ctxBackingKey, cart.GuestBacking(session))
		c.Next()
	}
}

func currentCustomer(c *gin.Context) *domain.Customer {
	v, ok := c.Get(ctxCustomerKey)
	if !ok {
		return nil
	}
	cust, _ := v.(*domain.Customer)
	return cust
}

func currentBacking(c *gin.Context) (cart.Backing, bool) {
	v, ok := c.Get(ctxBackingKey)
	if !ok {
		return cart.Backing{}, false
	}
	b, ok := v.(cart.Backing)
	return b, ok
}
