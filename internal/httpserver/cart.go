package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/service/cart"
)

func (h *handlers) getCart(c *gin.Context) {
	backing, ok := currentBacking(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no cart identity"})
		return
	}
	view, err := h.deps.Carts.Get(c.Request.Context(), backing)
	if err != nil {
		h.logger.Printf("cart: get for %s %s: %v", backing.Kind(), backing.OwnerID(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) addCartItem(c *gin.Context) {
	backing, ok := currentBacking(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no cart identity"})
		return
	}

	var in cart.AddItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.deps.Carts.AddItem(c.Request.Context(), backing, in); err != nil {
		switch {
		case errors.Is(err, cart.ErrQuantityInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, cart.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Printf("cart: add item for %s %s: %v", backing.Kind(), backing.OwnerID(), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})
		}
		return
	}

	h.respondWithCart(c, backing)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	backing, ok := currentBacking(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no cart identity"})
		return
	}
	lineID := c.Param("lineID")
	if lineID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "line id required"})
		return
	}

	if err := h.deps.Carts.RemoveItem(c.Request.Context(), backing, lineID); err != nil {
		h.logger.Printf("cart: remove line %s for %s %s: %v", lineID, backing.Kind(), backing.OwnerID(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})
		return
	}

	h.respondWithCart(c, backing)
}

func (h *handlers) clearCart(c *gin.Context) {
	backing, ok := currentBacking(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no cart identity"})
		return
	}
	if err := h.deps.Carts.Clear(c.Request.Context(), backing); err != nil {
		h.logger.Printf("cart: clear for %s %s: %v", backing.Kind(), backing.OwnerID(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cart"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) respondWithCart(c *gin.Context, backing cart.Backing) {
	view, err := h.deps.Carts.Get(c.Request.Context(), backing)
	if err != nil {
		h.logger.Printf("cart: reload for %s %s: %v", backing.Kind(), backing.OwnerID(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
		return
	}
	c.JSON(http.StatusOK, view)
}
