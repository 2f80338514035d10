// Package handlers implements the explorer routes on top of the per-network
// providers.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/chain-explorer/internal/api/middleware"
	"github.com/thanhnp/chain-explorer/internal/apperrors"
	"github.com/thanhnp/chain-explorer/internal/provider"
)

// policy is how a route reports a failed lookup
type policy struct {
	// exhausted is the status written when every provider failed:
	// 503, 404, or 200 with an empty list
	exhausted   int
	unavailable string
	notFound    string
	internal    string
}

// listPolicy is for lists whose outage is reported as a 503
func listPolicy(unavailable, internal string) policy {
	return policy{
		exhausted:   http.StatusServiceUnavailable,
		unavailable: unavailable,
		notFound:    "Not found",
		internal:    internal,
	}
}

// detailPolicy is for single records: an outage reads as not found
func detailPolicy(notFound, internal string) policy {
	return policy{
		exhausted:   http.StatusNotFound,
		unavailable: notFound,
		notFound:    notFound,
		internal:    internal,
	}
}

// emptyPolicy is for lists that degrade to [] during an outage
func emptyPolicy(internal string) policy {
	return policy{
		exhausted: http.StatusOK,
		notFound:  "Not found",
		internal:  internal,
	}
}

func respondError(c *gin.Context, err error, p policy) {
	_ = c.Error(err)

	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidNetwork:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid network"})
	case apperrors.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": p.notFound})
	case apperrors.KindUnavailable:
		if p.exhausted == http.StatusOK {
			c.JSON(http.StatusOK, []struct{}{})
			return
		}
		c.JSON(p.exhausted, gin.H{"error": p.unavailable})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": p.internal})
	}
}

// providerOf returns the provider ValidateNetwork resolved
func providerOf(c *gin.Context) (provider.Provider, bool) {
	v, ok := c.Get(middleware.ProviderKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(provider.Provider)
	return p, ok
}

// withProvider runs fn with the network's provider. A route registered
// without ValidateNetwork is a wiring bug and fails with a 500.
func withProvider(c *gin.Context, pol policy, fn func(p provider.Provider)) {
	p, ok := providerOf(c)
	if !ok {
		respondError(c, apperrors.New(apperrors.KindInternal, "NO_PROVIDER", "network provider missing"), pol)
		return
	}
	fn(p)
}

// page reads the page query parameter. Anything but a positive integer is
// the first page.
func page(c *gin.Context) int {
	n, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
