package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scanlens/backend/internal/domain"
	"github.com/scanlens/backend/internal/usecase"
)

// ProductResolver is the slice of the resolver service the handler needs
type ProductResolver interface {
	Resolve(ctx context.Context, barcode string) (*domain.CanonicalProduct, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver ProductResolver
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver ProductResolver) *Handler {
	return &Handler{resolver: resolver}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scanlens-backend",
		"version": "1.0.0",
	})
}

// LookupProduct validates the barcode path parameter and resolves it through
// the source chain, returning the canonical product record
func (h *Handler) LookupProduct(c *gin.Context) {
	barcode, err := usecase.ValidateBarcode(c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}

	product, err := h.resolver.Resolve(c.Request.Context(), barcode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// respondError maps a domain error onto an HTTP status and a stable machine
// code. The UI renders the message and keys retry behavior off the code.
func respondError(c *gin.Context, err error) {
	status, code := classifyError(err)
	c.JSON(status, gin.H{
		"error": err.Error(),
		"code":  code,
	})
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyBarcode):
		return http.StatusBadRequest, "empty_input"
	case errors.Is(err, domain.ErrBarcodeLength):
		return http.StatusBadRequest, "length_out_of_range"
	case errors.Is(err, domain.ErrBarcodeNonDigit):
		return http.StatusBadRequest, "non_numeric"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusInternalServerError, "configuration_error"
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized, "authentication_error"
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, domain.ErrLookupTimeout):
		return http.StatusGatewayTimeout, "lookup_timeout"
	case errors.Is(err, domain.ErrMalformedRequest):
		return http.StatusBadGateway, "upstream_rejected"
	case errors.Is(err, domain.ErrTransport), errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, "upstream_failure"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
