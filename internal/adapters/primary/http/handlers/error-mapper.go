package handlers

import (
	"errors"
	"net/http"

	"salary-bias-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrMetadataNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidSampleSize),
		errors.Is(err, domain.ErrInvalidIterations),
		errors.Is(err, domain.ErrInvalidResponse),
		errors.Is(err, domain.ErrMissingParticipant),
		errors.Is(err, domain.ErrUnknownCluster):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Data cannot satisfy the request
	case errors.Is(err, domain.ErrInsufficientData),
		errors.Is(err, domain.ErrMalformedInput):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	// Data source is broken
	case errors.Is(err, domain.ErrSchemaMismatch):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
