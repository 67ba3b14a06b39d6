package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// The sync protocol speaks plain JSON bodies: successes are the payload
// itself (or {"success": true}), failures are {"error": "..."}. Devices
// already in the field parse these shapes, so no envelope is added.

type ErrorResponse struct {
	Error string `json:"error"`
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

// HandleServiceError maps service sentinel errors onto the wire contract.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnknownAction):
		RespondError(c, http.StatusBadRequest, "Unknown action")
	case errors.Is(err, ErrInvalidPayload):
		RespondError(c, http.StatusBadRequest, "Invalid payload")
	case errors.Is(err, ErrURLRequired):
		RespondError(c, http.StatusBadRequest, "URL is required")
	case errors.Is(err, ErrUnsupportedMapLink):
		RespondError(c, http.StatusBadRequest, "Only Google Maps short links are supported")
	case errors.Is(err, ErrLinkResolveFailed):
		RespondError(c, http.StatusInternalServerError, "Failed to resolve the link")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Failed to process request")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Failed to process request")
	}
}
