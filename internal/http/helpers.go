package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/result"
	"github.com/mrlokans/catalog/internal/services"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

const internalErrorMessage = "An unexpected error occurred."

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log logrus.FieldLogger, err error, context string) {
	log.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"context":    context,
	}).WithError(err).Error("Internal error")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondLookupError maps a read failure onto 404 or 500.
func respondLookupError(c *gin.Context, log logrus.FieldLogger, err error, context string) {
	if errors.Is(err, services.ErrNotFound) {
		respondError(c, http.StatusNotFound, err.Error())
		return
	}
	respondInternalError(c, log, err, context)
}

// respondFailure writes a failed result. Messages of 500 results may carry
// store details, so they are logged rather than returned.
func respondFailure[T any](c *gin.Context, log logrus.FieldLogger, r result.Result[T], context string) {
	if r.ErrorCode == http.StatusInternalServerError {
		respondInternalError(c, log, r.Err(), context)
		return
	}
	respondError(c, r.HTTPStatus(), r.ErrorMessage)
}

// --- Parameter Parsing ---

// parseIDParam extracts a positive integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	if id == 0 {
		respondBadRequest(c, paramName+" must be greater than zero")
		return 0, false
	}
	return uint(id), true
}

// parseRef reads a path segment that is either an id or a name. Anything
// that parses as an integer is an id and must be positive.
func parseRef(c *gin.Context, paramName string) (id uint, name string, ok bool) {
	raw := c.Param(paramName)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n <= 0 || n > int64(^uint32(0)) {
			respondBadRequest(c, paramName+" must be greater than zero")
			return 0, "", false
		}
		return uint(n), "", true
	}
	name = strings.TrimSpace(raw)
	if name == "" {
		respondBadRequest(c, "name must not be empty")
		return 0, "", false
	}
	return 0, name, true
}

// parseQueryInt returns the integer query parameter or def when it is
// absent or malformed.
func parseQueryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
