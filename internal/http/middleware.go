package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/database"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"

	contextKeyRequestID = "request_id"
)

// RequestIDMiddleware reuses a client supplied X-Request-ID or generates one,
// and echoes it on the response.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(contextKeyRequestID)
}

// AccessLogMiddleware writes one log line per request.
func AccessLogMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": requestID(c),
		})
		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}

// RecoveryMiddleware turns a panic into a 500 with the standard error body.
func RecoveryMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithFields(logrus.Fields{
			"request_id": requestID(c),
			"panic":      recovered,
		}).Error("Recovered from panic")
		c.AbortWithStatusJSON(500, ErrorResponse{Error: internalErrorMessage})
	})
}

// UnitOfWorkMiddleware scopes a unit of work to each request. Records still
// tracked when a request succeeds are flushed through store; failed requests
// discard them.
func UnitOfWorkMiddleware(store Flusher, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, uow := database.WithUnitOfWork(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		pending := uow.Len()
		if store == nil || pending == 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if err := store.Flush(ctx); err != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"request_id": requestID(c),
				"pending":    pending,
			}).Error("Failed to flush tracked records")
		}
	}
}

// CORSMiddleware allows the configured origins. "*" allows any origin.
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", RequestIDHeader)
	cfg.ExposeHeaders = []string{"Location", RequestIDHeader}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
