package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	defaultAuditLimit = 25
	maxAuditLimit     = 100
)

type AuditController struct {
	events AuditReader
	log    logrus.FieldLogger
}

func NewAuditController(events AuditReader, log logrus.FieldLogger) *AuditController {
	return &AuditController{
		events: events,
		log:    log,
	}
}

// GetAuditEvents returns paginated audit events as JSON, newest first.
// GET /api/audit?limit=&offset=&entityType=
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit := parseQueryInt(c, "limit", defaultAuditLimit)
	offset := parseQueryInt(c, "offset", 0)
	if limit < 1 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}
	if offset < 0 {
		offset = 0
	}

	events, total, err := ac.events.GetEvents(c.Query("entityType"), limit, offset)
	if err != nil {
		respondInternalError(c, ac.log, err, "audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.JSON(http.StatusOK, PaginatedResponse{
		Data:       events,
		Total:      total,
		Limit:      limit,
		Offset:     offset,
		HasMore:    int64(offset+len(events)) < total,
		TotalPages: totalPages,
	})
}
