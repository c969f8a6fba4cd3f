package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
)

// resource implements the CRUD endpoints shared by every catalog resource.
type resource[D, C, U any] struct {
	kind     string // singular name used in logs and audit events
	basePath string // e.g. "/api/books"
	svc      CatalogService[D, C, U]
	byName   NameFinder[D]
	idOf     func(D) uint
	nameOf   func(D) string
	updateID func(U) uint
	recorder ChangeRecorder
	log      logrus.FieldLogger
}

func newResource[D, C, U any](
	kind, basePath string,
	svc CatalogService[D, C, U],
	idOf func(D) uint,
	nameOf func(D) string,
	updateID func(U) uint,
	recorder ChangeRecorder,
	log logrus.FieldLogger,
) *resource[D, C, U] {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	r := &resource[D, C, U]{
		kind:     kind,
		basePath: basePath,
		svc:      svc,
		idOf:     idOf,
		nameOf:   nameOf,
		updateID: updateID,
		recorder: recorder,
		log:      log.WithField("resource", kind),
	}
	if finder, ok := svc.(NameFinder[D]); ok {
		r.byName = finder
	}
	return r
}

// List handles GET /api/{resource}.
func (r *resource[D, C, U]) List(c *gin.Context) {
	items, err := r.svc.GetAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, r.log, err, "list "+r.kind)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/{resource}/{ref} where ref is an id or a name.
func (r *resource[D, C, U]) Get(c *gin.Context) {
	id, name, ok := parseRef(c, "id")
	if !ok {
		return
	}

	var (
		item D
		err  error
	)
	switch {
	case id != 0:
		item, err = r.svc.GetByID(c.Request.Context(), id)
	case r.byName != nil:
		item, err = r.byName.GetByName(c.Request.Context(), name)
	default:
		respondBadRequest(c, "invalid id")
		return
	}
	if err != nil {
		respondLookupError(c, r.log, err, "get "+r.kind)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/{resource}.
func (r *resource[D, C, U]) Create(c *gin.Context) {
	var in C
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	res := r.svc.Create(c.Request.Context(), in)
	if !res.Success {
		respondFailure(c, r.log, res, "create "+r.kind)
		return
	}

	created := *res.Data
	id := r.idOf(created)
	r.record(c, entities.AuditEventCreate, id, r.nameOf(created), nil)

	c.Header("Location", fmt.Sprintf("%s/%d", r.basePath, id))
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/{resource}/{id}. The body must carry the same id.
func (r *resource[D, C, U]) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in U
	if err := c.ShouldBindJSON(&in); err != nil {
		respondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if bodyID := r.updateID(in); bodyID != id {
		respondBadRequest(c, fmt.Sprintf("ID mismatch: path has %d, body has %d", id, bodyID))
		return
	}

	if res := r.svc.UpdateFull(c.Request.Context(), in); !res.Success {
		respondFailure(c, r.log, res, "update "+r.kind)
		return
	}

	r.record(c, entities.AuditEventUpdate, id, "", nil)
	c.Status(http.StatusNoContent)
}

// Patch handles PATCH /api/{resource}/{id} with a JSON Patch document.
func (r *resource[D, C, U]) Patch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var doc patch.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondBadRequest(c, "Invalid patch document: "+err.Error())
		return
	}

	if res := r.svc.UpdatePartial(c.Request.Context(), id, doc); !res.Success {
		respondFailure(c, r.log, res, "patch "+r.kind)
		return
	}

	r.record(c, entities.AuditEventPatch, id, "", map[string]any{"paths": doc.Paths()})
	c.Status(http.StatusNoContent)
}

// Delete handles DELETE /api/{resource}/{id}.
func (r *resource[D, C, U]) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if res := r.svc.Delete(c.Request.Context(), id); !res.Success {
		respondFailure(c, r.log, res, "delete "+r.kind)
		return
	}

	r.record(c, entities.AuditEventDelete, id, "", nil)
	c.Status(http.StatusNoContent)
}

func (r *resource[D, C, U]) record(c *gin.Context, eventType entities.AuditEventType, id uint, name string, details map[string]any) {
	r.recorder.LogChange(audit.Change{
		RequestID:  requestID(c),
		EventType:  eventType,
		EntityType: r.kind,
		EntityID:   id,
		Name:       name,
		Details:    details,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
}

// register mounts the CRUD routes on group, using list for the collection.
func (r *resource[D, C, U]) register(group *gin.RouterGroup, list gin.HandlerFunc) {
	if list == nil {
		list = r.List
	}
	group.GET("", list)
	group.POST("", r.Create)
	group.GET("/:id", r.Get)
	group.PUT("/:id", r.Update)
	group.PATCH("/:id", r.Patch)
	group.DELETE("/:id", r.Delete)
}
