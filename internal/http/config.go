package http

import "github.com/sirupsen/logrus"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Catalog services
	Users    UserService
	Authors  AuthorService
	Books    BookService
	Chapters ChapterService
	Reviews  ReviewService

	// Audit trail (optional). Recorder receives every mutation, Events
	// serves GET /api/audit.
	Recorder ChangeRecorder
	Events   AuditReader

	// Health checks
	Database Pinger
	Tasks    TaskQueueStatus // nil when the task queue is disabled

	// UnitOfWork flushes tracked records at the end of successful API
	// requests. nil disables the flush.
	UnitOfWork Flusher

	// CORS allowed origins; empty or "*" allows any origin.
	AllowOrigins []string

	Logger  logrus.FieldLogger
	Version string
}
