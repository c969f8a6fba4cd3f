package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/chapters"
	"github.com/mrlokans/catalog/internal/database/reviews"
	"github.com/mrlokans/catalog/internal/database/users"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/http"
	"github.com/mrlokans/catalog/internal/scheduler"
	"github.com/mrlokans/catalog/internal/services"
	"github.com/mrlokans/catalog/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.UserRepository = (*users.Repository)(nil)
var _ services.AuthorRepository = (*authors.Repository)(nil)
var _ services.BookRepository = (*books.Repository)(nil)
var _ services.ChapterRepository = (*chapters.Repository)(nil)
var _ services.ReviewRepository = (*reviews.Repository)(nil)

// Cross-entity lookups
var _ services.Getter[entities.User] = (*users.Repository)(nil)
var _ services.Getter[entities.Author] = (*authors.Repository)(nil)
var _ services.Getter[entities.Book] = (*books.Repository)(nil)
var _ services.BookLister = (*books.Repository)(nil)

// =============================================================================
// Catalog Services
// =============================================================================

var _ http.UserService = (*services.UserService)(nil)
var _ http.AuthorService = (*services.AuthorService)(nil)
var _ http.BookService = (*services.BookService)(nil)
var _ http.ChapterService = (*services.ChapterService)(nil)
var _ http.ReviewService = (*services.ReviewService)(nil)

// =============================================================================
// Audit Trail and Background Work
// =============================================================================

var _ http.ChangeRecorder = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.TaskQueueStatus = (*tasks.Client)(nil)
var _ http.Pinger = (*database.Database)(nil)
var _ http.Flusher = (*database.Database)(nil)
