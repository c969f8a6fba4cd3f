package http

import (
	"context"

	"github.com/mrlokans/catalog/internal/audit"
	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

// This file consolidates the service contracts used by the controllers.
// Each controller depends only on what it calls.

// CatalogService is the CRUD surface shared by every catalog resource.
// D is the read DTO, C the create DTO and U the full-update DTO.
type CatalogService[D, C, U any] interface {
	GetAll(ctx context.Context) ([]D, error)
	GetByID(ctx context.Context, id uint) (D, error)
	Create(ctx context.Context, in C) result.Result[D]
	Delete(ctx context.Context, id uint) result.Result[D]
	UpdateFull(ctx context.Context, in U) result.Result[D]
	UpdatePartial(ctx context.Context, id uint, doc patch.Document) result.Result[D]
}

// NameFinder is implemented by services whose entities can be addressed by
// name in GET /api/{resource}/{name}.
type NameFinder[D any] interface {
	GetByName(ctx context.Context, name string) (D, error)
}

type UserService interface {
	CatalogService[dto.UserDTO, dto.UserCreateDTO, dto.UserUpdateDTO]
	NameFinder[dto.UserDTO]
}

type AuthorService interface {
	CatalogService[dto.AuthorDTO, dto.AuthorCreateDTO, dto.AuthorUpdateDTO]
	NameFinder[dto.AuthorDTO]
	AuthorWithBooks(ctx context.Context, id uint) (dto.AuthorWithBooksDTO, error)
	AuthorWithUser(ctx context.Context, id uint) result.Result[dto.AuthorWithUserDTO]
}

type BookService interface {
	CatalogService[dto.BookDTO, dto.BookCreateDTO, dto.BookUpdateDTO]
	NameFinder[dto.BookDTO]
	GetBooksByAuthorName(ctx context.Context, authorName string) ([]dto.BookDTO, error)
	GetBooksByGenre(ctx context.Context, genre entities.Genre) ([]dto.BookDTO, error)
}

type ChapterService interface {
	CatalogService[dto.ChapterDTO, dto.ChapterCreateDTO, dto.ChapterUpdateDTO]
	NameFinder[dto.ChapterDTO]
	GetChaptersByBook(ctx context.Context, bookName string) ([]dto.ChapterDTO, error)
	GetChaptersByBookID(ctx context.Context, bookID uint) ([]dto.ChapterDTO, error)
}

type ReviewService interface {
	CatalogService[dto.ReviewDTO, dto.ReviewCreateDTO, dto.ReviewUpdateDTO]
	GetReviewsByUserName(ctx context.Context, name string) ([]dto.ReviewDTO, error)
	GetReviewsByBook(ctx context.Context, bookID uint) ([]dto.ReviewDTO, error)
}

// ChangeRecorder receives an entry for every successful mutation.
type ChangeRecorder interface {
	LogChange(c audit.Change)
}

// AuditReader serves the audit trail.
type AuditReader interface {
	GetEvents(entityType string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Flusher writes the records tracked during a request.
type Flusher interface {
	Flush(ctx context.Context) error
}

// TaskQueueStatus describes the background task queue.
type TaskQueueStatus interface {
	Started() bool
	Workers() int
}

type nopRecorder struct{}

func (nopRecorder) LogChange(audit.Change) {}
