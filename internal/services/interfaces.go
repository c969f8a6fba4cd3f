package services

import (
	"context"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Getter looks up single records. Services use it for cross-entity checks
// against repositories they do not own.
type Getter[E any] interface {
	Get(ctx context.Context, opts ...database.QueryOption) (*E, error)
}

// entityStore is the part of a typed repository every service needs.
type entityStore[E any] interface {
	database.Store[E]
	Update(ctx context.Context, entity *E) (*E, error)
}

// UserRepository is implemented by users.Repository.
type UserRepository interface {
	entityStore[entities.User]
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	IsUniqueUsername(ctx context.Context, username string) (bool, error)
}

// AuthorRepository is implemented by authors.Repository.
type AuthorRepository interface {
	entityStore[entities.Author]
	GetByName(ctx context.Context, name string) (*entities.Author, error)
}

// BookRepository is implemented by books.Repository.
type BookRepository interface {
	entityStore[entities.Book]
	BookLister
	GetByName(ctx context.Context, name string) (*entities.Book, error)
	GetBooksByAuthorName(ctx context.Context, authorName string) ([]entities.Book, error)
	GetBooksByGenre(ctx context.Context, genre entities.Genre) ([]entities.Book, error)
}

// BookLister lists the books of one author.
type BookLister interface {
	GetBooksByAuthorID(ctx context.Context, authorID uint) ([]entities.Book, error)
}

// ChapterRepository is implemented by chapters.Repository.
type ChapterRepository interface {
	entityStore[entities.Chapter]
	GetByTitle(ctx context.Context, title string) (*entities.Chapter, error)
	GetChaptersByBookID(ctx context.Context, bookID uint) ([]entities.Chapter, error)
}

// ReviewRepository is implemented by reviews.Repository.
type ReviewRepository interface {
	entityStore[entities.Review]
	GetReviewsByBookID(ctx context.Context, bookID uint) ([]entities.Review, error)
	GetReviewsByUserName(ctx context.Context, name string) ([]entities.Review, error)
}
