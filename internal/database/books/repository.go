// Package books provides database operations for books.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	list, err := repo.GetBooksByAuthorName(ctx, "Eoin Colfer")
//	fantasy, err := repo.GetBooksByGenre(ctx, entities.GenreFantasy)
package books

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	*database.Repository[entities.Book]
	authors *database.Repository[entities.Author]
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: database.NewRepository[entities.Book](db),
		authors:    database.NewRepository[entities.Author](db),
	}
}

// Update stamps UpdatedDate and writes the book.
func (r *Repository) Update(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	book.UpdatedDate = database.NextTimestamp(book.UpdatedDate)
	if err := r.Persist(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetByName retrieves the first book whose name matches, ignoring case.
func (r *Repository) GetByName(ctx context.Context, name string) (*entities.Book, error) {
	return r.Get(ctx, database.NameEquals("name", name))
}

// GetBooksByAuthorID lists the books written by an author.
func (r *Repository) GetBooksByAuthorID(ctx context.Context, authorID uint) ([]entities.Book, error) {
	return r.GetAll(ctx, database.Where("author_id = ?", authorID))
}

// GetBooksByAuthorName resolves the author by name and lists their books.
// An unknown author yields an empty list.
func (r *Repository) GetBooksByAuthorName(ctx context.Context, authorName string) ([]entities.Book, error) {
	author, err := r.authors.Get(ctx, database.NameEquals("name", authorName), database.Untracked())
	if errors.Is(err, database.ErrNotFound) {
		return []entities.Book{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve author %q: %w", authorName, err)
	}
	return r.GetBooksByAuthorID(ctx, author.ID)
}

// GetBooksByGenre lists the books of one genre.
func (r *Repository) GetBooksByGenre(ctx context.Context, genre entities.Genre) ([]entities.Book, error) {
	return r.GetAll(ctx, database.Where("genre = ?", genre))
}
