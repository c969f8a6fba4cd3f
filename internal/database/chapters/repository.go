// Package chapters provides database operations for book chapters.
package chapters

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

type Repository struct {
	*database.Repository[entities.Chapter]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Repository: database.NewRepository[entities.Chapter](db)}
}

// Update stamps UpdatedDate and writes the chapter.
func (r *Repository) Update(ctx context.Context, chapter *entities.Chapter) (*entities.Chapter, error) {
	chapter.UpdatedDate = database.NextTimestamp(chapter.UpdatedDate)
	if err := r.Persist(ctx, chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// GetByTitle retrieves the first chapter whose title matches, ignoring case.
func (r *Repository) GetByTitle(ctx context.Context, title string) (*entities.Chapter, error) {
	return r.Get(ctx, database.NameEquals("title", title))
}

// GetChaptersByBookID lists a book's chapters in reading order.
func (r *Repository) GetChaptersByBookID(ctx context.Context, bookID uint) ([]entities.Chapter, error) {
	return r.GetAll(ctx, database.Where("book_id = ?", bookID), database.OrderBy("chapter_number ASC"))
}
