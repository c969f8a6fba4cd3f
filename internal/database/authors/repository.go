// Package authors provides database operations for authors.
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

type Repository struct {
	*database.Repository[entities.Author]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Repository: database.NewRepository[entities.Author](db)}
}

// Update stamps UpdatedDate and writes the author.
func (r *Repository) Update(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	author.UpdatedDate = database.NextTimestamp(author.UpdatedDate)
	if err := r.Persist(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

// GetByName retrieves the first author whose name matches, ignoring case.
func (r *Repository) GetByName(ctx context.Context, name string) (*entities.Author, error) {
	return r.Get(ctx, database.NameEquals("name", name))
}

// GetAuthorsByUserID lists the authors backed by a user.
func (r *Repository) GetAuthorsByUserID(ctx context.Context, userID uint) ([]entities.Author, error) {
	return r.GetAll(ctx, database.Where("user_id = ?", userID))
}
