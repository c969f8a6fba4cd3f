// Package reviews provides database operations for book reviews.
package reviews

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

type Repository struct {
	*database.Repository[entities.Review]
	users *database.Repository[entities.User]
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Repository: database.NewRepository[entities.Review](db),
		users:      database.NewRepository[entities.User](db),
	}
}

// Update stamps UpdatedDate and writes the review.
func (r *Repository) Update(ctx context.Context, review *entities.Review) (*entities.Review, error) {
	review.UpdatedDate = database.NextTimestamp(review.UpdatedDate)
	if err := r.Persist(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// GetReviewsByBookID lists the reviews of a book.
func (r *Repository) GetReviewsByBookID(ctx context.Context, bookID uint) ([]entities.Review, error) {
	return r.GetAll(ctx, database.Where("book_id = ?", bookID))
}

// GetReviewsByUserID lists the reviews written by a user.
func (r *Repository) GetReviewsByUserID(ctx context.Context, userID uint) ([]entities.Review, error) {
	return r.GetAll(ctx, database.Where("user_id = ?", userID))
}

// GetReviewsByUserName resolves the reviewer by name, ignoring case, and
// lists their reviews. Returns database.ErrNotFound when no user matches.
func (r *Repository) GetReviewsByUserName(ctx context.Context, name string) ([]entities.Review, error) {
	user, err := r.users.Get(ctx, database.NameEquals("name", name), database.Untracked())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve reviewer %q: %w", name, err)
	}
	return r.GetReviewsByUserID(ctx, user.ID)
}
