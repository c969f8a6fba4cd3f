// Package users provides database operations for user management.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername(ctx, "George")
//	unique, err := repo.IsUniqueUsername(ctx, "george")
package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	*database.Repository[entities.User]
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Repository: database.NewRepository[entities.User](db)}
}

// Update stamps UpdatedDate and writes the user.
func (r *Repository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	user.UpdatedDate = database.NextTimestamp(user.UpdatedDate)
	if err := r.Persist(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByUsername retrieves a user by username, ignoring case.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.Get(ctx, database.NameEquals("username", username), database.Untracked())
}

// IsUniqueUsername reports whether no user holds username yet.
func (r *Repository) IsUniqueUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if errors.Is(err, database.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
