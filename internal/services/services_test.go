package services

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/database/chapters"
	"github.com/mrlokans/catalog/internal/database/reviews"
	"github.com/mrlokans/catalog/internal/database/users"
	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/result"
)

type fixture struct {
	db       *database.Database
	users    *UserService
	authors  *AuthorService
	books    *BookService
	chapters *ChapterService
	reviews  *ReviewService
}

// setupTestDB wires every service against a fresh sqlite database.
func setupTestDB(t *testing.T) (*fixture, func()) {
	t.Helper()
	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	userRepo := users.NewRepository(db.DB)
	authorRepo := authors.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)
	chapterRepo := chapters.NewRepository(db.DB)
	reviewRepo := reviews.NewRepository(db.DB)

	f := &fixture{
		db:       db,
		users:    NewUserService(userRepo, log),
		authors:  NewAuthorService(authorRepo, bookRepo, userRepo, log),
		books:    NewBookService(bookRepo, authorRepo, log),
		chapters: NewChapterService(chapterRepo, bookRepo, log),
		reviews:  NewReviewService(reviewRepo, bookRepo, userRepo, log),
	}
	return f, func() { db.Close() }
}

func mustSucceed[T any](t *testing.T, res result.Result[T]) T {
	t.Helper()
	require.True(t, res.Success, "expected success, got %d: %s", res.ErrorCode, res.ErrorMessage)
	require.NotNil(t, res.Data)
	return *res.Data
}

// seedColfer creates the user, author and book of the Artemis Fowl scenario.
func seedColfer(t *testing.T, f *fixture) (dto.UserDTO, dto.AuthorDTO, dto.BookDTO) {
	t.Helper()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "colfer", Password: "secret", Name: "Eoin Colfer"}))
	author := mustSucceed(t, f.authors.Create(ctx, dto.AuthorCreateDTO{UserID: user.ID, Name: "Eoin Colfer"}))
	book := mustSucceed(t, f.books.Create(ctx, dto.BookCreateDTO{
		AuthorID: author.ID,
		Name:     "Artemis Fowl",
		Genre:    "Scifi",
		Rating:   4,
	}))
	return user, author, book
}
