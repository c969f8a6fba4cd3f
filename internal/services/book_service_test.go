package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

func TestBookService_ColferScenario(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, author, book := seedColfer(t, f)

	assert.Greater(t, book.ID, uint(0))
	assert.Equal(t, "Scifi", book.Genre)
	assert.Equal(t, 4, book.Rating)

	list, err := f.books.GetBooksByAuthorID(ctx, author.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, book.ID, list[0].ID)
	assert.Equal(t, "Artemis Fowl", list[0].Name)
}

func TestBookService_Create(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, author, _ := seedColfer(t, f)

	t.Run("missing author persists nothing", func(t *testing.T) {
		res := f.books.Create(ctx, dto.BookCreateDTO{AuthorID: 999, Name: "The Hobbit"})
		assert.Equal(t, result.CodeValidation, res.ErrorCode)
		assert.Equal(t, "Author with ID 999 does not exist.", res.ErrorMessage)

		all, err := f.books.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("duplicate name ignoring case", func(t *testing.T) {
		res := f.books.Create(ctx, dto.BookCreateDTO{AuthorID: author.ID, Name: "ARTEMIS FOWL", Rating: 1})
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
		assert.Equal(t, "Book 'ARTEMIS FOWL' already exists.", res.ErrorMessage)

		got, err := f.books.GetByName(ctx, "artemis fowl")
		require.NoError(t, err)
		assert.Equal(t, 4, got.Rating)
	})

	t.Run("unknown genre", func(t *testing.T) {
		res := f.books.Create(ctx, dto.BookCreateDTO{AuthorID: author.ID, Name: "The Arctic Incident", Genre: "Cookbook"})
		assert.Equal(t, result.CodeValidation, res.ErrorCode)
	})

	t.Run("ids are immutable across reads", func(t *testing.T) {
		created := mustSucceed(t, f.books.Create(ctx, dto.BookCreateDTO{AuthorID: author.ID, Name: "The Eternity Code"}))
		for i := 0; i < 2; i++ {
			got, err := f.books.GetByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.ID, got.ID)
		}
	})
}

func TestBookService_Queries(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, author, _ := seedColfer(t, f)
	mustSucceed(t, f.books.Create(ctx, dto.BookCreateDTO{AuthorID: author.ID, Name: "The Supernaturalist", Genre: "fantasy"}))

	t.Run("by genre", func(t *testing.T) {
		got, err := f.books.GetBooksByGenre(ctx, entities.GenreFantasy)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Fantasy", got[0].Genre)

		_, err = f.books.GetBooksByGenre(ctx, entities.GenreHorror)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("by author name", func(t *testing.T) {
		got, err := f.books.GetBooksByAuthorName(ctx, "eoin colfer")
		require.NoError(t, err)
		assert.Len(t, got, 2)

		_, err = f.books.GetBooksByAuthorName(ctx, "Nobody")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, "No books found for author 'Nobody'.", err.Error())
	})

	t.Run("has valid author", func(t *testing.T) {
		ok, err := f.books.BookHasValidAuthor(ctx, author.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.books.BookHasValidAuthor(ctx, 999)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestBookService_UpdateFull(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, author, book := seedColfer(t, f)

	in := dto.BookUpdateDTO{
		ID:          book.ID,
		AuthorID:    author.ID,
		Name:        "Artemis Fowl",
		Title:       "Artemis Fowl (2001)",
		Description: "Criminal mastermind meets fairies",
		ReadCount:   3,
		Genre:       "Fantasy",
		Rating:      5,
	}
	mustSucceed(t, f.books.UpdateFull(ctx, in))

	got, err := f.books.GetByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, 3, got.ReadCount)
	assert.Equal(t, "Fantasy", got.Genre)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, book.ID, got.ID)
	assert.True(t, got.CreatedDate.Equal(book.CreatedDate))
	assert.True(t, got.UpdatedDate.After(book.UpdatedDate))

	t.Run("renaming onto another book is a conflict", func(t *testing.T) {
		sequel := mustSucceed(t, f.books.Create(ctx, dto.BookCreateDTO{AuthorID: author.ID, Name: "The Arctic Incident"}))

		rename := in
		rename.ID = sequel.ID
		rename.Name = "ARTEMIS FOWL"
		res := f.books.UpdateFull(ctx, rename)
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
		assert.Equal(t, "Book 'ARTEMIS FOWL' already exists.", res.ErrorMessage)

		res = f.books.UpdatePartial(ctx, sequel.ID, patch.Document{patch.Set("/name", "artemis fowl")})
		assert.Equal(t, result.CodeConflict, res.ErrorCode)

		got, err := f.books.GetByID(ctx, sequel.ID)
		require.NoError(t, err)
		assert.Equal(t, "The Arctic Incident", got.Name)
	})

	t.Run("missing book", func(t *testing.T) {
		in.ID = 999
		res := f.books.UpdateFull(ctx, in)
		assert.Equal(t, result.CodeNotFound, res.ErrorCode)
	})
}

func TestBookService_UpdatePartial(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, _, book := seedColfer(t, f)
	time.Sleep(2 * time.Millisecond)

	t.Run("rating 4 to 5", func(t *testing.T) {
		mustSucceed(t, f.books.UpdatePartial(ctx, book.ID, patch.Document{patch.Set("/rating", 5)}))

		got, err := f.books.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Rating)
		assert.True(t, got.UpdatedDate.After(book.UpdatedDate))
	})

	t.Run("applying twice is idempotent", func(t *testing.T) {
		first := mustSucceed(t, f.books.UpdatePartial(ctx, book.ID, patch.Document{patch.Set("/title", "Book One")}))
		second := mustSucceed(t, f.books.UpdatePartial(ctx, book.ID, patch.Document{patch.Set("/title", "Book One")}))

		assert.Equal(t, first.Title, second.Title)
		assert.Equal(t, first.Rating, second.Rating)
		assert.Equal(t, first.Genre, second.Genre)
		assert.Equal(t, first.Name, second.Name)
	})

	t.Run("bad operation aborts with no partial effect", func(t *testing.T) {
		res := f.books.UpdatePartial(ctx, book.ID, patch.Document{
			patch.Set("/description", "should not stick"),
			patch.Set("/rating", "five"),
		})
		assert.Equal(t, result.CodeValidation, res.ErrorCode)
		assert.Contains(t, res.ErrorMessage, "Patch operation failed: ")

		got, err := f.books.GetByID(ctx, book.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Description)
	})

	t.Run("immutable fields", func(t *testing.T) {
		for _, path := range []string{"/id", "/createdDate", "/updatedDate"} {
			res := f.books.UpdatePartial(ctx, book.ID, patch.Document{patch.Set(path, 1)})
			assert.Equal(t, result.CodeValidation, res.ErrorCode, path)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		res := f.books.UpdatePartial(ctx, book.ID, patch.Document{})
		assert.Equal(t, result.CodeValidation, res.ErrorCode)
	})

	t.Run("genre is normalized", func(t *testing.T) {
		got := mustSucceed(t, f.books.UpdatePartial(ctx, book.ID, patch.Document{patch.Set("/genre", "mystery")}))
		assert.Equal(t, "Mystery", got.Genre)
	})
}

func TestBookService_Delete(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, _, book := seedColfer(t, f)

	require.True(t, f.books.Delete(ctx, book.ID).Success)

	_, err := f.books.GetByID(ctx, book.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	res := f.books.Delete(ctx, book.ID)
	assert.Equal(t, result.CodeNotFound, res.ErrorCode)
	assert.Equal(t, "Book with ID 1 not found.", res.ErrorMessage)
}
