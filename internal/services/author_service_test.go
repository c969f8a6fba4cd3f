package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

func TestAuthorService_Create(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "george", Password: "secret", Name: "J.R.R Tolkien"}))

	t.Run("missing user is a validation error", func(t *testing.T) {
		res := f.authors.Create(ctx, dto.AuthorCreateDTO{UserID: 999, Name: "Ghost"})
		assert.False(t, res.Success)
		assert.Equal(t, result.CodeValidation, res.ErrorCode)
		assert.Equal(t, "User with ID 999 does not exist.", res.ErrorMessage)

		all, err := f.authors.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	author := mustSucceed(t, f.authors.Create(ctx, dto.AuthorCreateDTO{UserID: user.ID, Name: "J.R.R Tolkien"}))
	assert.Greater(t, author.ID, uint(0))
	assert.Equal(t, user.ID, author.UserID)

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		res := f.authors.Create(ctx, dto.AuthorCreateDTO{UserID: user.ID, Name: "j.r.r TOLKIEN"})
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
		assert.Equal(t, "Author 'j.r.r TOLKIEN' already exists.", res.ErrorMessage)

		got, err := f.authors.GetByID(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, "J.R.R Tolkien", got.Name)
	})
}

func TestAuthorService_AuthorExistsForUser(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "george", Password: "secret"}))

	ok, err := f.authors.AuthorExistsForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.authors.AuthorExistsForUser(ctx, user.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAuthorService_AuthorWithBooks(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "margaret", Password: "secret", Name: "J.K. Rowling"}))
	author := mustSucceed(t, f.authors.Create(ctx, dto.AuthorCreateDTO{UserID: user.ID, Name: "J.K. Rowling"}))

	t.Run("author without books is an empty list", func(t *testing.T) {
		got, err := f.authors.AuthorWithBooks(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, "J.K. Rowling", got.Name)
		assert.NotNil(t, got.Books)
		assert.Empty(t, got.Books)
	})

	mustSucceed(t, f.books.Create(ctx, dto.BookCreateDTO{AuthorID: author.ID, Name: "Harry Potter and the Philosopher's Stone", Genre: "Fantasy"}))
	mustSucceed(t, f.books.Create(ctx, dto.BookCreateDTO{AuthorID: author.ID, Name: "Harry Potter and the Chamber of Secrets", Genre: "Fantasy"}))

	t.Run("lists books", func(t *testing.T) {
		got, err := f.authors.AuthorWithBooks(ctx, author.ID)
		require.NoError(t, err)
		require.Len(t, got.Books, 2)
		assert.Equal(t, "Harry Potter and the Philosopher's Stone", got.Books[0].Name)
	})

	t.Run("missing author", func(t *testing.T) {
		_, err := f.authors.AuthorWithBooks(ctx, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestAuthorService_AuthorWithUser(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user, author, _ := seedColfer(t, f)

	t.Run("success", func(t *testing.T) {
		got := mustSucceed(t, f.authors.AuthorWithUser(ctx, author.ID))
		assert.Equal(t, author.ID, got.ID)
		assert.Equal(t, user.ID, got.User.ID)
		assert.Equal(t, "colfer", got.User.Username)
	})

	t.Run("missing author", func(t *testing.T) {
		res := f.authors.AuthorWithUser(ctx, 999)
		assert.Equal(t, result.CodeNotFound, res.ErrorCode)
		assert.Equal(t, "Author with ID 999 not found.", res.ErrorMessage)
	})

	t.Run("dangling user is reported as missing user", func(t *testing.T) {
		require.True(t, f.users.Delete(ctx, user.ID).Success)

		res := f.authors.AuthorWithUser(ctx, author.ID)
		assert.Equal(t, result.CodeNotFound, res.ErrorCode)
		assert.Contains(t, res.ErrorMessage, "User with ID")
		assert.Contains(t, res.ErrorMessage, "linked to Author")
	})
}

func TestAuthorService_Delete(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, author, _ := seedColfer(t, f)

	res := f.authors.Delete(ctx, author.ID)
	require.True(t, res.Success)

	_, err := f.authors.GetByID(ctx, author.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	t.Run("deleting again names the missing id", func(t *testing.T) {
		res := f.authors.Delete(ctx, author.ID)
		assert.False(t, res.Success)
		assert.Equal(t, result.CodeNotFound, res.ErrorCode)
		assert.Contains(t, res.ErrorMessage, "Author with ID")
		assert.Contains(t, res.ErrorMessage, "not found")
	})
}

func TestAuthorService_Updates(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user, author, _ := seedColfer(t, f)

	updated := mustSucceed(t, f.authors.UpdateFull(ctx, dto.AuthorUpdateDTO{ID: author.ID, UserID: user.ID, Name: "Eoin Colfer Jr."}))
	assert.Equal(t, "Eoin Colfer Jr.", updated.Name)
	assert.Equal(t, author.ID, updated.ID)
	assert.True(t, updated.UpdatedDate.After(author.UpdatedDate))

	patched := mustSucceed(t, f.authors.UpdatePartial(ctx, author.ID, patch.Document{patch.Set("/Name", "Eoin Colfer")}))
	assert.Equal(t, "Eoin Colfer", patched.Name)

	t.Run("patching id is rejected", func(t *testing.T) {
		res := f.authors.UpdatePartial(ctx, author.ID, patch.Document{patch.Set("/id", 42)})
		assert.Equal(t, result.CodeValidation, res.ErrorCode)
		assert.Contains(t, res.ErrorMessage, "Patch operation failed: ")
	})

	t.Run("renaming onto another author is a conflict", func(t *testing.T) {
		other := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "margaret", Password: "secret", Name: "J.K. Rowling"}))
		rowling := mustSucceed(t, f.authors.Create(ctx, dto.AuthorCreateDTO{UserID: other.ID, Name: "J.K. Rowling"}))

		res := f.authors.UpdatePartial(ctx, rowling.ID, patch.Document{patch.Set("/name", "eoin colfer")})
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
		assert.Equal(t, "Author 'eoin colfer' already exists.", res.ErrorMessage)

		res = f.authors.UpdateFull(ctx, dto.AuthorUpdateDTO{ID: rowling.ID, UserID: other.ID, Name: "Eoin Colfer"})
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
	})

	t.Run("patching a missing author", func(t *testing.T) {
		res := f.authors.UpdatePartial(ctx, 999, patch.Document{patch.Set("/name", "x")})
		assert.Equal(t, result.CodeNotFound, res.ErrorCode)
	})
}
