package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

func TestUserService_Create(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "george", Password: "secret", Name: "J.R.R Tolkien"}))
	assert.Greater(t, user.ID, uint(0))
	assert.False(t, user.CreatedDate.IsZero())
	assert.True(t, user.CreatedDate.Equal(user.UpdatedDate))

	t.Run("duplicate name ignoring case", func(t *testing.T) {
		res := f.users.Create(ctx, dto.UserCreateDTO{Username: "other", Password: "x", Name: "j.r.r tolkien"})
		assert.False(t, res.Success)
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
		assert.Equal(t, "User 'j.r.r tolkien' already exists.", res.ErrorMessage)
	})

	t.Run("duplicate username", func(t *testing.T) {
		res := f.users.Create(ctx, dto.UserCreateDTO{Username: "GEORGE", Password: "x", Name: "Someone"})
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
	})

	t.Run("original untouched", func(t *testing.T) {
		all, err := f.users.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "george", all[0].Username)
	})
}

func TestUserService_Lookups(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "margaret", Password: "secret", Name: "J.K. Rowling"}))

	got, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "J.K. Rowling", got.Name)

	got, err = f.users.GetByName(ctx, "j.k. rowling")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	got, err = f.users.GetByUsername(ctx, "Margaret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.users.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "User with ID 999 not found.", err.Error())

	_, err = f.users.GetByName(ctx, "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	unique, err := f.users.IsUniqueUsername(ctx, "MARGARET")
	require.NoError(t, err)
	assert.False(t, unique)

	unique, err = f.users.IsUniqueUsername(ctx, "newcomer")
	require.NoError(t, err)
	assert.True(t, unique)
}

func TestUserService_UpdateFull(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "colfer", Password: "secret", Name: "Eoin Colfer"}))
	time.Sleep(2 * time.Millisecond)

	updated := mustSucceed(t, f.users.UpdateFull(ctx, dto.UserUpdateDTO{ID: user.ID, Username: "eoin", Password: "new", Name: "Eoin"}))
	assert.Equal(t, "eoin", updated.Username)
	assert.Equal(t, "new", updated.Password)

	got, err := f.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eoin", got.Name)
	assert.True(t, got.UpdatedDate.After(user.UpdatedDate))
	assert.True(t, got.CreatedDate.Equal(user.CreatedDate))

	t.Run("conflicting username", func(t *testing.T) {
		other := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "taken", Password: "x", Name: "Other"}))
		res := f.users.UpdateFull(ctx, dto.UserUpdateDTO{ID: other.ID, Username: "eoin", Password: "x"})
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
		assert.Equal(t, "User 'eoin' already exists.", res.ErrorMessage)
	})

	t.Run("conflicting display name ignores case", func(t *testing.T) {
		other := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "second", Password: "x", Name: "Second"}))
		res := f.users.UpdateFull(ctx, dto.UserUpdateDTO{ID: other.ID, Username: "second", Password: "x", Name: "EOIN"})
		assert.Equal(t, result.CodeConflict, res.ErrorCode)
		assert.Equal(t, "User 'EOIN' already exists.", res.ErrorMessage)
	})

	t.Run("missing user", func(t *testing.T) {
		res := f.users.UpdateFull(ctx, dto.UserUpdateDTO{ID: 999, Username: "x", Password: "x"})
		assert.Equal(t, result.CodeNotFound, res.ErrorCode)
	})
}

func TestUserService_UpdatePartial(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "colfer", Password: "secret", Name: "Eoin Colfer"}))

	patched := mustSucceed(t, f.users.UpdatePartial(ctx, user.ID, patch.Document{patch.Set("/name", "E. Colfer")}))
	assert.Equal(t, "E. Colfer", patched.Name)
	assert.Equal(t, "colfer", patched.Username)

	res := f.users.UpdatePartial(ctx, user.ID, patch.Document{patch.Remove("/username")})
	assert.Equal(t, result.CodeValidation, res.ErrorCode)
}

func TestUserService_Delete(t *testing.T) {
	f, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := mustSucceed(t, f.users.Create(ctx, dto.UserCreateDTO{Username: "colfer", Password: "secret"}))

	res := f.users.Delete(ctx, user.ID)
	assert.True(t, res.Success)
	assert.Nil(t, res.Data)

	_, err := f.users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
