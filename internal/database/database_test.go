package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}
	return db, cleanup
}

func newUser(username, name string) *entities.User {
	now := time.Now().UTC()
	return &entities.User{
		Username:    username,
		Password:    "secret",
		Name:        name,
		CreatedDate: now,
		UpdatedDate: now,
	}
}

func TestOpen(t *testing.T) {
	t.Run("rejects unknown driver", func(t *testing.T) {
		_, err := Open(Config{Driver: "oracle"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})

	t.Run("rejects postgres without DSN", func(t *testing.T) {
		_, err := Open(Config{Driver: DriverPostgres})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DSN")
	})

	t.Run("rejects empty sqlite path", func(t *testing.T) {
		_, err := Open(Config{Driver: DriverSQLite})
		require.Error(t, err)
	})

	t.Run("defaults to sqlite", func(t *testing.T) {
		db, err := Open(Config{Path: filepath.Join(t.TempDir(), "default.db")})
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, DriverSQLite, db.Driver())
		assert.NoError(t, db.Ping(context.Background()))
	})

	t.Run("migrates all catalog tables", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		for _, table := range []string{"users", "authors", "books", "chapters", "reviews", "audit_events"} {
			assert.True(t, db.DB.Migrator().HasTable(table), table)
		}
	})

	t.Run("does not create foreign keys", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		// A dangling reference is accepted by the store itself.
		book := &entities.Book{AuthorID: 999, Name: "Orphan"}
		require.NoError(t, db.DB.Create(book).Error)
		assert.NotZero(t, book.ID)
	})
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "file.db?cache=shared", sqliteDSN("file.db?cache=shared"))
	assert.Equal(t, "file.db?_journal=WAL&_timeout=5000&_busy_timeout=5000", sqliteDSN("file.db"))
}

func TestRepository_GetAll(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewRepository[entities.User](db.DB)

	t.Run("returns empty slice when table is empty", func(t *testing.T) {
		users, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	for i, name := range []string{"alice", "bob", "carol", "dave", "erin"} {
		require.NoError(t, repo.Create(ctx, newUser(name, "User "+string(rune('A'+i)))))
	}

	t.Run("returns all records ordered by id", func(t *testing.T) {
		users, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, users, 5)
		for i := 1; i < len(users); i++ {
			assert.Less(t, users[i-1].ID, users[i].ID)
		}
	})

	t.Run("applies filter", func(t *testing.T) {
		users, err := repo.GetAll(ctx, Where("username IN ?", []string{"bob", "dave"}))
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "bob", users[0].Username)
		assert.Equal(t, "dave", users[1].Username)
	})

	t.Run("paginates", func(t *testing.T) {
		page1, err := repo.GetAll(ctx, Page(2, 1))
		require.NoError(t, err)
		page3, err := repo.GetAll(ctx, Page(2, 3))
		require.NoError(t, err)

		require.Len(t, page1, 2)
		require.Len(t, page3, 1)
		assert.Equal(t, "alice", page1[0].Username)
		assert.Equal(t, "erin", page3[0].Username)
	})

	t.Run("zero page size returns everything", func(t *testing.T) {
		users, err := repo.GetAll(ctx, Page(0, 0))
		require.NoError(t, err)
		assert.Len(t, users, 5)
	})

	t.Run("page number below one is treated as first page", func(t *testing.T) {
		users, err := repo.GetAll(ctx, Page(2, -4))
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "alice", users[0].Username)
	})
}

func TestPage_CapsSize(t *testing.T) {
	q := buildQuery([]QueryOption{Page(500, 2)})
	assert.Equal(t, MaxPageSize, q.pageSize)
	assert.Equal(t, 2, q.pageNumber)
}

func TestRepository_Get(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewRepository[entities.User](db.DB)

	first := newUser("first", "Same Name")
	second := newUser("second", "Same Name")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	t.Run("returns not found", func(t *testing.T) {
		user, err := repo.Get(ctx, ByID(12345))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, user)
	})

	t.Run("picks lowest id among several matches", func(t *testing.T) {
		user, err := repo.Get(ctx, Where("name = ?", "Same Name"))
		require.NoError(t, err)
		assert.Equal(t, first.ID, user.ID)
	})

	t.Run("matches names ignoring case", func(t *testing.T) {
		user, err := repo.Get(ctx, NameEquals("username", "SECOND"))
		require.NoError(t, err)
		assert.Equal(t, second.ID, user.ID)
	})
}

func TestRepository_Create(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewRepository[entities.User](db.DB)

	t.Run("assigns id", func(t *testing.T) {
		user := newUser("george", "J.R.R Tolkien")
		require.NoError(t, repo.Create(ctx, user))
		assert.Greater(t, user.ID, uint(0))
	})

	t.Run("duplicate unique column is a conflict", func(t *testing.T) {
		err := repo.Create(ctx, newUser("george", "Someone Else"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConflict)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("does not write associations", func(t *testing.T) {
		authors := NewRepository[entities.Author](db.DB)
		author := &entities.Author{Name: "Ghost", User: newUser("ghost", "Ghost")}
		require.NoError(t, authors.Create(ctx, author))

		count, err := repo.Count(ctx, Where("username = ?", "ghost"))
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestRepository_Remove(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	repo := NewRepository[entities.User](db.DB)

	user := newUser("margaret", "J.K. Rowling")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.Remove(ctx, user))

	_, err := repo.Get(ctx, ByID(user.ID))
	assert.ErrorIs(t, err, ErrNotFound)

	t.Run("removing twice reports not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.Remove(ctx, user), ErrNotFound)
	})
}

func TestRepository_Include(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	users := NewRepository[entities.User](db.DB)
	authors := NewRepository[entities.Author](db.DB)
	books := NewRepository[entities.Book](db.DB)

	user := newUser("colfer", "Eoin Colfer")
	require.NoError(t, users.Create(ctx, user))
	author := &entities.Author{UserID: user.ID, Name: "Eoin Colfer"}
	require.NoError(t, authors.Create(ctx, author))
	require.NoError(t, books.Create(ctx, &entities.Book{AuthorID: author.ID, Name: "Artemis Fowl"}))
	require.NoError(t, books.Create(ctx, &entities.Book{AuthorID: author.ID, Name: "The Arctic Incident"}))

	got, err := authors.Get(ctx, ByID(author.ID), Include("User", "Books"))
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "colfer", got.User.Username)
	require.Len(t, got.Books, 2)
	assert.Equal(t, "Artemis Fowl", got.Books[0].Name)
}

func TestRepository_Save(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository[entities.User](db.DB)

	user := newUser("tracked", "Before")
	require.NoError(t, repo.Create(context.Background(), user))

	t.Run("flushes tracked records", func(t *testing.T) {
		ctx, uow := WithUnitOfWork(context.Background())

		got, err := repo.Get(ctx, ByID(user.ID))
		require.NoError(t, err)
		assert.Equal(t, 1, uow.Len())

		got.Name = "After"
		require.NoError(t, repo.Save(ctx))
		assert.Equal(t, 0, uow.Len())

		reloaded, err := repo.Get(context.Background(), ByID(user.ID))
		require.NoError(t, err)
		assert.Equal(t, "After", reloaded.Name)
	})

	t.Run("untracked records are not flushed", func(t *testing.T) {
		ctx, uow := WithUnitOfWork(context.Background())

		got, err := repo.Get(ctx, ByID(user.ID), Untracked())
		require.NoError(t, err)
		assert.Equal(t, 0, uow.Len())

		got.Name = "Ignored"
		require.NoError(t, repo.Save(ctx))

		reloaded, err := repo.Get(context.Background(), ByID(user.ID))
		require.NoError(t, err)
		assert.Equal(t, "After", reloaded.Name)
	})

	t.Run("without unit of work is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Save(context.Background()))
	})

	t.Run("removed records are not written back", func(t *testing.T) {
		doomed := newUser("doomed", "Doomed")
		require.NoError(t, repo.Create(context.Background(), doomed))

		ctx, uow := WithUnitOfWork(context.Background())
		got, err := repo.Get(ctx, ByID(doomed.ID))
		require.NoError(t, err)
		require.Equal(t, 1, uow.Len())

		require.NoError(t, repo.Remove(ctx, got))
		assert.Equal(t, 0, uow.Len())
		require.NoError(t, repo.Save(ctx))

		_, err = repo.Get(context.Background(), ByID(doomed.ID))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("records deleted elsewhere are not recreated", func(t *testing.T) {
		gone := newUser("gone", "Gone")
		require.NoError(t, repo.Create(context.Background(), gone))

		ctx, _ := WithUnitOfWork(context.Background())
		got, err := repo.Get(ctx, ByID(gone.ID))
		require.NoError(t, err)

		require.NoError(t, repo.Remove(context.Background(), &entities.User{ID: gone.ID}))
		got.Name = "Back again"
		require.NoError(t, repo.Save(ctx))

		_, err = repo.Get(context.Background(), ByID(gone.ID))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDatabase_Flush(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewRepository[entities.User](db.DB)

	user := newUser("flushed", "Before")
	require.NoError(t, repo.Create(context.Background(), user))

	ctx, uow := WithUnitOfWork(context.Background())
	got, err := repo.Get(ctx, ByID(user.ID))
	require.NoError(t, err)
	got.Name = "After"

	require.NoError(t, db.Flush(ctx))
	assert.Equal(t, 0, uow.Len())

	reloaded, err := repo.Get(context.Background(), ByID(user.ID))
	require.NoError(t, err)
	assert.Equal(t, "After", reloaded.Name)
}

func TestNextTimestamp(t *testing.T) {
	t.Run("moves past a timestamp in the future", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		next := NextTimestamp(future)
		assert.True(t, next.After(future))
	})

	t.Run("returns current time otherwise", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		next := NextTimestamp(past)
		assert.WithinDuration(t, time.Now(), next, time.Second)
	})
}
