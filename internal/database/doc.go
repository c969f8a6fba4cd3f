// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres) and migrations
//	├── repository.go    # Generic Repository[T] implementing Store[T]
//	├── query.go         # Query options: Where, ByID, NameEquals, Include, Page, Untracked
//	├── unit_of_work.go  # Request-scoped tracking flushed by Save
//	├── errors.go        # ErrNotFound, ErrConflict and error translation
//	├── users/           # User lookups (username uniqueness)
//	├── authors/         # Author updates
//	├── books/           # Books by author id, author name and genre
//	├── chapters/        # Chapters by book
//	├── reviews/         # Reviews by book and by user name
//	└── audit/           # Audit trail storage
//
// # Using Sub-packages
//
// Each entity sub-package embeds Repository[T] and adds typed operations:
//
//	db, err := database.NewDatabase("./catalog.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	book, err := booksRepo.Get(ctx, database.ByID(3))
//	byAuthor, err := booksRepo.GetBooksByAuthorID(ctx, book.AuthorID)
//
//	book.Rating = 5
//	book, err = booksRepo.Update(ctx, book)
//
// Lookups that miss return ErrNotFound. Writes rejected by the store
// return an error wrapping ErrConflict.
//
// # Tracking
//
// Get registers the record with the UnitOfWork carried by the context, if
// there is one, unless Untracked is passed. Save writes every tracked record
// in one transaction:
//
//	ctx, uow := database.WithUnitOfWork(ctx)
//	author, _ := authorsRepo.Get(ctx, database.ByID(1))
//	author.Name = "Eoin Colfer"
//	err := authorsRepo.Save(ctx)
package database
