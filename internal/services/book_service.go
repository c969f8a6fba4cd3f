package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

type BookService struct {
	books   BookRepository
	authors Getter[entities.Author]
	crud    crud[entities.Book, *entities.Book, dto.BookDTO]
}

func NewBookService(books BookRepository, authors Getter[entities.Author], log logrus.FieldLogger) *BookService {
	s := &BookService{
		books:   books,
		authors: authors,
		crud:    crud[entities.Book, *entities.Book, dto.BookDTO]{kind: "Book", store: books, toDTO: dto.ToBookDTO, log: log},
	}
	s.crud.conflict = s.renameConflict
	return s
}

func (s *BookService) GetAll(ctx context.Context) ([]dto.BookDTO, error) {
	return s.crud.getAll(ctx)
}

func (s *BookService) GetByID(ctx context.Context, id uint) (dto.BookDTO, error) {
	return s.crud.getByID(ctx, id)
}

func (s *BookService) GetByName(ctx context.Context, name string) (dto.BookDTO, error) {
	book, err := s.books.GetByName(ctx, name)
	return s.crud.byName(name, book, err)
}

// GetBooksByAuthorID lists an author's books. The list may be empty.
func (s *BookService) GetBooksByAuthorID(ctx context.Context, authorID uint) ([]dto.BookDTO, error) {
	books, err := s.books.GetBooksByAuthorID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books of author %d: %w", authorID, err)
	}
	return dto.ToBookDTOs(books), nil
}

// GetBooksByAuthorName reports ErrNotFound when the author is unknown or has
// no books.
func (s *BookService) GetBooksByAuthorName(ctx context.Context, authorName string) ([]dto.BookDTO, error) {
	books, err := s.books.GetBooksByAuthorName(ctx, authorName)
	if err != nil {
		return nil, fmt.Errorf("failed to list books of author %q: %w", authorName, err)
	}
	if len(books) == 0 {
		return nil, notFoundf("No books found for author '%s'.", authorName)
	}
	return dto.ToBookDTOs(books), nil
}

// GetBooksByGenre reports ErrNotFound when no book has the genre.
func (s *BookService) GetBooksByGenre(ctx context.Context, genre entities.Genre) ([]dto.BookDTO, error) {
	books, err := s.books.GetBooksByGenre(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s books: %w", genre, err)
	}
	if len(books) == 0 {
		return nil, notFoundf("No books found for genre '%s'.", genre)
	}
	return dto.ToBookDTOs(books), nil
}

// BookHasValidAuthor reports whether authorID names an existing author.
func (s *BookService) BookHasValidAuthor(ctx context.Context, authorID uint) (bool, error) {
	return exists(ctx, s.authors, authorID)
}

func (s *BookService) Create(ctx context.Context, in dto.BookCreateDTO) result.Result[dto.BookDTO] {
	dup, err := taken[entities.Book](s.books.GetByName(ctx, in.Name))
	if err != nil {
		return result.Failf[dto.BookDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	if dup {
		return result.Failf[dto.BookDTO](result.CodeConflict, "Book '%s' already exists.", in.Name)
	}

	ok, err := s.BookHasValidAuthor(ctx, in.AuthorID)
	if err != nil {
		return result.Failf[dto.BookDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	if !ok {
		return result.Failf[dto.BookDTO](result.CodeValidation, "Author with ID %d does not exist.", in.AuthorID)
	}

	book, err := dto.BookFromCreate(in)
	if err != nil {
		return result.Failf[dto.BookDTO](result.CodeValidation, "Invalid book: %v", err)
	}
	return s.crud.create(ctx, &book)
}

func (s *BookService) Delete(ctx context.Context, id uint) result.Result[dto.BookDTO] {
	return s.crud.delete(ctx, id)
}

func (s *BookService) UpdateFull(ctx context.Context, in dto.BookUpdateDTO) result.Result[dto.BookDTO] {
	return s.crud.update(ctx, in.ID, func(b *entities.Book) error {
		return dto.ApplyBookUpdate(b, in)
	})
}

func (s *BookService) UpdatePartial(ctx context.Context, id uint, doc patch.Document) result.Result[dto.BookDTO] {
	return s.crud.patch(ctx, id, doc, dto.BookPatchTable, dto.ApplyBookDTO)
}

// renameConflict rejects renaming a book to the name of another book.
func (s *BookService) renameConflict(ctx context.Context, b *entities.Book) (string, error) {
	dup, err := heldByOther[entities.Book](ctx, s.books, b.ID, database.NameEquals("name", b.Name))
	if err != nil || !dup {
		return "", err
	}
	return fmt.Sprintf("Book '%s' already exists.", b.Name), nil
}
