package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/dto"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
	"github.com/mrlokans/catalog/internal/result"
)

// AuthorService manages authors. Every author is backed by a user, which is
// checked when the author is created.
type AuthorService struct {
	authors AuthorRepository
	books   BookLister
	users   Getter[entities.User]
	crud    crud[entities.Author, *entities.Author, dto.AuthorDTO]
}

func NewAuthorService(authors AuthorRepository, books BookLister, users Getter[entities.User], log logrus.FieldLogger) *AuthorService {
	s := &AuthorService{
		authors: authors,
		books:   books,
		users:   users,
		crud:    crud[entities.Author, *entities.Author, dto.AuthorDTO]{kind: "Author", store: authors, toDTO: dto.ToAuthorDTO, log: log},
	}
	s.crud.conflict = s.renameConflict
	return s
}

func (s *AuthorService) GetAll(ctx context.Context) ([]dto.AuthorDTO, error) {
	return s.crud.getAll(ctx)
}

func (s *AuthorService) GetByID(ctx context.Context, id uint) (dto.AuthorDTO, error) {
	return s.crud.getByID(ctx, id)
}

func (s *AuthorService) GetByName(ctx context.Context, name string) (dto.AuthorDTO, error) {
	author, err := s.authors.GetByName(ctx, name)
	return s.crud.byName(name, author, err)
}

// AuthorExistsForUser reports whether userID names an existing user.
func (s *AuthorService) AuthorExistsForUser(ctx context.Context, userID uint) (bool, error) {
	return exists(ctx, s.users, userID)
}

// AuthorWithBooks returns the author and their books. An author without
// books yields an empty list.
func (s *AuthorService) AuthorWithBooks(ctx context.Context, id uint) (dto.AuthorWithBooksDTO, error) {
	author, err := s.authors.Get(ctx, database.ByID(id), database.Untracked())
	if errors.Is(err, database.ErrNotFound) {
		return dto.AuthorWithBooksDTO{}, notFoundf("Author with ID %d not found.", id)
	}
	if err != nil {
		return dto.AuthorWithBooksDTO{}, fmt.Errorf("failed to get author: %w", err)
	}
	books, err := s.books.GetBooksByAuthorID(ctx, id)
	if err != nil {
		return dto.AuthorWithBooksDTO{}, fmt.Errorf("failed to list books of author %d: %w", id, err)
	}
	return dto.ToAuthorWithBooksDTO(*author, books), nil
}

// AuthorWithUser returns the author and the user backing it. A dangling user
// reference is reported as a missing user.
func (s *AuthorService) AuthorWithUser(ctx context.Context, id uint) result.Result[dto.AuthorWithUserDTO] {
	author, err := s.authors.Get(ctx, database.ByID(id), database.Untracked())
	if errors.Is(err, database.ErrNotFound) {
		return result.Failf[dto.AuthorWithUserDTO](result.CodeNotFound, "Author with ID %d not found.", id)
	}
	if err != nil {
		return result.Failf[dto.AuthorWithUserDTO](result.CodeInternal, "An unexpected error occurred: %v", err)
	}

	user, err := s.users.Get(ctx, database.ByID(author.UserID), database.Untracked())
	if errors.Is(err, database.ErrNotFound) {
		return result.Failf[dto.AuthorWithUserDTO](result.CodeNotFound,
			"User with ID %d (linked to Author %d) not found.", author.UserID, id)
	}
	if err != nil {
		return result.Failf[dto.AuthorWithUserDTO](result.CodeInternal, "An unexpected error occurred: %v", err)
	}

	return result.OK(dto.ToAuthorWithUserDTO(*author, *user))
}

func (s *AuthorService) Create(ctx context.Context, in dto.AuthorCreateDTO) result.Result[dto.AuthorDTO] {
	dup, err := taken[entities.Author](s.authors.GetByName(ctx, in.Name))
	if err != nil {
		return result.Failf[dto.AuthorDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	if dup {
		return result.Failf[dto.AuthorDTO](result.CodeConflict, "Author '%s' already exists.", in.Name)
	}

	ok, err := s.AuthorExistsForUser(ctx, in.UserID)
	if err != nil {
		return result.Failf[dto.AuthorDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	if !ok {
		return result.Failf[dto.AuthorDTO](result.CodeValidation, "User with ID %d does not exist.", in.UserID)
	}

	author := dto.AuthorFromCreate(in)
	return s.crud.create(ctx, &author)
}

func (s *AuthorService) Delete(ctx context.Context, id uint) result.Result[dto.AuthorDTO] {
	return s.crud.delete(ctx, id)
}

func (s *AuthorService) UpdateFull(ctx context.Context, in dto.AuthorUpdateDTO) result.Result[dto.AuthorDTO] {
	return s.crud.update(ctx, in.ID, func(a *entities.Author) error {
		dto.ApplyAuthorUpdate(a, in)
		return nil
	})
}

func (s *AuthorService) UpdatePartial(ctx context.Context, id uint, doc patch.Document) result.Result[dto.AuthorDTO] {
	return s.crud.patch(ctx, id, doc, dto.AuthorPatchTable, infallible(dto.ApplyAuthorDTO))
}

func (s *AuthorService) renameConflict(ctx context.Context, a *entities.Author) (string, error) {
	dup, err := heldByOther[entities.Author](ctx, s.authors, a.ID, database.NameEquals("name", a.Name))
	if err != nil || !dup {
		return "", err
	}
	return fmt.Sprintf("Author '%s' already exists.", a.Name), nil
}
