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

// ChapterService manages chapters. Chapter titles are unique within a book.
type ChapterService struct {
	chapters ChapterRepository
	books    Getter[entities.Book]
	crud     crud[entities.Chapter, *entities.Chapter, dto.ChapterDTO]
}

func NewChapterService(chapters ChapterRepository, books Getter[entities.Book], log logrus.FieldLogger) *ChapterService {
	s := &ChapterService{
		chapters: chapters,
		books:    books,
		crud:     crud[entities.Chapter, *entities.Chapter, dto.ChapterDTO]{kind: "Chapter", store: chapters, toDTO: dto.ToChapterDTO, log: log},
	}
	s.crud.conflict = s.titleConflict
	return s
}

func (s *ChapterService) GetAll(ctx context.Context) ([]dto.ChapterDTO, error) {
	return s.crud.getAll(ctx)
}

func (s *ChapterService) GetByID(ctx context.Context, id uint) (dto.ChapterDTO, error) {
	return s.crud.getByID(ctx, id)
}

// GetByName matches the chapter title, ignoring case.
func (s *ChapterService) GetByName(ctx context.Context, title string) (dto.ChapterDTO, error) {
	chapter, err := s.chapters.GetByTitle(ctx, title)
	return s.crud.byName(title, chapter, err)
}

// GetChaptersByBook resolves the book by name and lists its chapters in
// chapter order.
func (s *ChapterService) GetChaptersByBook(ctx context.Context, bookName string) ([]dto.ChapterDTO, error) {
	book, err := s.books.Get(ctx, database.NameEquals("name", bookName), database.Untracked())
	if errors.Is(err, database.ErrNotFound) {
		return nil, notFoundf("Book '%s' not found.", bookName)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %q: %w", bookName, err)
	}
	return s.listByBook(ctx, book.ID)
}

func (s *ChapterService) GetChaptersByBookID(ctx context.Context, bookID uint) ([]dto.ChapterDTO, error) {
	ok, err := s.ChapterHasValidBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", bookID, err)
	}
	if !ok {
		return nil, notFoundf("Book with ID %d not found.", bookID)
	}
	return s.listByBook(ctx, bookID)
}

func (s *ChapterService) listByBook(ctx context.Context, bookID uint) ([]dto.ChapterDTO, error) {
	chapters, err := s.chapters.GetChaptersByBookID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chapters of book %d: %w", bookID, err)
	}
	return dto.ToChapterDTOs(chapters), nil
}

// ChapterHasValidBook reports whether bookID names an existing book.
func (s *ChapterService) ChapterHasValidBook(ctx context.Context, bookID uint) (bool, error) {
	return exists(ctx, s.books, bookID)
}

func (s *ChapterService) Create(ctx context.Context, in dto.ChapterCreateDTO) result.Result[dto.ChapterDTO] {
	dup, err := taken[entities.Chapter](s.chapters.Get(ctx,
		database.NameEquals("title", in.Title),
		database.Where("book_id = ?", in.BookID),
		database.Untracked(),
	))
	if err != nil {
		return result.Failf[dto.ChapterDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	if dup {
		return result.Failf[dto.ChapterDTO](result.CodeConflict, "Chapter '%s' already exists.", in.Title)
	}

	ok, err := s.ChapterHasValidBook(ctx, in.BookID)
	if err != nil {
		return result.Failf[dto.ChapterDTO](result.CodeInternal, "Unexpected error occurred: %v", err)
	}
	if !ok {
		return result.Failf[dto.ChapterDTO](result.CodeValidation, "Book with ID %d does not exist.", in.BookID)
	}

	chapter := dto.ChapterFromCreate(in)
	return s.crud.create(ctx, &chapter)
}

func (s *ChapterService) Delete(ctx context.Context, id uint) result.Result[dto.ChapterDTO] {
	return s.crud.delete(ctx, id)
}

func (s *ChapterService) UpdateFull(ctx context.Context, in dto.ChapterUpdateDTO) result.Result[dto.ChapterDTO] {
	return s.crud.update(ctx, in.ID, func(c *entities.Chapter) error {
		dto.ApplyChapterUpdate(c, in)
		return nil
	})
}

func (s *ChapterService) UpdatePartial(ctx context.Context, id uint, doc patch.Document) result.Result[dto.ChapterDTO] {
	return s.crud.patch(ctx, id, doc, dto.ChapterPatchTable, infallible(dto.ApplyChapterDTO))
}

// titleConflict keeps titles unique within the chapter's book, which may
// itself have changed.
func (s *ChapterService) titleConflict(ctx context.Context, c *entities.Chapter) (string, error) {
	dup, err := heldByOther[entities.Chapter](ctx, s.chapters, c.ID,
		database.NameEquals("title", c.Title),
		database.Where("book_id = ?", c.BookID),
	)
	if err != nil || !dup {
		return "", err
	}
	return fmt.Sprintf("Chapter '%s' already exists.", c.Title), nil
}
