package dto

import (
	"fmt"
	"time"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
)

type BookDTO struct {
	ID          uint      `json:"id"`
	AuthorID    uint      `json:"authorId"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReadCount   int       `json:"readCount"`
	Genre       string    `json:"genre"`
	Rating      int       `json:"rating"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

type BookCreateDTO struct {
	AuthorID    uint   `json:"authorId" binding:"required"`
	Name        string `json:"name" binding:"required,max=512"`
	Title       string `json:"title" binding:"max=512"`
	Description string `json:"description"`
	ReadCount   int    `json:"readCount" binding:"min=0"`
	Genre       string `json:"genre" binding:"omitempty,genre"`
	Rating      int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

type BookUpdateDTO struct {
	ID          uint   `json:"id" binding:"required"`
	AuthorID    uint   `json:"authorId" binding:"required"`
	Name        string `json:"name" binding:"required,max=512"`
	Title       string `json:"title" binding:"max=512"`
	Description string `json:"description"`
	ReadCount   int    `json:"readCount" binding:"min=0"`
	Genre       string `json:"genre" binding:"omitempty,genre"`
	Rating      int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

func ToBookDTO(b entities.Book) BookDTO {
	return BookDTO{
		ID:          b.ID,
		AuthorID:    b.AuthorID,
		Name:        b.Name,
		Title:       b.Title,
		Description: b.Description,
		ReadCount:   b.ReadCount,
		Genre:       b.Genre.String(),
		Rating:      b.Rating,
		CreatedDate: b.CreatedDate,
		UpdatedDate: b.UpdatedDate,
	}
}

func ToBookDTOs(books []entities.Book) []BookDTO {
	out := make([]BookDTO, 0, len(books))
	for _, b := range books {
		out = append(out, ToBookDTO(b))
	}
	return out
}

// BookFromCreate maps a create request onto a new entity. An unknown genre
// is an error.
func BookFromCreate(in BookCreateDTO) (entities.Book, error) {
	genre, err := entities.ParseGenre(in.Genre)
	if err != nil {
		return entities.Book{}, err
	}
	return entities.Book{
		AuthorID:    in.AuthorID,
		Name:        in.Name,
		Title:       in.Title,
		Description: in.Description,
		ReadCount:   in.ReadCount,
		Genre:       genre,
		Rating:      in.Rating,
	}, nil
}

// ApplyBookUpdate copies the mutable fields of in onto b. b is left
// untouched when the genre is unknown.
func ApplyBookUpdate(b *entities.Book, in BookUpdateDTO) error {
	genre, err := entities.ParseGenre(in.Genre)
	if err != nil {
		return err
	}
	b.AuthorID = in.AuthorID
	b.Name = in.Name
	b.Title = in.Title
	b.Description = in.Description
	b.ReadCount = in.ReadCount
	b.Genre = genre
	b.Rating = in.Rating
	return nil
}

// ApplyBookDTO writes a patched DTO back onto b.
func ApplyBookDTO(b *entities.Book, in BookDTO) error {
	genre, err := entities.ParseGenre(in.Genre)
	if err != nil {
		return err
	}
	b.AuthorID = in.AuthorID
	b.Name = in.Name
	b.Title = in.Title
	b.Description = in.Description
	b.ReadCount = in.ReadCount
	b.Genre = genre
	b.Rating = in.Rating
	return nil
}

func knownGenre(v string) error {
	_, err := entities.ParseGenre(v)
	return err
}

// bookRating accepts 1-5, or 0 for an unrated book.
func bookRating(v int) error {
	if v != 0 && (v < 1 || v > 5) {
		return fmt.Errorf("rating %d is outside 1-5", v)
	}
	return nil
}

var BookPatchTable = patch.NewTable(map[string]patch.Field[BookDTO]{
	"id":          patch.Immutable(patch.Value(func(d *BookDTO) *uint { return &d.ID })),
	"authorId":    patch.Value(func(d *BookDTO) *uint { return &d.AuthorID }),
	"name":        patch.Value(func(d *BookDTO) *string { return &d.Name }, patch.Required),
	"title":       patch.Value(func(d *BookDTO) *string { return &d.Title }),
	"description": patch.Value(func(d *BookDTO) *string { return &d.Description }),
	"readCount":   patch.Value(func(d *BookDTO) *int { return &d.ReadCount }, patch.NonNegative),
	"genre":       patch.Value(func(d *BookDTO) *string { return &d.Genre }, knownGenre),
	"rating":      patch.Value(func(d *BookDTO) *int { return &d.Rating }, bookRating),
	"createdDate": patch.Immutable(patch.Timestamp(func(d *BookDTO) *time.Time { return &d.CreatedDate })),
	"updatedDate": patch.Immutable(patch.Timestamp(func(d *BookDTO) *time.Time { return &d.UpdatedDate })),
})
