package dto

import (
	"time"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
)

type AuthorDTO struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

type AuthorCreateDTO struct {
	UserID uint   `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required,max=256"`
}

type AuthorUpdateDTO struct {
	ID     uint   `json:"id" binding:"required"`
	UserID uint   `json:"userId" binding:"required"`
	Name   string `json:"name" binding:"required,max=256"`
}

// AuthorWithBooksDTO is an author together with every book they wrote.
type AuthorWithBooksDTO struct {
	AuthorDTO
	Books []BookDTO `json:"books"`
}

// AuthorWithUserDTO is an author together with the user backing it.
type AuthorWithUserDTO struct {
	AuthorDTO
	User UserDTO `json:"user"`
}

func ToAuthorDTO(a entities.Author) AuthorDTO {
	return AuthorDTO{
		ID:          a.ID,
		UserID:      a.UserID,
		Name:        a.Name,
		CreatedDate: a.CreatedDate,
		UpdatedDate: a.UpdatedDate,
	}
}

func ToAuthorDTOs(authors []entities.Author) []AuthorDTO {
	out := make([]AuthorDTO, 0, len(authors))
	for _, a := range authors {
		out = append(out, ToAuthorDTO(a))
	}
	return out
}

func ToAuthorWithBooksDTO(a entities.Author, books []entities.Book) AuthorWithBooksDTO {
	return AuthorWithBooksDTO{AuthorDTO: ToAuthorDTO(a), Books: ToBookDTOs(books)}
}

func ToAuthorWithUserDTO(a entities.Author, u entities.User) AuthorWithUserDTO {
	return AuthorWithUserDTO{AuthorDTO: ToAuthorDTO(a), User: ToUserDTO(u)}
}

func AuthorFromCreate(in AuthorCreateDTO) entities.Author {
	return entities.Author{UserID: in.UserID, Name: in.Name}
}

// ApplyAuthorUpdate copies the mutable fields of in onto a.
func ApplyAuthorUpdate(a *entities.Author, in AuthorUpdateDTO) {
	a.UserID = in.UserID
	a.Name = in.Name
}

// ApplyAuthorDTO writes a patched DTO back onto a.
func ApplyAuthorDTO(a *entities.Author, in AuthorDTO) {
	a.UserID = in.UserID
	a.Name = in.Name
}

var AuthorPatchTable = patch.NewTable(map[string]patch.Field[AuthorDTO]{
	"id":          patch.Immutable(patch.Value(func(d *AuthorDTO) *uint { return &d.ID })),
	"userId":      patch.Value(func(d *AuthorDTO) *uint { return &d.UserID }),
	"name":        patch.Value(func(d *AuthorDTO) *string { return &d.Name }, patch.Required),
	"createdDate": patch.Immutable(patch.Timestamp(func(d *AuthorDTO) *time.Time { return &d.CreatedDate })),
	"updatedDate": patch.Immutable(patch.Timestamp(func(d *AuthorDTO) *time.Time { return &d.UpdatedDate })),
})
