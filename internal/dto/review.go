package dto

import (
	"time"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
)

type ReviewDTO struct {
	ID          uint      `json:"id"`
	BookID      uint      `json:"bookId"`
	UserID      uint      `json:"userId"`
	Comment     string    `json:"comment"`
	Rating      int       `json:"rating"`
	CreatedDate time.Time `json:"createdDate"`
	UpdatedDate time.Time `json:"updatedDate"`
}

type ReviewCreateDTO struct {
	BookID  uint   `json:"bookId" binding:"required"`
	UserID  uint   `json:"userId" binding:"required"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

type ReviewUpdateDTO struct {
	ID      uint   `json:"id" binding:"required"`
	BookID  uint   `json:"bookId" binding:"required"`
	UserID  uint   `json:"userId" binding:"required"`
	Comment string `json:"comment"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

func ToReviewDTO(r entities.Review) ReviewDTO {
	return ReviewDTO{
		ID:          r.ID,
		BookID:      r.BookID,
		UserID:      r.UserID,
		Comment:     r.Comment,
		Rating:      r.Rating,
		CreatedDate: r.CreatedDate,
		UpdatedDate: r.UpdatedDate,
	}
}

func ToReviewDTOs(reviews []entities.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ToReviewDTO(r))
	}
	return out
}

func ReviewFromCreate(in ReviewCreateDTO) entities.Review {
	return entities.Review{
		BookID:  in.BookID,
		UserID:  in.UserID,
		Comment: in.Comment,
		Rating:  in.Rating,
	}
}

func ApplyReviewUpdate(r *entities.Review, in ReviewUpdateDTO) {
	r.BookID = in.BookID
	r.UserID = in.UserID
	r.Comment = in.Comment
	r.Rating = in.Rating
}

func ApplyReviewDTO(r *entities.Review, in ReviewDTO) {
	r.BookID = in.BookID
	r.UserID = in.UserID
	r.Comment = in.Comment
	r.Rating = in.Rating
}

var ReviewPatchTable = patch.NewTable(map[string]patch.Field[ReviewDTO]{
	"id":          patch.Immutable(patch.Value(func(d *ReviewDTO) *uint { return &d.ID })),
	"bookId":      patch.Value(func(d *ReviewDTO) *uint { return &d.BookID }),
	"userId":      patch.Value(func(d *ReviewDTO) *uint { return &d.UserID }),
	"comment":     patch.Value(func(d *ReviewDTO) *string { return &d.Comment }),
	"rating":      patch.Value(func(d *ReviewDTO) *int { return &d.Rating }, patch.Range(1, 5)),
	"createdDate": patch.Immutable(patch.Timestamp(func(d *ReviewDTO) *time.Time { return &d.CreatedDate })),
	"updatedDate": patch.Immutable(patch.Timestamp(func(d *ReviewDTO) *time.Time { return &d.UpdatedDate })),
})
