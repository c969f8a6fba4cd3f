package dto

import (
	"time"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/patch"
)

type ChapterDTO struct {
	ID            uint      `json:"id"`
	BookID        uint      `json:"bookId"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ReadCount     int       `json:"readCount"`
	ChapterNumber int       `json:"chapterNumber"`
	CreatedDate   time.Time `json:"createdDate"`
	UpdatedDate   time.Time `json:"updatedDate"`
}

type ChapterCreateDTO struct {
	BookID        uint   `json:"bookId" binding:"required"`
	Title         string `json:"title" binding:"required,max=512"`
	Content       string `json:"content"`
	ReadCount     int    `json:"readCount" binding:"min=0"`
	ChapterNumber int    `json:"chapterNumber" binding:"min=0"`
}

type ChapterUpdateDTO struct {
	ID            uint   `json:"id" binding:"required"`
	BookID        uint   `json:"bookId" binding:"required"`
	Title         string `json:"title" binding:"required,max=512"`
	Content       string `json:"content"`
	ReadCount     int    `json:"readCount" binding:"min=0"`
	ChapterNumber int    `json:"chapterNumber" binding:"min=0"`
}

func ToChapterDTO(c entities.Chapter) ChapterDTO {
	return ChapterDTO{
		ID:            c.ID,
		BookID:        c.BookID,
		Title:         c.Title,
		Content:       c.Content,
		ReadCount:     c.ReadCount,
		ChapterNumber: c.ChapterNumber,
		CreatedDate:   c.CreatedDate,
		UpdatedDate:   c.UpdatedDate,
	}
}

func ToChapterDTOs(chapters []entities.Chapter) []ChapterDTO {
	out := make([]ChapterDTO, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, ToChapterDTO(c))
	}
	return out
}

func ChapterFromCreate(in ChapterCreateDTO) entities.Chapter {
	return entities.Chapter{
		BookID:        in.BookID,
		Title:         in.Title,
		Content:       in.Content,
		ReadCount:     in.ReadCount,
		ChapterNumber: in.ChapterNumber,
	}
}

func ApplyChapterUpdate(c *entities.Chapter, in ChapterUpdateDTO) {
	c.BookID = in.BookID
	c.Title = in.Title
	c.Content = in.Content
	c.ReadCount = in.ReadCount
	c.ChapterNumber = in.ChapterNumber
}

func ApplyChapterDTO(c *entities.Chapter, in ChapterDTO) {
	c.BookID = in.BookID
	c.Title = in.Title
	c.Content = in.Content
	c.ReadCount = in.ReadCount
	c.ChapterNumber = in.ChapterNumber
}

var ChapterPatchTable = patch.NewTable(map[string]patch.Field[ChapterDTO]{
	"id":            patch.Immutable(patch.Value(func(d *ChapterDTO) *uint { return &d.ID })),
	"bookId":        patch.Value(func(d *ChapterDTO) *uint { return &d.BookID }),
	"title":         patch.Value(func(d *ChapterDTO) *string { return &d.Title }, patch.Required),
	"content":       patch.Value(func(d *ChapterDTO) *string { return &d.Content }),
	"readCount":     patch.Value(func(d *ChapterDTO) *int { return &d.ReadCount }, patch.NonNegative),
	"chapterNumber": patch.Value(func(d *ChapterDTO) *int { return &d.ChapterNumber }, patch.NonNegative),
	"createdDate":   patch.Immutable(patch.Timestamp(func(d *ChapterDTO) *time.Time { return &d.CreatedDate })),
	"updatedDate":   patch.Immutable(patch.Timestamp(func(d *ChapterDTO) *time.Time { return &d.UpdatedDate })),
})
