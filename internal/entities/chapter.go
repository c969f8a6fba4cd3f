package entities

import "time"

type Chapter struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BookID        uint      `gorm:"index" json:"book_id"`
	Title         string    `gorm:"index;size:512;not null" json:"title"`
	Content       string    `gorm:"type:text" json:"content"`
	ReadCount     int       `gorm:"default:0" json:"read_count"`
	ChapterNumber int       `json:"chapter_number"`
	Book          *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedDate   time.Time `json:"created_date"`
	UpdatedDate   time.Time `json:"updated_date"`
}

func (Chapter) TableName() string {
	return "chapters"
}

func (c *Chapter) StampCreated(now time.Time) {
	c.CreatedDate = now
	c.UpdatedDate = now
}
