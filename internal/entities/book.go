package entities

import "time"

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AuthorID    uint      `gorm:"index" json:"author_id"`
	Name        string    `gorm:"index;size:512;not null" json:"name"`
	Title       string    `gorm:"size:512" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ReadCount   int       `gorm:"default:0" json:"read_count"`
	Genre       Genre     `gorm:"index;size:32" json:"genre"`
	Rating      int       `json:"rating"` // 1-5, 0 when unrated
	Author      *Author   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Chapters    []Chapter `gorm:"foreignKey:BookID" json:"chapters,omitempty"`
	Reviews     []Review  `gorm:"foreignKey:BookID" json:"reviews,omitempty"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (Book) TableName() string {
	return "books"
}

// StampCreated sets both timestamps of a record that is about to be inserted.
func (b *Book) StampCreated(now time.Time) {
	b.CreatedDate = now
	b.UpdatedDate = now
}
