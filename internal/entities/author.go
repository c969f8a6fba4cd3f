package entities

import "time"

// Author is backed by a User. UserID is a soft reference checked by the
// service layer on creation, there is no foreign key in the store.
type Author struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Name        string    `gorm:"index;size:256" json:"name"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Books       []Book    `gorm:"foreignKey:AuthorID" json:"books,omitempty"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (Author) TableName() string {
	return "authors"
}

func (a *Author) StampCreated(now time.Time) {
	a.CreatedDate = now
	a.UpdatedDate = now
}
