package entities

import "time"

type Review struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BookID      uint      `gorm:"index" json:"book_id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Comment     string    `gorm:"type:text" json:"comment"`
	Rating      int       `json:"rating"`
	Book        *Book     `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) StampCreated(now time.Time) {
	r.CreatedDate = now
	r.UpdatedDate = now
}
