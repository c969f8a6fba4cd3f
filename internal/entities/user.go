package entities

import "time"

// User is an account in the catalog. Password is stored exactly as supplied.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Password    string    `gorm:"size:255;not null" json:"-"`
	Name        string    `gorm:"index;size:256" json:"name"`
	CreatedDate time.Time `json:"created_date"`
	UpdatedDate time.Time `json:"updated_date"`
}

func (User) TableName() string {
	return "users"
}

// StampCreated sets both timestamps of a record that is about to be inserted.
func (u *User) StampCreated(now time.Time) {
	u.CreatedDate = now
	u.UpdatedDate = now
}
