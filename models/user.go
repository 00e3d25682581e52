package models

import "time"

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;size:150" json:"username"`
	Password  string `gorm:"size:255" json:"-"` // bcrypt hash, never serialized
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`
	IsStaff   bool   `gorm:"column:is_staff;default:false" json:"is_staff"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Staff reports whether the user holds the staff capability. Permission
// checks go through this predicate rather than reading the flag directly.
func (u User) Staff() bool { return u.IsStaff }
