package models

// RoomClass is a price tier. The short uppercase code is the natural
// primary key and is what rooms reference.
type RoomClass struct {
	Code  string  `gorm:"primaryKey;column:code;size:3" json:"code"`
	Price float64 `gorm:"column:price;not null" json:"price"`
}
