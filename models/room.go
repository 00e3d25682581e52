package models

import "time"

type Room struct {
	Number string `gorm:"primaryKey;column:number;size:5" json:"number"`

	RoomClassCode string    `gorm:"column:room_class_code;size:3;not null;index" json:"room_class"`
	RoomClass     RoomClass `gorm:"foreignKey:RoomClassCode;references:Code;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
