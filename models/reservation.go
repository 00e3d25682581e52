package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reservation books one or more rooms for a half-open date range
// [DateFrom, DateTo). Duration and total cost are derived on read and
// never stored.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code,omitempty"`

	DateFrom datatypes.Date `gorm:"column:date_from;not null;index" json:"-"`
	DateTo   datatypes.Date `gorm:"column:date_to;not null" json:"-"`

	Name string `gorm:"size:100" json:"name"`

	OwnerID uint `gorm:"column:owner_id;index" json:"-"`
	Owner   User `gorm:"foreignKey:OwnerID;references:ID" json:"-"`

	Rooms []ReservationRoom `gorm:"foreignKey:ReservationID" json:"rooms"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// StartDate returns DateFrom as a plain time.Time (UTC midnight).
func (r Reservation) StartDate() time.Time { return time.Time(r.DateFrom) }

// EndDate returns DateTo as a plain time.Time (UTC midnight).
func (r Reservation) EndDate() time.Time { return time.Time(r.DateTo) }

// Duration is the reservation length in whole days.
func (r Reservation) Duration() int {
	return int(r.EndDate().Sub(r.StartDate()).Hours() / 24)
}

// TotalCost multiplies the duration by the per-day price of every booked
// room. A room's class price is counted once per room, not deduplicated
// by class. Requires Rooms.Room.RoomClass to be preloaded.
func (r Reservation) TotalCost() float64 {
	var perDay float64
	for _, link := range r.Rooms {
		perDay += link.Room.RoomClass.Price
	}
	return perDay * float64(r.Duration())
}
