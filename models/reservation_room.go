package models

// ReservationRoom links a reservation to one of its rooms. The link rows
// are owned by the reservation and deleted with it; keeping them explicit
// makes a room's reservation history queryable on its own.
type ReservationRoom struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	ReservationID uint   `gorm:"column:reservation_id;not null;index" json:"-"`
	RoomNumber    string `gorm:"column:room_number;size:5;not null;index" json:"room_number"`

	Room Room `gorm:"foreignKey:RoomNumber;references:Number" json:"-"`
}
