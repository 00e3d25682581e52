package services

import (
	"fmt"
	"strings"

	"hotel-reservation-api/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) validateNumber(number string) error {
	if number == "" {
		return validationErr("number", "room number is required")
	}
	if len(number) > 5 {
		return validationErr("number", "room number cannot be longer than 5 characters")
	}
	return nil
}

func (s *RoomService) classExists(code string) error {
	var class models.RoomClass
	if err := s.DB.First(&class, "code = ?", code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return validationErr("room_class", fmt.Sprintf("room class %q does not exist", code))
		}
		return fmt.Errorf("failed to look up room class: %w", err)
	}
	return nil
}

func (s *RoomService) Create(room models.Room) (*models.Room, error) {
	room.Number = strings.TrimSpace(room.Number)
	if err := s.validateNumber(room.Number); err != nil {
		return nil, err
	}
	if err := s.classExists(room.RoomClassCode); err != nil {
		return nil, err
	}

	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, validationErr("number", fmt.Sprintf("room %q already exists", room.Number))
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByNumber(number string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, "number = ?", number).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// Update reassigns the room to another class; the number is the primary
// key and is not mutable.
func (s *RoomService) Update(number, roomClassCode string) (*models.Room, error) {
	room, err := s.GetByNumber(number)
	if err != nil {
		return nil, err
	}
	if err := s.classExists(roomClassCode); err != nil {
		return nil, err
	}
	if err := s.DB.Model(room).Update("room_class_code", roomClassCode).Error; err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return s.GetByNumber(number)
}

// Delete refuses while any reservation, past or future, still references
// the room.
func (s *RoomService) Delete(number string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.First(&room, "number = ?", number).Error; err != nil {
			return err
		}

		var links int64
		if err := tx.Model(&models.ReservationRoom{}).
			Where("room_number = ?", number).
			Count(&links).Error; err != nil {
			return fmt.Errorf("failed to count reservations for room: %w", err)
		}
		if links > 0 {
			return ErrRoomHasReservations
		}

		return tx.Delete(&room).Error
	})
}
