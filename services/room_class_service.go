package services

import (
	"fmt"
	"regexp"

	"hotel-reservation-api/models"

	"gorm.io/gorm"
)

var roomClassCodePattern = regexp.MustCompile(`^[A-Z]{1,3}$`)

type RoomClassService struct {
	DB *gorm.DB
}

func NewRoomClassService(db *gorm.DB) *RoomClassService {
	return &RoomClassService{DB: db}
}

func validateRoomClass(class models.RoomClass) error {
	if !roomClassCodePattern.MatchString(class.Code) {
		return validationErr("code", "room class code must be 1-3 uppercase letters")
	}
	if class.Price < 0 {
		return validationErr("price", "price cannot be negative")
	}
	return nil
}

func (s *RoomClassService) Create(class models.RoomClass) (*models.RoomClass, error) {
	if err := validateRoomClass(class); err != nil {
		return nil, err
	}
	if err := s.DB.Create(&class).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, validationErr("code", fmt.Sprintf("room class %q already exists", class.Code))
		}
		return nil, fmt.Errorf("failed to create room class: %w", err)
	}
	return &class, nil
}

func (s *RoomClassService) GetAll() ([]models.RoomClass, error) {
	var classes []models.RoomClass
	err := s.DB.Order("code").Find(&classes).Error
	return classes, err
}

func (s *RoomClassService) GetByCode(code string) (*models.RoomClass, error) {
	var class models.RoomClass
	if err := s.DB.First(&class, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &class, nil
}

func (s *RoomClassService) Update(code string, price float64) (*models.RoomClass, error) {
	class, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if price < 0 {
		return nil, validationErr("price", "price cannot be negative")
	}
	if err := s.DB.Model(class).Update("price", price).Error; err != nil {
		return nil, fmt.Errorf("failed to update room class: %w", err)
	}
	return s.GetByCode(code)
}

// Delete removes the class and cascades to its rooms, link rows
// included. The application does the cascade itself so the behavior does
// not depend on foreign keys being enforced by the backend.
func (s *RoomClassService) Delete(code string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var class models.RoomClass
		if err := tx.First(&class, "code = ?", code).Error; err != nil {
			return err
		}

		var numbers []string
		if err := tx.Model(&models.Room{}).
			Where("room_class_code = ?", code).
			Pluck("number", &numbers).Error; err != nil {
			return fmt.Errorf("failed to list rooms for class: %w", err)
		}
		if len(numbers) > 0 {
			if err := tx.Where("room_number IN ?", numbers).
				Delete(&models.ReservationRoom{}).Error; err != nil {
				return fmt.Errorf("failed to delete reservation links: %w", err)
			}
			if err := tx.Where("room_class_code = ?", code).
				Delete(&models.Room{}).Error; err != nil {
				return fmt.Errorf("failed to delete rooms for class: %w", err)
			}
		}

		return tx.Delete(&class).Error
	})
}
