package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"hotel-reservation-api/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

// ReservationService wraps *gorm.DB with the reservation lifecycle:
// availability checking, validated writes and list searching.
type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

type CreateReservationInput struct {
	DateFrom string
	DateTo   string
	Name     string
	Rooms    []string
}

// UpdateReservationInput carries a partial update. Nil fields keep the
// stored value; the merged record is re-validated as a whole.
type UpdateReservationInput struct {
	DateFrom *string
	DateTo   *string
	Name     *string
	Rooms    []string
}

type ReservationSearchParams struct {
	RoomNumber string
	Name       string
	Date       string
	DateFrom   string
	DateTo     string
	Duration   string
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, validationErr(field, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value))
	}
	return t.UTC(), nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func uniqueRoomNumbers(numbers []string) []string {
	seen := make(map[string]struct{}, len(numbers))
	out := make([]string, 0, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// IsAvailable reports whether the room is free for the half-open range
// [dateFrom, dateTo). Two ranges overlap iff a_from < b_to AND
// b_from < a_to, so back-to-back reservations sharing a boundary day do
// not collide. excludeID skips the reservation being updated.
func (s *ReservationService) IsAvailable(tx *gorm.DB, roomNumber string, dateFrom, dateTo time.Time, excludeID uint) (bool, error) {
	q := tx.Model(&models.Reservation{}).
		Joins("JOIN reservation_rooms ON reservation_rooms.reservation_id = reservations.id").
		Where("reservation_rooms.room_number = ?", roomNumber).
		Where("reservations.date_from < ? AND reservations.date_to > ?", dateTo, dateFrom)
	if excludeID != 0 {
		q = q.Where("reservations.id <> ?", excludeID)
	}

	var collisions int64
	if err := q.Count(&collisions).Error; err != nil {
		return false, fmt.Errorf("failed to count colliding reservations: %w", err)
	}
	return collisions == 0, nil
}

// lockRooms fetches the requested rooms FOR UPDATE so two concurrent
// writes on the same room serialize before the availability check.
// SQLite has no SELECT ... FOR UPDATE; its single-writer lock covers the
// same race there.
func (s *ReservationService) lockRooms(tx *gorm.DB, numbers []string) ([]models.Room, error) {
	q := tx
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rooms []models.Room
	if err := q.Where("number IN ?", numbers).Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	return rooms, nil
}

// validateReservation enforces the write invariants in order: non-empty
// room set, date ordering, start date not in the past (create only),
// then availability of every room in the target set.
func (s *ReservationService) validateReservation(tx *gorm.DB, roomNumbers []string, name string, dateFrom, dateTo time.Time, excludeID uint, isCreate bool) error {
	if len(roomNumbers) == 0 {
		return validationErr("rooms", "reservation has to have at least one room")
	}
	if len(name) > 100 {
		return validationErr("name", "name cannot be longer than 100 characters")
	}
	if !dateFrom.Before(dateTo) {
		return validationErr("date_from", "reservation start date must be before end date")
	}
	if isCreate && dateFrom.Before(today()) {
		return validationErr("date_from", "reservation cannot start in the past")
	}

	rooms, err := s.lockRooms(tx, roomNumbers)
	if err != nil {
		return err
	}
	if len(rooms) != len(roomNumbers) {
		found := make(map[string]struct{}, len(rooms))
		for _, r := range rooms {
			found[r.Number] = struct{}{}
		}
		for _, n := range roomNumbers {
			if _, ok := found[n]; !ok {
				return validationErr("rooms", fmt.Sprintf("room %q does not exist", n))
			}
		}
	}

	for _, n := range roomNumbers {
		ok, err := s.IsAvailable(tx, n, dateFrom, dateTo, excludeID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAvailable
		}
	}
	return nil
}

func (s *ReservationService) Create(owner models.User, in CreateReservationInput) (*models.Reservation, error) {
	dateFrom, err := parseDate("date_from", in.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := parseDate("date_to", in.DateTo)
	if err != nil {
		return nil, err
	}
	roomNumbers := uniqueRoomNumbers(in.Rooms)

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = owner.LastName
	}

	var created models.Reservation
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.validateReservation(tx, roomNumbers, name, dateFrom, dateTo, 0, true); err != nil {
			return err
		}

		links := make([]models.ReservationRoom, 0, len(roomNumbers))
		for _, n := range roomNumbers {
			links = append(links, models.ReservationRoom{RoomNumber: n})
		}
		created = models.Reservation{
			ReferenceCode: uuid.NewString(),
			DateFrom:      datatypes.Date(dateFrom),
			DateTo:        datatypes.Date(dateTo),
			Name:          name,
			OwnerID:       owner.ID,
			Rooms:         links,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(created.ID)
}

func (s *ReservationService) Update(id uint, in UpdateReservationInput) (*models.Reservation, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Reservation
		if err := tx.Preload("Rooms").First(&existing, id).Error; err != nil {
			return err
		}

		dateFrom := existing.StartDate()
		dateTo := existing.EndDate()
		name := existing.Name
		var err error
		if in.DateFrom != nil {
			if dateFrom, err = parseDate("date_from", *in.DateFrom); err != nil {
				return err
			}
		}
		if in.DateTo != nil {
			if dateTo, err = parseDate("date_to", *in.DateTo); err != nil {
				return err
			}
		}
		if in.Name != nil {
			name = strings.TrimSpace(*in.Name)
		}

		// rooms omitted from a partial update keep the stored room set
		roomNumbers := in.Rooms
		if roomNumbers == nil {
			roomNumbers = make([]string, 0, len(existing.Rooms))
			for _, link := range existing.Rooms {
				roomNumbers = append(roomNumbers, link.RoomNumber)
			}
		}
		roomNumbers = uniqueRoomNumbers(roomNumbers)

		// updates may keep a start date that is already in the past
		if err := s.validateReservation(tx, roomNumbers, name, dateFrom, dateTo, id, false); err != nil {
			return err
		}

		if err := tx.Where("reservation_id = ?", id).Delete(&models.ReservationRoom{}).Error; err != nil {
			return fmt.Errorf("failed to replace reservation rooms: %w", err)
		}
		links := make([]models.ReservationRoom, 0, len(roomNumbers))
		for _, n := range roomNumbers {
			links = append(links, models.ReservationRoom{ReservationID: id, RoomNumber: n})
		}
		if err := tx.Create(&links).Error; err != nil {
			return fmt.Errorf("failed to replace reservation rooms: %w", err)
		}

		return tx.Model(&models.Reservation{}).Where("id = ?", id).
			Updates(map[string]interface{}{
				"date_from": datatypes.Date(dateFrom),
				"date_to":   datatypes.Date(dateTo),
				"name":      name,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

func (s *ReservationService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			return err
		}
		if err := tx.Where("reservation_id = ?", id).Delete(&models.ReservationRoom{}).Error; err != nil {
			return fmt.Errorf("failed to delete reservation rooms: %w", err)
		}
		return tx.Delete(&reservation).Error
	})
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.
		Preload("Rooms.Room.RoomClass").
		Preload("Owner").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Search narrows the reservation list by whichever parameters are
// present, AND-ed together. Non-staff callers only ever see their own
// reservations. Invoked from the list path only; detail fetches go
// through GetByID.
func (s *ReservationService) Search(requester models.User, params ReservationSearchParams) ([]models.Reservation, error) {
	q := s.DB.Model(&models.Reservation{}).
		Preload("Rooms.Room.RoomClass").
		Preload("Owner")

	if !requester.Staff() {
		q = q.Where("reservations.owner_id = ?", requester.ID)
	}

	if params.RoomNumber != "" {
		q = q.Select("reservations.*").
			Joins("JOIN reservation_rooms sr ON sr.reservation_id = reservations.id").
			Where("sr.room_number = ?", params.RoomNumber)
	}
	if params.Date != "" {
		d, err := parseDate("date", params.Date)
		if err != nil {
			return nil, err
		}
		q = q.Where("reservations.date_from <= ? AND reservations.date_to >= ?", d, d)
	}
	if params.DateFrom != "" {
		d, err := parseDate("date_from", params.DateFrom)
		if err != nil {
			return nil, err
		}
		q = q.Where("reservations.date_from = ?", d)
	}
	if params.DateTo != "" {
		d, err := parseDate("date_to", params.DateTo)
		if err != nil {
			return nil, err
		}
		q = q.Where("reservations.date_to = ?", d)
	}

	duration := 0
	if params.Duration != "" {
		var err error
		duration, err = strconv.Atoi(params.Duration)
		if err != nil {
			return nil, validationErr("duration", fmt.Sprintf("invalid duration %q", params.Duration))
		}
		if duration < 1 {
			return nil, validationErr("duration", "reservation duration must be a positive number of days")
		}
	}

	var reservations []models.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to search reservations: %w", err)
	}

	// name containment and duration are matched in Go: SQL LIKE is
	// case-insensitive on both backends, and MySQL and SQLite share no
	// date-arithmetic syntax for the duration comparison
	out := reservations[:0]
	for _, r := range reservations {
		if params.Name != "" && !strings.Contains(r.Name, params.Name) {
			continue
		}
		if duration > 0 && r.Duration() != duration {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
