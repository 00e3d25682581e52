package services

import (
	"runtime"
	"testing"
	"time"

	"hotel-reservation-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	if runtime.GOOS == "windows" {
		t.Skip("skipping sqlite test on windows because CGO is disabled")
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second pool connection would see a different :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.RoomClass{},
		&models.Room{},
		&models.Reservation{},
		&models.ReservationRoom{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// day returns UTC midnight offset whole days from today.
func day(offset int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, offset)
}

func dayStr(offset int) string {
	return day(offset).Format("2006-01-02")
}

func seedUser(t *testing.T, db *gorm.DB, username string, staff bool) models.User {
	user := models.User{
		Username: username,
		Password: "x",
		LastName: "Tester",
		IsStaff:  staff,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	require.NoError(t, db.Create(&[]models.RoomClass{
		{Code: "T", Price: 50},
		{Code: "S", Price: 75},
	}).Error)
	require.NoError(t, db.Create(&[]models.Room{
		{Number: "1T", RoomClassCode: "T"},
		{Number: "1S", RoomClassCode: "S"},
		{Number: "123", RoomClassCode: "T"},
	}).Error)
}

func strPtr(s string) *string { return &s }

func TestCreateReservation_DerivedFields(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	res, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0),
		DateTo:   dayStr(1),
		Name:     "Johnson",
		Rooms:    []string{"1T", "1S"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Duration())
	assert.Equal(t, 125.0, res.TotalCost())
	assert.Equal(t, "Johnson", res.Name)
	assert.Equal(t, "alice", res.Owner.Username)
	assert.NotEmpty(t, res.ReferenceCode)
	assert.Len(t, res.Rooms, 2)
}

func TestCreateReservation_SharedClassCountedPerRoom(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	// 1T and 123 are both class T: price counts once per room
	res, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0),
		DateTo:   dayStr(2),
		Rooms:    []string{"1T", "123"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Duration())
	assert.Equal(t, 200.0, res.TotalCost())
}

func TestCreateReservation_DefaultsNameToOwnerLastName(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	res, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0),
		DateTo:   dayStr(1),
		Rooms:    []string{"1T"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tester", res.Name)
}

func TestCreateReservation_ContainedOverlapRejected(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	_, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0),
		DateTo:   dayStr(3),
		Rooms:    []string{"123"},
	})
	require.NoError(t, err)

	_, err = svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(1),
		DateTo:   dayStr(2),
		Rooms:    []string{"123"},
	})
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreateReservation_BoundaryTouchingAccepted(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	_, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0),
		DateTo:   dayStr(3),
		Rooms:    []string{"123"},
	})
	require.NoError(t, err)

	// [0,3) and [3,5) share only the boundary day: no overlap
	_, err = svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(3),
		DateTo:   dayStr(5),
		Rooms:    []string{"123"},
	})
	assert.NoError(t, err)
}

func TestCreateReservation_AnyUnavailableRoomRejectsWholeSet(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	_, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0),
		DateTo:   dayStr(3),
		Rooms:    []string{"123"},
	})
	require.NoError(t, err)

	_, err = svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(1),
		DateTo:   dayStr(4),
		Rooms:    []string{"1T", "123"},
	})
	assert.ErrorIs(t, err, ErrNotAvailable)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestIsAvailable_Idempotent(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	_, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0),
		DateTo:   dayStr(3),
		Rooms:    []string{"123"},
	})
	require.NoError(t, err)

	first, err := svc.IsAvailable(db, "123", day(1), day(2), 0)
	require.NoError(t, err)
	second, err := svc.IsAvailable(db, "123", day(1), day(2), 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.False(t, first)

	free, err := svc.IsAvailable(db, "1S", day(1), day(2), 0)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestCreateReservation_Validation(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	var vErr *ValidationError

	_, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0), DateTo: dayStr(1),
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rooms", vErr.Field)

	_, err = svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(2), DateTo: dayStr(2), Rooms: []string{"1T"},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date_from", vErr.Field)

	_, err = svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(-1), DateTo: dayStr(1), Rooms: []string{"1T"},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date_from", vErr.Field)
	assert.Contains(t, vErr.Message, "past")

	_, err = svc.Create(owner, CreateReservationInput{
		DateFrom: "not-a-date", DateTo: dayStr(1), Rooms: []string{"1T"},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date_from", vErr.Field)

	_, err = svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0), DateTo: dayStr(1), Rooms: []string{"9Z"},
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "rooms", vErr.Field)
}

func TestUpdateReservation_ExcludesSelfFromCollision(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	res, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0),
		DateTo:   dayStr(2),
		Rooms:    []string{"123"},
	})
	require.NoError(t, err)

	// extending over its own range must not self-collide
	updated, err := svc.Update(res.ID, UpdateReservationInput{
		DateTo: strPtr(dayStr(4)),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Duration())
}

func TestUpdateReservation_ConflictWithOtherReservation(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	_, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0), DateTo: dayStr(3), Rooms: []string{"123"},
	})
	require.NoError(t, err)

	other, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(3), DateTo: dayStr(5), Rooms: []string{"123"},
	})
	require.NoError(t, err)

	_, err = svc.Update(other.ID, UpdateReservationInput{
		DateFrom: strPtr(dayStr(2)),
	})
	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestUpdateReservation_KeepsPastStartDate(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	past := models.Reservation{
		ReferenceCode: "past-ref",
		DateFrom:      datatypes.Date(day(-10)),
		DateTo:        datatypes.Date(day(-7)),
		Name:          "old stay",
		OwnerID:       owner.ID,
		Rooms:         []models.ReservationRoom{{RoomNumber: "123"}},
	}
	require.NoError(t, db.Create(&past).Error)

	updated, err := svc.Update(past.ID, UpdateReservationInput{
		Name: strPtr("renamed stay"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed stay", updated.Name)
	assert.Equal(t, dayStr(-10), updated.StartDate().Format("2006-01-02"))
	assert.Equal(t, 3, updated.Duration())
}

func TestUpdateReservation_RoomsOmittedKeepsRoomSet(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	res, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0), DateTo: dayStr(2), Rooms: []string{"1T", "1S"},
	})
	require.NoError(t, err)

	updated, err := svc.Update(res.ID, UpdateReservationInput{
		DateTo: strPtr(dayStr(3)),
	})
	require.NoError(t, err)
	assert.Len(t, updated.Rooms, 2)
}

func TestDeleteReservation(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	svc := NewReservationService(db)

	res, err := svc.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0), DateTo: dayStr(2), Rooms: []string{"123"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(res.ID))

	_, err = svc.GetByID(res.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var links int64
	db.Model(&models.ReservationRoom{}).Where("reservation_id = ?", res.ID).Count(&links)
	assert.Equal(t, int64(0), links)

	assert.ErrorIs(t, svc.Delete(res.ID), gorm.ErrRecordNotFound)
}

func TestSearchReservations(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	staff := seedUser(t, db, "staff", true)
	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	svc := NewReservationService(db)

	r1, err := svc.Create(alice, CreateReservationInput{
		DateFrom: dayStr(0), DateTo: dayStr(2), Name: "Smith", Rooms: []string{"123"},
	})
	require.NoError(t, err)
	r2, err := svc.Create(bob, CreateReservationInput{
		DateFrom: dayStr(4), DateTo: dayStr(7), Name: "smithers", Rooms: []string{"1S"},
	})
	require.NoError(t, err)

	// no params: staff sees everything
	all, err := svc.Search(staff, ReservationSearchParams{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// owner restriction applies before any filter
	mine, err := svc.Search(alice, ReservationSearchParams{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, r1.ID, mine[0].ID)

	byRoom, err := svc.Search(staff, ReservationSearchParams{RoomNumber: "1S"})
	require.NoError(t, err)
	require.Len(t, byRoom, 1)
	assert.Equal(t, r2.ID, byRoom[0].ID)

	// containment is case-sensitive
	byName, err := svc.Search(staff, ReservationSearchParams{Name: "Smith"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, r1.ID, byName[0].ID)

	bySub, err := svc.Search(staff, ReservationSearchParams{Name: "mith"})
	require.NoError(t, err)
	assert.Len(t, bySub, 2)

	byDate, err := svc.Search(staff, ReservationSearchParams{Date: dayStr(1)})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, r1.ID, byDate[0].ID)

	byFrom, err := svc.Search(staff, ReservationSearchParams{DateFrom: dayStr(4)})
	require.NoError(t, err)
	require.Len(t, byFrom, 1)
	assert.Equal(t, r2.ID, byFrom[0].ID)

	byTo, err := svc.Search(staff, ReservationSearchParams{DateTo: dayStr(2)})
	require.NoError(t, err)
	require.Len(t, byTo, 1)
	assert.Equal(t, r1.ID, byTo[0].ID)

	byDuration, err := svc.Search(staff, ReservationSearchParams{Duration: "3"})
	require.NoError(t, err)
	require.Len(t, byDuration, 1)
	assert.Equal(t, r2.ID, byDuration[0].ID)

	// filters are AND-ed
	combined, err := svc.Search(staff, ReservationSearchParams{Name: "mith", Duration: "2"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, r1.ID, combined[0].ID)
}

func TestSearchReservations_BadParams(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	staff := seedUser(t, db, "staff", true)
	svc := NewReservationService(db)

	var vErr *ValidationError

	_, err := svc.Search(staff, ReservationSearchParams{Duration: "-1"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "duration", vErr.Field)

	_, err = svc.Search(staff, ReservationSearchParams{Duration: "soon"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "duration", vErr.Field)

	// malformed dates fail the request, they don't silently match nothing
	_, err = svc.Search(staff, ReservationSearchParams{Date: "not-a-date"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date", vErr.Field)

	_, err = svc.Search(staff, ReservationSearchParams{DateFrom: "2021-13-45"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "date_from", vErr.Field)
}
