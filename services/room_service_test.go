package services

import (
	"testing"

	"hotel-reservation-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateRoom(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	svc := NewRoomService(db)

	room, err := svc.Create(models.Room{Number: "42", RoomClassCode: "S"})
	require.NoError(t, err)
	assert.Equal(t, "42", room.Number)
	assert.Equal(t, "S", room.RoomClassCode)
}

func TestCreateRoom_Validation(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	svc := NewRoomService(db)

	var vErr *ValidationError

	_, err := svc.Create(models.Room{Number: "", RoomClassCode: "S"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "number", vErr.Field)

	_, err = svc.Create(models.Room{Number: "123456", RoomClassCode: "S"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "number", vErr.Field)

	// referential integrity: the class must exist at write time
	_, err = svc.Create(models.Room{Number: "77", RoomClassCode: "ZZZ"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "room_class", vErr.Field)

	_, err = svc.Create(models.Room{Number: "1T", RoomClassCode: "S"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "number", vErr.Field)
	assert.Contains(t, vErr.Message, "already exists")
}

func TestUpdateRoom_ReassignsClass(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	svc := NewRoomService(db)

	room, err := svc.Update("1T", "S")
	require.NoError(t, err)
	assert.Equal(t, "S", room.RoomClassCode)

	_, err = svc.Update("nope", "S")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRoom_BlockedWhileReferenced(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	owner := seedUser(t, db, "alice", false)
	rooms := NewRoomService(db)
	reservations := NewReservationService(db)

	res, err := reservations.Create(owner, CreateReservationInput{
		DateFrom: dayStr(0), DateTo: dayStr(3), Rooms: []string{"123"},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, rooms.Delete("123"), ErrRoomHasReservations)

	// even a historical linkage blocks deletion
	require.NoError(t, db.Model(&models.Reservation{}).Where("id = ?", res.ID).
		Updates(map[string]interface{}{"date_from": day(-30), "date_to": day(-27)}).Error)
	assert.ErrorIs(t, rooms.Delete("123"), ErrRoomHasReservations)

	// once the reservation is gone, deletion succeeds
	require.NoError(t, reservations.Delete(res.ID))
	require.NoError(t, rooms.Delete("123"))

	_, err = rooms.GetByNumber("123")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteRoom_NotFound(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db)
	svc := NewRoomService(db)

	assert.ErrorIs(t, svc.Delete("nope"), gorm.ErrRecordNotFound)
}
