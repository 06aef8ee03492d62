package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-management-backend/internal/db"
	"hostel-management-backend/internal/model"
)

// newTestStore opens a fresh in-memory SQLite database, migrated with the
// production schema. The DSN is keyed by test name so parallel tests never
// share state.
func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.Migrate(gormDB))
	return NewGormStore(gormDB), gormDB
}

// seedRoom inserts a room with the given capacity, all slots free.
func seedRoom(t *testing.T, gormDB *gorm.DB, capacity int) model.Room {
	t.Helper()
	room := model.Room{
		RoomNumber:     "101",
		Block:          "A",
		Floor:          1,
		RoomType:       "double",
		Capacity:       capacity,
		AvailableSlots: capacity,
	}
	require.NoError(t, gormDB.Create(&room).Error)
	return room
}

// requireSlotInvariant asserts available_slots == capacity - active allocations.
func requireSlotInvariant(t *testing.T, gormDB *gorm.DB, roomID int64) {
	t.Helper()

	var room model.Room
	require.NoError(t, gormDB.Where("room_id = ?", roomID).First(&room).Error)

	var active int64
	require.NoError(t, gormDB.Model(&model.RoomAllocation{}).
		Where("room_id = ? AND status = ?", roomID, model.AllocationActive).
		Count(&active).Error)

	require.Equal(t, room.Capacity-int(active), room.AvailableSlots,
		"available_slots must equal capacity minus active allocations")
}

var ctx = context.Background()
