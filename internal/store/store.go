package store

import (
	"context"

	"gorm.io/gorm"
)

// Store defines the invariant-bearing database operations. Plain reads go
// through DB() directly; everything that touches the room counter or the
// attendance table must go through these methods.
type Store interface {
	// Allocation manager.
	Allocate(ctx context.Context, studentID, roomID int64) (int64, error)
	Deallocate(ctx context.Context, allocationID int64) error
	SetRoomCapacity(ctx context.Context, roomID int64, capacity int) error

	// Attendance recorder.
	MarkBulk(ctx context.Context, records []AttendanceMark, markedBy int64) (int, error)

	// DB exposes the underlying handle for read-only queries.
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}
