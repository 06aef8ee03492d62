package model

import "time"

// Allocation status values. Rows are never deleted; a deallocation flips the
// status to inactive so the table keeps the full occupancy history.
const (
	AllocationActive   = "active"
	AllocationInactive = "inactive"
)

// RoomAllocation links one student to one room. At most one active allocation
// may exist per student at any time.
type RoomAllocation struct {
	AllocationID  int64     `gorm:"primaryKey" json:"allocation_id"`
	RoomID        int64     `gorm:"index;not null" json:"room_id"`
	StudentID     int64     `gorm:"index;not null" json:"student_id"`
	Status        string    `gorm:"size:16;not null;default:active" json:"status"`
	AllocatedDate time.Time `gorm:"not null" json:"allocated_date"`
	UpdatedAt     time.Time `json:"-"`

	// Associations
	Room Room `gorm:"foreignKey:RoomID;references:RoomID" json:"-"`
}
