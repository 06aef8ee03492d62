package model

import "time"

// Room represents one hostel room.
//
// AvailableSlots is stored redundantly: it must always equal Capacity minus the
// number of active allocations referencing this room. Only the allocation store
// methods may change it, and only together with the matching ledger write.
type Room struct {
	RoomID         int64     `gorm:"primaryKey" json:"room_id"`
	RoomNumber     string    `gorm:"size:16;not null;index:idx_rooms_block_number" json:"room_number"`
	Block          string    `gorm:"size:16;not null;index:idx_rooms_block_number" json:"block"`
	Floor          int       `gorm:"not null" json:"floor"`
	RoomType       string    `gorm:"size:32;not null" json:"room_type"`
	Capacity       int       `gorm:"not null" json:"capacity"`
	AvailableSlots int       `gorm:"not null" json:"available_slots"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`

	// Associations
	Allocations []RoomAllocation `gorm:"foreignKey:RoomID" json:"-"`
}
