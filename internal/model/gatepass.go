package model

import "time"

// Gate pass status values.
const (
	GatePassPending  = "pending"
	GatePassApproved = "approved"
	GatePassRejected = "rejected"
)

// GatePass is a student's request to leave the hostel for a period.
type GatePass struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	UserID     int64     `gorm:"index;not null" json:"user_id"`
	Reason     string    `gorm:"size:512;not null" json:"reason"`
	LeaveDate  time.Time `gorm:"not null" json:"leave_date"`
	ReturnDate time.Time `gorm:"not null" json:"return_date"`
	Status     string    `gorm:"size:16;not null;default:pending" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"-"`
}
