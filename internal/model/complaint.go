package model

import "time"

// Complaint status values.
const (
	ComplaintOpen       = "open"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
)

// Complaint is a maintenance or facility complaint filed by a student.
type Complaint struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Category  string    `gorm:"size:64;not null" json:"category"`
	Complaint string    `gorm:"size:1024;not null" json:"complaint"`
	Status    string    `gorm:"size:16;not null;default:open" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
