package model

import "time"

// Attendance status values.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLeave   = "leave"
)

// AttendanceRecord is one student's attendance for one date. The composite
// unique key gives re-submissions upsert semantics instead of duplicates.
type AttendanceRecord struct {
	ID        int64     `gorm:"autoIncrement;primaryKey" json:"id"`
	StudentID int64     `gorm:"not null;uniqueIndex:idx_attendance_student_date" json:"student_id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_attendance_student_date" json:"date"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	MarkedBy  int64     `gorm:"not null" json:"marked_by"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
