package model

// Student holds the student-specific half of a registration.
type Student struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	UserID     int64  `gorm:"uniqueIndex;not null" json:"user_id"`
	Department string `gorm:"size:64" json:"student_dept"`
	RollNo     string `gorm:"size:32" json:"roll_no"`
	Year       int    `json:"year"`
	Section    string `gorm:"size:8" json:"section"`

	// Associations
	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
