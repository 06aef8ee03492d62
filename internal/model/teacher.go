package model

// Teacher holds the teacher-specific half of a registration.
type Teacher struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	UserID     int64  `gorm:"uniqueIndex;not null" json:"user_id"`
	Department string `gorm:"size:64" json:"teacher_dept"`
	StaffID    string `gorm:"size:32" json:"teacher_id"`
	Post       string `gorm:"size:64" json:"post"`

	// Associations
	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
