package model

import "time"

// Fee payment status values.
const (
	FeePending  = "pending"
	FeeVerified = "verified"
	FeeRejected = "rejected"
)

// FeeAssignment is a charge assigned to a student (mess fee, room rent, ...).
type FeeAssignment struct {
	AssignmentID int64     `gorm:"primaryKey" json:"assignment_id"`
	StudentID    int64     `gorm:"index;not null" json:"student_id"`
	FeeType      string    `gorm:"size:64;not null" json:"fee_type"`
	Amount       float64   `gorm:"not null" json:"amount"`
	DueDate      time.Time `json:"due_date"`
	CreatedAt    time.Time `json:"-"`
}

// FeePayment records one payment against an assignment. Teachers verify or
// reject pending payments.
type FeePayment struct {
	ReceiptID     int64     `gorm:"primaryKey" json:"receipt_id"`
	AssignmentID  int64     `gorm:"index;not null" json:"assignment_id"`
	UserID        int64     `gorm:"index;not null" json:"user_id"`
	AmountPaid    float64   `gorm:"not null" json:"amount_paid"`
	PaymentDate   time.Time `gorm:"not null" json:"payment_date"`
	PaymentMethod string    `gorm:"size:32" json:"payment_method"`
	TransactionID string    `gorm:"size:64" json:"transaction_id"`
	Status        string    `gorm:"size:16;not null;default:pending" json:"status"`
}
