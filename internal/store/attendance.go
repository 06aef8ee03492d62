package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-management-backend/internal/model"
)

// AttendanceMark is one entry of a bulk attendance submission.
type AttendanceMark struct {
	StudentID int64  `json:"student_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

func validStatus(status string) bool {
	switch status {
	case model.AttendancePresent, model.AttendanceAbsent, model.AttendanceLeave:
		return true
	}
	return false
}

// MarkBulk upserts every record in one transaction. A re-submission for the
// same (student, date) overwrites status and marker instead of duplicating.
// Any invalid record aborts the whole batch; partial attendance is never
// committed. An empty list is a no-op success.
func (s *gormStore) MarkBulk(ctx context.Context, records []AttendanceMark, markedBy int64) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	err := s.inTx(ctx, func(tx *gorm.DB) error {
		for _, r := range records {
			if r.StudentID <= 0 || r.Date == "" || !validStatus(r.Status) {
				return fmt.Errorf("%w: student %d date %q status %q",
					ErrInvalidAttendance, r.StudentID, r.Date, r.Status)
			}

			record := model.AttendanceRecord{
				StudentID: r.StudentID,
				Date:      r.Date,
				Status:    r.Status,
				MarkedBy:  markedBy,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by"}),
			}).Create(&record).Error; err != nil {
				return fmt.Errorf("failed to upsert attendance for student %d on %s: %w",
					r.StudentID, r.Date, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
