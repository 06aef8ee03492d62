package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-management-backend/internal/model"
)

func TestMarkBulkUpsert(t *testing.T) {
	s, gormDB := newTestStore(t)

	count, err := s.MarkBulk(ctx, []AttendanceMark{
		{StudentID: 1, Date: "2024-01-01", Status: model.AttendancePresent},
		{StudentID: 2, Date: "2024-01-01", Status: model.AttendanceAbsent},
	}, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Re-submission for the same (student, date) overwrites, not duplicates.
	count, err = s.MarkBulk(ctx, []AttendanceMark{
		{StudentID: 1, Date: "2024-01-01", Status: model.AttendanceAbsent},
	}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var records []model.AttendanceRecord
	require.NoError(t, gormDB.Where("student_id = ? AND date = ?", 1, "2024-01-01").Find(&records).Error)
	require.Len(t, records, 1)
	assert.Equal(t, model.AttendanceAbsent, records[0].Status)
	assert.Equal(t, int64(10), records[0].MarkedBy)

	var total int64
	require.NoError(t, gormDB.Model(&model.AttendanceRecord{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestMarkBulkAllOrNothing(t *testing.T) {
	s, gormDB := newTestStore(t)

	// One bad status in the middle rolls back the whole batch.
	_, err := s.MarkBulk(ctx, []AttendanceMark{
		{StudentID: 1, Date: "2024-01-02", Status: model.AttendancePresent},
		{StudentID: 2, Date: "2024-01-02", Status: "late"},
		{StudentID: 3, Date: "2024-01-02", Status: model.AttendancePresent},
	}, 9)
	assert.ErrorIs(t, err, ErrInvalidAttendance)

	var total int64
	require.NoError(t, gormDB.Model(&model.AttendanceRecord{}).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}

func TestMarkBulkEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	count, err := s.MarkBulk(ctx, nil, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMarkBulkRejectsMissingFields(t *testing.T) {
	s, _ := newTestStore(t)

	testCases := []struct {
		name   string
		record AttendanceMark
	}{
		{"zero student id", AttendanceMark{Date: "2024-01-01", Status: model.AttendancePresent}},
		{"empty date", AttendanceMark{StudentID: 1, Status: model.AttendancePresent}},
		{"empty status", AttendanceMark{StudentID: 1, Date: "2024-01-01"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.MarkBulk(ctx, []AttendanceMark{tc.record}, 9)
			assert.ErrorIs(t, err, ErrInvalidAttendance)
		})
	}
}
