package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hostel-management-backend/internal/model"
)

// Allocate assigns the student to the room. The ledger insert and the slot
// decrement happen in one transaction: one new active allocation row and
// exactly one counter decrement, or neither.
//
// The slot check is a conditional decrement (available_slots > 0 in the WHERE
// clause) rather than a separate read, so two concurrent calls can never both
// consume the last slot.
func (s *gormStore) Allocate(ctx context.Context, studentID, roomID int64) (int64, error) {
	var allocationID int64

	err := s.inTx(ctx, func(tx *gorm.DB) error {
		var active int64
		if err := tx.Model(&model.RoomAllocation{}).
			Where("student_id = ? AND status = ?", studentID, model.AllocationActive).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrAlreadyAllocated
		}

		res := tx.Model(&model.Room{}).
			Where("room_id = ? AND available_slots > 0", roomID).
			UpdateColumn("available_slots", gorm.Expr("available_slots - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomUnavailable
		}

		allocation := model.RoomAllocation{
			RoomID:        roomID,
			StudentID:     studentID,
			Status:        model.AllocationActive,
			AllocatedDate: time.Now().UTC(),
		}
		if err := tx.Create(&allocation).Error; err != nil {
			return err
		}

		allocationID = allocation.AllocationID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return allocationID, nil
}

// Deallocate flips the allocation to inactive and returns its slot to the
// room. Both writes commit together or neither does. A missing or already
// inactive allocation fails with ErrAllocationNotFound and writes nothing.
func (s *gormStore) Deallocate(ctx context.Context, allocationID int64) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		var allocation model.RoomAllocation
		err := tx.Where("allocation_id = ? AND status = ?", allocationID, model.AllocationActive).
			First(&allocation).Error
		if err == gorm.ErrRecordNotFound {
			return ErrAllocationNotFound
		}
		if err != nil {
			return err
		}

		res := tx.Model(&model.RoomAllocation{}).
			Where("allocation_id = ? AND status = ?", allocationID, model.AllocationActive).
			Update("status", model.AllocationInactive)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent deallocate won the row between the read and the update.
			return ErrAllocationNotFound
		}

		return tx.Model(&model.Room{}).
			Where("room_id = ?", allocation.RoomID).
			UpdateColumn("available_slots", gorm.Expr("available_slots + 1")).Error
	})
}

// SetRoomCapacity changes a room's capacity and recomputes available_slots
// from the active allocation count in the same transaction. This is the only
// path that may rewrite the counter outside allocate/deallocate.
func (s *gormStore) SetRoomCapacity(ctx context.Context, roomID int64, capacity int) error {
	return s.inTx(ctx, func(tx *gorm.DB) error {
		var room model.Room
		err := tx.Where("room_id = ?", roomID).First(&room).Error
		if err == gorm.ErrRecordNotFound {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		var active int64
		if err := tx.Model(&model.RoomAllocation{}).
			Where("room_id = ? AND status = ?", roomID, model.AllocationActive).
			Count(&active).Error; err != nil {
			return err
		}

		available := capacity - int(active)
		if available < 0 {
			available = 0
		}

		return tx.Model(&model.Room{}).
			Where("room_id = ?", roomID).
			Updates(map[string]any{
				"capacity":        capacity,
				"available_slots": available,
			}).Error
	})
}
