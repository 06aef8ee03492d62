package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// inTx runs fn in one transaction and classifies the outcome. Typed sentinel
// errors pass through untouched; any other failure means the transaction was
// rolled back mid-flight, so it is reported as ErrTransient. The store never
// retries on its own.
func (s *gormStore) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}

	for _, typed := range []error{
		ErrRoomUnavailable,
		ErrAlreadyAllocated,
		ErrAllocationNotFound,
		ErrRoomNotFound,
		ErrInvalidAttendance,
	} {
		if errors.Is(err, typed) {
			return err
		}
	}

	return fmt.Errorf("%w: %v", ErrTransient, err)
}
