package store

import "errors"

// Typed outcomes for the allocation and attendance operations. Handlers map
// these to HTTP statuses with errors.Is; anything else coming out of a
// transaction is wrapped as ErrTransient and safe for the caller to retry.
var (
	// ErrRoomUnavailable means the room has no free slot left.
	ErrRoomUnavailable = errors.New("room not available")

	// ErrAlreadyAllocated means the student already holds an active allocation.
	ErrAlreadyAllocated = errors.New("student already has an active room allocation")

	// ErrAllocationNotFound means no active allocation exists for the given id.
	ErrAllocationNotFound = errors.New("active allocation not found")

	// ErrRoomNotFound means the referenced room does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrInvalidAttendance means a bulk attendance record failed validation.
	ErrInvalidAttendance = errors.New("invalid attendance record")

	// ErrTransient means the transaction was rolled back by a store failure.
	// No partial writes remain; the caller may retry.
	ErrTransient = errors.New("transient store failure")
)

// IsConflict reports whether err is a precondition violation rather than a
// store failure.
func IsConflict(err error) bool {
	return errors.Is(err, ErrRoomUnavailable) || errors.Is(err, ErrAlreadyAllocated)
}
