package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/store"
)

// respondStoreErr maps the store's typed outcomes to HTTP statuses.
func respondStoreErr(c *gin.Context, err error) {
	switch {
	case store.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrAllocationNotFound), errors.Is(err, store.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidAttendance):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrTransient):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary failure, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// roomOccupancyResponse is a room joined with its current occupancy numbers.
type roomOccupancyResponse struct {
	model.Room
	OccupiedSlots    int `json:"occupied_slots"`
	CurrentOccupants int `json:"current_occupants"`
}

// GetAvailableRooms handles GET /api/rooms/available.
func GetAvailableRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rooms []model.Room
		if err := db.Where("available_slots > 0").
			Order("block, room_number").
			Find(&rooms).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch available rooms"})
			return
		}

		type countRow struct {
			RoomID int64
			N      int
		}
		var counts []countRow
		if err := db.Model(&model.RoomAllocation{}).
			Select("room_id as room_id, COUNT(*) as n").
			Where("status = ?", model.AllocationActive).
			Group("room_id").
			Scan(&counts).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate allocations"})
			return
		}

		countMap := make(map[int64]int, len(counts))
		for _, r := range counts {
			countMap[r.RoomID] = r.N
		}

		responses := make([]roomOccupancyResponse, 0, len(rooms))
		for _, room := range rooms {
			responses = append(responses, roomOccupancyResponse{
				Room:             room,
				OccupiedSlots:    room.Capacity - room.AvailableSlots,
				CurrentOccupants: countMap[room.RoomID],
			})
		}
		c.JSON(http.StatusOK, responses)
	}
}

// GetRoom handles GET /api/rooms/:room_id, returning the room plus the names
// of its current occupants.
func GetRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID, err := strconv.ParseInt(c.Param("room_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
			return
		}

		var room model.Room
		err = db.Where("room_id = ?", roomID).First(&room).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room details"})
			return
		}

		var occupants []string
		if err := db.Model(&model.RoomAllocation{}).
			Select("users.name").
			Joins("JOIN students ON students.id = room_allocations.student_id").
			Joins("JOIN users ON users.id = students.user_id").
			Where("room_allocations.room_id = ? AND room_allocations.status = ?", roomID, model.AllocationActive).
			Scan(&occupants).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch room details"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room":           room,
			"occupant_names": occupants,
		})
	}
}

type allocateRequest struct {
	StudentID int64 `json:"student_id" binding:"required"`
	RoomID    int64 `json:"room_id" binding:"required"`
}

// Allocate handles POST /api/rooms/allocate (teachers only).
func (h *Handler) Allocate(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allocationID, err := h.store.Allocate(c.Request.Context(), req.StudentID, req.RoomID)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	h.invalidateRoomCache()

	h.notifyStudent(c, req.StudentID, "Room allocated",
		"A hostel room has been allocated to you.")

	c.JSON(http.StatusOK, gin.H{
		"message":       "Room allocated successfully",
		"allocation_id": allocationID,
	})
}

type deallocateRequest struct {
	AllocationID int64 `json:"allocation_id" binding:"required"`
}

// Deallocate handles POST /api/rooms/deallocate (teachers only).
func (h *Handler) Deallocate(c *gin.Context) {
	var req deallocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Deallocate(c.Request.Context(), req.AllocationID); err != nil {
		respondStoreErr(c, err)
		return
	}
	h.invalidateRoomCache()

	c.JSON(http.StatusOK, gin.H{"message": "Room deallocated successfully"})
}

// notifyStudent resolves the student's user id and stores a notification.
func (h *Handler) notifyStudent(c *gin.Context, studentID int64, title, body string) {
	var student model.Student
	if err := h.store.DB().WithContext(c.Request.Context()).
		First(&student, studentID).Error; err != nil {
		return
	}
	h.notify(c, student.UserID, title, body)
}
