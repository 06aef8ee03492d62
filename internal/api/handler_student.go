package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/mw"
)

// studentForUser resolves the student row for the authenticated user.
func (h *Handler) studentForUser(c *gin.Context) (*model.Student, bool) {
	var student model.Student
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("user_id = ?", mw.UserID(c)).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student record not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student record"})
		return nil, false
	}
	return &student, true
}

// GetProfile handles GET /api/student/profile.
func (h *Handler) GetProfile(c *gin.Context) {
	db := h.store.DB().WithContext(c.Request.Context())

	var user model.User
	err := db.First(&user, mw.UserID(c)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	student, ok := h.studentForUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"phone":        user.Phone,
		"role":         user.Role,
		"student_dept": student.Department,
		"roll_no":      student.RollNo,
		"year":         student.Year,
		"section":      student.Section,
	})
}

type selectRoomRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
}

// SelectRoom handles POST /api/student/select-room. The student allocates a
// room to themselves; the write goes through the same transactional path as
// the teacher-driven allocation, so the slot counter cannot drift.
func (h *Handler) SelectRoom(c *gin.Context) {
	var req selectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	student, ok := h.studentForUser(c)
	if !ok {
		return
	}

	allocationID, err := h.store.Allocate(c.Request.Context(), student.ID, req.RoomID)
	if err != nil {
		respondStoreErr(c, err)
		return
	}
	h.invalidateRoomCache()

	c.JSON(http.StatusOK, gin.H{
		"message":       "Room selected successfully",
		"allocation_id": allocationID,
	})
}

// GetAllocatedRoom handles GET /api/student/allocated-room.
func (h *Handler) GetAllocatedRoom(c *gin.Context) {
	student, ok := h.studentForUser(c)
	if !ok {
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var allocation model.RoomAllocation
	err := db.Where("student_id = ? AND status = ?", student.ID, model.AllocationActive).
		First(&allocation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No room allocated"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch allocated room details"})
		return
	}

	var room model.Room
	if err := db.Where("room_id = ?", allocation.RoomID).First(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch allocated room details"})
		return
	}

	var roommates []string
	if err := db.Model(&model.RoomAllocation{}).
		Select("users.name").
		Joins("JOIN students ON students.id = room_allocations.student_id").
		Joins("JOIN users ON users.id = students.user_id").
		Where("room_allocations.room_id = ? AND room_allocations.status = ? AND room_allocations.student_id != ?",
			allocation.RoomID, model.AllocationActive, student.ID).
		Scan(&roommates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch allocated room details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_number":       room.RoomNumber,
		"block":             room.Block,
		"floor":             room.Floor,
		"room_type":         room.RoomType,
		"capacity":          room.Capacity,
		"allocated_date":    allocation.AllocatedDate,
		"allocation_status": allocation.Status,
		"roommates":         roommates,
	})
}

// GetFees handles GET /api/student/fees, summarizing assignments against
// verified and pending payments.
func (h *Handler) GetFees(c *gin.Context) {
	student, ok := h.studentForUser(c)
	if !ok {
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var totalAssigned float64
	if err := db.Model(&model.FeeAssignment{}).
		Where("student_id = ?", student.ID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalAssigned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fee details"})
		return
	}

	var payments []model.FeePayment
	if err := db.Where("user_id = ?", mw.UserID(c)).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fee details"})
		return
	}

	var totalPaid float64
	for _, p := range payments {
		totalPaid += p.AmountPaid
	}

	var nextDue *time.Time
	var assignment model.FeeAssignment
	err := db.Where("student_id = ?", student.ID).
		Order("due_date ASC").
		First(&assignment).Error
	if err == nil {
		nextDue = &assignment.DueDate
	}

	c.JSON(http.StatusOK, gin.H{
		"total_fee": totalAssigned,
		"paid":      totalPaid,
		"remaining": totalAssigned - totalPaid,
		"history":   payments,
		"due_date":  nextDue,
	})
}

type gatePassRequest struct {
	Reason     string    `json:"reason" binding:"required"`
	LeaveDate  time.Time `json:"leave_date" binding:"required"`
	ReturnDate time.Time `json:"return_date" binding:"required"`
}

// CreateGatePass handles POST /api/student/gate-pass.
func (h *Handler) CreateGatePass(c *gin.Context) {
	var req gatePassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pass := model.GatePass{
		UserID:     mw.UserID(c),
		Reason:     req.Reason,
		LeaveDate:  req.LeaveDate,
		ReturnDate: req.ReturnDate,
		Status:     model.GatePassPending,
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&pass).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit gate pass request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Gate pass request submitted", "id": pass.ID})
}

// ListGatePasses handles GET /api/student/gate-passes.
func (h *Handler) ListGatePasses(c *gin.Context) {
	var passes []model.GatePass
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("user_id = ?", mw.UserID(c)).
		Order("created_at DESC").
		Find(&passes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gate passes"})
		return
	}
	c.JSON(http.StatusOK, passes)
}

type complaintRequest struct {
	Category  string `json:"category" binding:"required"`
	Complaint string `json:"complaint" binding:"required"`
}

// CreateComplaint handles POST /api/student/complaints.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req complaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	complaint := model.Complaint{
		UserID:    mw.UserID(c),
		Category:  req.Category,
		Complaint: req.Complaint,
		Status:    model.ComplaintOpen,
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&complaint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Complaint submitted successfully", "id": complaint.ID})
}

// ListComplaints handles GET /api/student/complaints.
func (h *Handler) ListComplaints(c *gin.Context) {
	var complaints []model.Complaint
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("user_id = ?", mw.UserID(c)).
		Order("created_at DESC").
		Find(&complaints).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// GetMyAttendance handles GET /api/student/attendance.
func (h *Handler) GetMyAttendance(c *gin.Context) {
	student, ok := h.studentForUser(c)
	if !ok {
		return
	}

	var records []model.AttendanceRecord
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("student_id = ?", student.ID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// ListNotifications handles GET /api/student/notifications.
func (h *Handler) ListNotifications(c *gin.Context) {
	var notifications []model.Notification
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("user_id = ?", mw.UserID(c)).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead handles POST /api/student/notifications/:id/read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	res := h.store.DB().WithContext(c.Request.Context()).
		Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, mw.UserID(c)).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
