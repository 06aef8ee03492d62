package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/mw"
	"hostel-management-backend/internal/store"
)

// teacherForUser resolves the teacher row for the authenticated user.
func (h *Handler) teacherForUser(c *gin.Context) (*model.Teacher, bool) {
	var teacher model.Teacher
	err := h.store.DB().WithContext(c.Request.Context()).
		Where("user_id = ?", mw.UserID(c)).
		First(&teacher).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Teacher record not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch teacher record"})
		return nil, false
	}
	return &teacher, true
}

// studentResponse is a student joined with their account identity.
type studentResponse struct {
	model.Student
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ListStudents handles GET /api/teacher/students.
func (h *Handler) ListStudents(c *gin.Context) {
	var students []studentResponse
	err := h.store.DB().WithContext(c.Request.Context()).
		Model(&model.Student{}).
		Select("students.*, users.name, users.email, users.phone").
		Joins("JOIN users ON users.id = students.user_id").
		Order("students.roll_no").
		Scan(&students).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}
	c.JSON(http.StatusOK, students)
}

// GetStudent handles GET /api/teacher/students/:id.
func (h *Handler) GetStudent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid student ID"})
		return
	}

	var student studentResponse
	err = h.store.DB().WithContext(c.Request.Context()).
		Model(&model.Student{}).
		Select("students.*, users.name, users.email, users.phone").
		Joins("JOIN users ON users.id = students.user_id").
		Where("students.id = ?", id).
		Scan(&student).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch student"})
		return
	}
	if student.ID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Student not found"})
		return
	}
	c.JSON(http.StatusOK, student)
}

type markAttendanceRequest struct {
	Attendance []store.AttendanceMark `json:"attendance" binding:"required"`
}

// MarkAttendance handles POST /api/teacher/attendance. The whole batch is
// applied in one transaction; a single bad record commits nothing.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req markAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teacher, ok := h.teacherForUser(c)
	if !ok {
		return
	}

	count, err := h.store.MarkBulk(c.Request.Context(), req.Attendance, teacher.ID)
	if err != nil {
		respondStoreErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attendance marked successfully", "count": count})
}

// attendanceReportRow is one report line joined with student identity.
type attendanceReportRow struct {
	model.AttendanceRecord
	Name   string `json:"name"`
	RollNo string `json:"roll_no"`
}

// GetAttendanceReport handles GET /api/teacher/attendance-report.
func (h *Handler) GetAttendanceReport(c *gin.Context) {
	fromDate := c.Query("from_date")
	toDate := c.Query("to_date")
	if fromDate == "" || toDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_date and to_date are required"})
		return
	}

	var rows []attendanceReportRow
	err := h.store.DB().WithContext(c.Request.Context()).
		Model(&model.AttendanceRecord{}).
		Select("attendance_records.*, users.name, students.roll_no").
		Joins("JOIN students ON students.id = attendance_records.student_id").
		Joins("JOIN users ON users.id = students.user_id").
		Where("attendance_records.date BETWEEN ? AND ?", fromDate, toDate).
		Order("attendance_records.date DESC, students.roll_no").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch attendance report"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// feeResponse is a payment joined with the paying student's identity.
type feeResponse struct {
	model.FeePayment
	Name   string `json:"name"`
	RollNo string `json:"roll_no"`
}

// ListFees handles GET /api/teacher/fees.
func (h *Handler) ListFees(c *gin.Context) {
	var fees []feeResponse
	err := h.store.DB().WithContext(c.Request.Context()).
		Model(&model.FeePayment{}).
		Select("fee_payments.*, users.name, students.roll_no").
		Joins("JOIN users ON users.id = fee_payments.user_id").
		Joins("JOIN students ON students.user_id = users.id").
		Order("fee_payments.payment_date DESC").
		Scan(&fees).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fees"})
		return
	}
	c.JSON(http.StatusOK, fees)
}

type verifyFeeRequest struct {
	ReceiptID int64  `json:"receipt_id" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=verified rejected"`
}

// VerifyFee handles POST /api/teacher/verify-fee.
func (h *Handler) VerifyFee(c *gin.Context) {
	var req verifyFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var payment model.FeePayment
	err := db.First(&payment, req.ReceiptID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fee payment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify fee payment"})
		return
	}

	if err := db.Model(&payment).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify fee payment"})
		return
	}

	h.notify(c, payment.UserID, "Fee payment "+req.Status,
		"Your hostel fee payment has been "+req.Status+".")

	c.JSON(http.StatusOK, gin.H{"message": "Fee payment verified successfully"})
}

// ListRooms handles GET /api/teacher/rooms.
func ListRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rooms []model.Room
		if err := db.Order("block, room_number").Find(&rooms).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Error fetching rooms"})
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

type updateRoomRequest struct {
	RoomID   int64 `json:"room_id" binding:"required"`
	Capacity int   `json:"capacity" binding:"required,min=1"`
}

// UpdateRoomCapacity handles PUT /api/teacher/rooms/capacity. The available
// slot count is recomputed from live allocations rather than set directly,
// so the counter cannot be pushed out of sync with the ledger.
func (h *Handler) UpdateRoomCapacity(c *gin.Context) {
	var req updateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.SetRoomCapacity(c.Request.Context(), req.RoomID, req.Capacity); err != nil {
		respondStoreErr(c, err)
		return
	}
	h.invalidateRoomCache()

	c.JSON(http.StatusOK, gin.H{"message": "Room updated successfully"})
}

// complaintResponse is a complaint joined with the filing student's identity.
type complaintResponse struct {
	model.Complaint
	StudentName string `json:"student_name"`
	RollNo      string `json:"roll_no"`
}

// ListAllComplaints handles GET /api/teacher/complaints.
func (h *Handler) ListAllComplaints(c *gin.Context) {
	var complaints []complaintResponse
	err := h.store.DB().WithContext(c.Request.Context()).
		Model(&model.Complaint{}).
		Select("complaints.*, users.name AS student_name, students.roll_no").
		Joins("JOIN users ON users.id = complaints.user_id").
		Joins("JOIN students ON students.user_id = users.id").
		Order("complaints.created_at DESC").
		Scan(&complaints).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

type updateComplaintRequest struct {
	ComplaintID int64  `json:"complaint_id" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=open in_progress resolved"`
}

// UpdateComplaint handles PUT /api/teacher/complaints.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var req updateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var complaint model.Complaint
	err := db.First(&complaint, req.ComplaintID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint status"})
		return
	}

	if err := db.Model(&complaint).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update complaint status"})
		return
	}

	h.notify(c, complaint.UserID, "Complaint update",
		"Your complaint is now "+req.Status+".")

	c.JSON(http.StatusOK, gin.H{"message": "Complaint status updated successfully"})
}

// gatePassResponse is a gate pass joined with the requesting student's identity.
type gatePassResponse struct {
	model.GatePass
	StudentName string `json:"student_name"`
	RollNo      string `json:"roll_no"`
}

// ListAllGatePasses handles GET /api/teacher/gate-passes.
func (h *Handler) ListAllGatePasses(c *gin.Context) {
	var passes []gatePassResponse
	err := h.store.DB().WithContext(c.Request.Context()).
		Model(&model.GatePass{}).
		Select("gate_passes.*, users.name AS student_name, students.roll_no").
		Joins("JOIN users ON users.id = gate_passes.user_id").
		Joins("JOIN students ON students.user_id = users.id").
		Order("gate_passes.created_at DESC").
		Scan(&passes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gate passes"})
		return
	}
	c.JSON(http.StatusOK, passes)
}

type updateGatePassRequest struct {
	PassID int64  `json:"pass_id" binding:"required"`
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// UpdateGatePass handles PUT /api/teacher/gate-passes.
func (h *Handler) UpdateGatePass(c *gin.Context) {
	var req updateGatePassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var pass model.GatePass
	err := db.First(&pass, req.PassID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Gate pass not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gate pass status"})
		return
	}

	if err := db.Model(&pass).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gate pass status"})
		return
	}

	h.notify(c, pass.UserID, "Gate pass "+req.Status,
		"Your gate pass request has been "+req.Status+".")

	c.JSON(http.StatusOK, gin.H{"message": "Gate pass status updated successfully"})
}
