package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hostel-management-backend/internal/auth"
	"hostel-management-backend/internal/model"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`

	// Student fields
	StudentDept string `json:"student_dept"`
	RollNo      string `json:"roll_no"`
	Year        int    `json:"year"`
	Section     string `json:"section"`

	// Teacher fields
	TeacherDept string `json:"teacher_dept"`
	TeacherID   string `json:"teacher_id"`
	Post        string `json:"post"`
}

// Register handles POST /api/register. The user row and the role-specific
// detail row are written in one transaction.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Try again!"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered", "field": "email"})
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Try again!"})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user := model.User{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: hash,
			Role:         req.Role,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch req.Role {
		case model.RoleStudent:
			return tx.Create(&model.Student{
				UserID:     user.ID,
				Department: req.StudentDept,
				RollNo:     req.RollNo,
				Year:       req.Year,
				Section:    req.Section,
			}).Error
		case model.RoleTeacher:
			return tx.Create(&model.Teacher{
				UserID:     user.ID,
				Department: req.TeacherDept,
				StaffID:    req.TeacherID,
				Post:       req.Post,
			}).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Try again!"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful!"})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/login and returns a signed token plus a
// role-specific profile.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := h.store.DB().WithContext(c.Request.Context())

	var user model.User
	err := db.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found!"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Try again!"})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials!"})
		return
	}

	token, err := h.issuer.Issue(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Try again!"})
		return
	}

	details := gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}

	switch user.Role {
	case model.RoleStudent:
		var student model.Student
		if err := db.Where("user_id = ?", user.ID).First(&student).Error; err == nil {
			details["student_dept"] = student.Department
			details["roll_no"] = student.RollNo
			details["year"] = student.Year
			details["section"] = student.Section
		}
	case model.RoleTeacher:
		var teacher model.Teacher
		if err := db.Where("user_id = ?", user.ID).First(&teacher).Error; err == nil {
			details["teacher_dept"] = teacher.Department
			details["teacher_id"] = teacher.StaffID
			details["post"] = teacher.Post
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "token": token, "user": details})
}

// CheckEmail handles GET /api/check-email/:email.
func (h *Handler) CheckEmail(c *gin.Context) {
	var count int64
	err := h.store.DB().WithContext(c.Request.Context()).
		Model(&model.User{}).
		Where("email = ?", c.Param("email")).
		Count(&count).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check email"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": count > 0})
}
