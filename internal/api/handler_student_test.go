package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-management-backend/internal/model"
)

func TestGetProfile(t *testing.T) {
	a := newTestAPI(t)
	studentToken := a.registerAndLogin(t, "student", "profile@example.com")

	w := a.do(t, "GET", "/api/student/profile", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "profile@example.com", profile["email"])
	assert.Equal(t, "CSE", profile["student_dept"])

	// Unauthenticated access is rejected.
	w = a.do(t, "GET", "/api/student/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStudentFees(t *testing.T) {
	a := newTestAPI(t)
	studentToken := a.registerAndLogin(t, "student", "payer@example.com")
	studentID := studentIDByEmail(t, a, "payer@example.com")

	var user model.User
	require.NoError(t, a.db.Where("email = ?", "payer@example.com").First(&user).Error)

	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assignment := model.FeeAssignment{
		StudentID: studentID,
		FeeType:   "hostel",
		Amount:    12000,
		DueDate:   due,
	}
	require.NoError(t, a.db.Create(&assignment).Error)
	require.NoError(t, a.db.Create(&model.FeePayment{
		AssignmentID:  assignment.AssignmentID,
		UserID:        user.ID,
		AmountPaid:    5000,
		PaymentDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		PaymentMethod: "upi",
		Status:        model.FeeVerified,
	}).Error)

	w := a.do(t, "GET", "/api/student/fees", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		TotalFee  float64          `json:"total_fee"`
		Paid      float64          `json:"paid"`
		Remaining float64          `json:"remaining"`
		History   []map[string]any `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(12000), resp.TotalFee)
	assert.Equal(t, float64(5000), resp.Paid)
	assert.Equal(t, float64(7000), resp.Remaining)
	assert.Len(t, resp.History, 1)
}

func TestVerifyFee(t *testing.T) {
	a := newTestAPI(t)
	teacherToken := a.registerAndLogin(t, "teacher", "bursar@example.com")
	a.registerAndLogin(t, "student", "payer@example.com")

	var user model.User
	require.NoError(t, a.db.Where("email = ?", "payer@example.com").First(&user).Error)

	payment := model.FeePayment{
		AssignmentID: 1,
		UserID:       user.ID,
		AmountPaid:   5000,
		PaymentDate:  time.Now().UTC(),
		Status:       model.FeePending,
	}
	require.NoError(t, a.db.Create(&payment).Error)

	w := a.do(t, "POST", "/api/teacher/verify-fee", teacherToken, map[string]any{
		"receipt_id": payment.ReceiptID,
		"status":     "verified",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated model.FeePayment
	require.NoError(t, a.db.First(&updated, payment.ReceiptID).Error)
	assert.Equal(t, model.FeeVerified, updated.Status)

	w = a.do(t, "POST", "/api/teacher/verify-fee", teacherToken, map[string]any{
		"receipt_id": int64(9999),
		"status":     "verified",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotificationsEndpoints(t *testing.T) {
	a := newTestAPI(t)
	studentToken := a.registerAndLogin(t, "student", "notified@example.com")

	var user model.User
	require.NoError(t, a.db.Where("email = ?", "notified@example.com").First(&user).Error)

	n := model.Notification{
		UserID:    user.ID,
		Title:     "Room allocated",
		Body:      "A hostel room has been allocated to you.",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, a.db.Create(&n).Error)

	w := a.do(t, "GET", "/api/student/notifications", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var notifications []model.Notification
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].Read)

	w = a.do(t, "POST", fmt.Sprintf("/api/student/notifications/%d/read", n.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Notification
	require.NoError(t, a.db.First(&updated, n.ID).Error)
	assert.True(t, updated.Read)

	w = a.do(t, "POST", "/api/student/notifications/9999/read", studentToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionEndpoints(t *testing.T) {
	a := newTestAPI(t)
	studentToken := a.registerAndLogin(t, "student", "pushy@example.com")

	w := a.do(t, "PUT", "/api/subscriptions", studentToken, map[string]any{
		"endpoint": "https://push.example.com/abc",
		"p256dh":   "key-material",
		"auth":     "auth-material",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, "GET", "/api/subscriptions", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"https://push.example.com/abc"}, resp.Endpoints)

	w = a.do(t, "DELETE", "/api/subscriptions", studentToken, map[string]any{
		"endpoint": "https://push.example.com/abc",
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	require.NoError(t, a.db.Model(&model.PushSubscription{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
