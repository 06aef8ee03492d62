package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hostel-management-backend/config"
	"hostel-management-backend/internal/auth"
	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/mw"
	"hostel-management-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, issuer *auth.TokenIssuer, webpushOptions *webpush.Options, dispatcher Dispatcher) *gin.Engine {
	r := gin.Default()

	db := s.DB()

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	handler := NewHandler(s, issuer, cfg.Auth.BcryptCost, webpushOptions, dispatcher, cacheStore)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	authed := mw.RequireAuth(issuer)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Public
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)
		api.GET("/check-email/:email", handler.CheckEmail)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		// Any authenticated user
		rooms := api.Group("/rooms", authed)
		{
			rooms.GET("/available", caching, GetAvailableRooms(db))
			rooms.GET("/:room_id", GetRoom(db))
			rooms.POST("/allocate", mw.RequireRole(model.RoleTeacher), handler.Allocate)
			rooms.POST("/deallocate", mw.RequireRole(model.RoleTeacher), handler.Deallocate)
		}

		subscriptions := api.Group("/subscriptions", authed)
		{
			subscriptions.GET("", handler.GetSubscriptions)
			subscriptions.PUT("", handler.PutSubscription)
			subscriptions.DELETE("", handler.DeleteSubscription)
		}

		student := api.Group("/student", authed, mw.RequireRole(model.RoleStudent))
		{
			student.GET("/profile", handler.GetProfile)
			student.GET("/rooms", caching, GetAvailableRooms(db))
			student.POST("/select-room", handler.SelectRoom)
			student.GET("/allocated-room", handler.GetAllocatedRoom)
			student.GET("/fees", handler.GetFees)
			student.POST("/gate-pass", handler.CreateGatePass)
			student.GET("/gate-passes", handler.ListGatePasses)
			student.POST("/complaints", handler.CreateComplaint)
			student.GET("/complaints", handler.ListComplaints)
			student.GET("/attendance", handler.GetMyAttendance)
			student.GET("/notifications", handler.ListNotifications)
			student.POST("/notifications/:id/read", handler.MarkNotificationRead)
		}

		teacher := api.Group("/teacher", authed, mw.RequireRole(model.RoleTeacher))
		{
			teacher.GET("/students", handler.ListStudents)
			teacher.GET("/students/:id", handler.GetStudent)
			teacher.GET("/rooms", ListRooms(db))
			teacher.PUT("/rooms/capacity", handler.UpdateRoomCapacity)
			teacher.POST("/attendance", handler.MarkAttendance)
			teacher.GET("/attendance-report", handler.GetAttendanceReport)
			teacher.GET("/fees", handler.ListFees)
			teacher.POST("/verify-fee", handler.VerifyFee)
			teacher.GET("/complaints", handler.ListAllComplaints)
			teacher.PUT("/complaints", handler.UpdateComplaint)
			teacher.GET("/gate-passes", handler.ListAllGatePasses)
			teacher.PUT("/gate-passes", handler.UpdateGatePass)
		}
	}

	return r
}
