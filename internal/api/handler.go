package api

import (
	"log"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"hostel-management-backend/internal/auth"
	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/store"
)

// Dispatcher queues a stored notification for push delivery. Satisfied by
// notification.WorkerPool; nil when push is disabled.
type Dispatcher interface {
	Dispatch(notificationID int64)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store      store.Store
	issuer     *auth.TokenIssuer
	bcryptCost int
	webpush    *webpush.Options
	dispatcher Dispatcher
	cache      *cache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, issuer *auth.TokenIssuer, bcryptCost int, webpushOptions *webpush.Options, d Dispatcher, cacheStore *cache.Cache) *Handler {
	return &Handler{
		store:      s,
		issuer:     issuer,
		bcryptCost: bcryptCost,
		webpush:    webpushOptions,
		dispatcher: d,
		cache:      cacheStore,
	}
}

// invalidateRoomCache drops cached room listings after a slot count changed.
func (h *Handler) invalidateRoomCache() {
	if h.cache != nil {
		h.cache.Flush()
	}
}

// notify stores an in-app notification for the user and hands it to the push
// worker pool. Delivery failures never fail the request that triggered them.
func (h *Handler) notify(c *gin.Context, userID int64, title, body string) {
	n := model.Notification{
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.DB().WithContext(c.Request.Context()).Create(&n).Error; err != nil {
		log.Printf("Failed to store notification for user %d: %v", userID, err)
		return
	}
	if h.dispatcher != nil {
		h.dispatcher.Dispatch(n.ID)
	}
}
