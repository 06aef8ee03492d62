package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-management-backend/internal/db"
	"hostel-management-backend/internal/model"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// Send calls the mock SendFunc.
func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, newTestDB(t), &webpush.Options{})

	wp.Dispatch(123)

	select {
	case job := <-wp.jobs:
		assert.Equal(t, int64(123), job)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for job to be dispatched")
	}
}

func TestWorkerPool_PushesStoredNotification(t *testing.T) {
	gormDB := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	n := model.Notification{
		UserID:    7,
		Title:     "Gate pass approved",
		Body:      "Your gate pass request has been approved.",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, gormDB.Create(&n).Error)
	require.NoError(t, gormDB.Create(&model.PushSubscription{
		Endpoint:  "https://example.com/push",
		P256DH:    "test_p256dh",
		Auth:      "test_auth",
		UserID:    7,
		CreatedAt: time.Now().UTC(),
	}).Error)

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			defer wg.Done()
			assert.Equal(t, "https://example.com/push", sub.Endpoint)

			var body map[string]string
			assert.NoError(t, json.Unmarshal(payload, &body))
			assert.Equal(t, "Gate pass approved", body["title"])

			return &http.Response{
				StatusCode: http.StatusCreated,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	wp.Dispatch(n.ID)
	wg.Wait()
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	gormDB := newTestDB(t)
	wp := NewWorkerPool(1, gormDB, &webpush.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	n := model.Notification{
		UserID:    8,
		Title:     "Complaint update",
		Body:      "Your complaint is now resolved.",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, gormDB.Create(&n).Error)
	require.NoError(t, gormDB.Create(&model.PushSubscription{
		Endpoint:  "https://example.com/expired",
		P256DH:    "test_p256dh_expired",
		Auth:      "test_auth_expired",
		UserID:    8,
		CreatedAt: time.Now().UTC(),
	}).Error)

	var wg sync.WaitGroup
	wg.Add(1)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			defer wg.Done()
			return &http.Response{
				StatusCode: http.StatusGone,
				Body:       io.NopCloser(bytes.NewBufferString("")),
			}, nil
		},
	}

	wp.Dispatch(n.ID)
	wg.Wait()

	// The 410 response removes the subscription; poll briefly because the
	// delete happens after the sender returns.
	require.Eventually(t, func() bool {
		var count int64
		if err := gormDB.Model(&model.PushSubscription{}).Count(&count).Error; err != nil {
			return false
		}
		return count == 0
	}, 2*time.Second, 10*time.Millisecond)
}
