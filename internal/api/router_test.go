package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-management-backend/config"
	"hostel-management-backend/internal/auth"
	"hostel-management-backend/internal/db"
	"hostel-management-backend/internal/store"
)

// testAPI bundles everything a handler test needs.
type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
	issuer *auth.TokenIssuer
}

// newTestAPI builds the full router on an in-memory SQLite database.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := gormDB.DB()
		sqlDB.Close()
	})
	require.NoError(t, db.Migrate(gormDB))

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Server.CacheTTLSeconds = 1
	cfg.Auth.BcryptCost = 4

	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	router := NewRouter(cfg, store.NewGormStore(gormDB), issuer, nil, nil)

	return &testAPI{router: router, db: gormDB, issuer: issuer}
}

// do performs a JSON request with an optional bearer token.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin registers a user through the API and returns their token.
func (a *testAPI) registerAndLogin(t *testing.T, role, email string) string {
	t.Helper()

	payload := map[string]any{
		"name":     "Test " + role,
		"email":    email,
		"phone":    "5550001",
		"password": "secret123",
		"role":     role,
	}
	if role == "student" {
		payload["student_dept"] = "CSE"
		payload["roll_no"] = "CS-" + email
		payload["year"] = 2
		payload["section"] = "A"
	} else {
		payload["teacher_dept"] = "CSE"
		payload["teacher_id"] = "T-" + email
		payload["post"] = "Warden"
	}

	w := a.do(t, "POST", "/api/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, "POST", "/api/login", "", map[string]any{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
