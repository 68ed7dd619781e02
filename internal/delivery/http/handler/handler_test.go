package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wastemanage/internal/config"
	domainAdmin "wastemanage/internal/domain/admin"
	domainPickup "wastemanage/internal/domain/pickup"
	domainUser "wastemanage/internal/domain/user"
	"wastemanage/internal/logger"
	"wastemanage/internal/middleware"
	usecaseAdmin "wastemanage/internal/usecase/admin"
	usecasePickup "wastemanage/internal/usecase/pickup"
	usecaseUser "wastemanage/internal/usecase/user"
	"wastemanage/pkg/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Logger = zap.NewNop()
	m.Run()
}

// In-memory repositories backing the wired test router.

type memUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func (r *memUserRepo) Create(_ context.Context, u *domainUser.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domainUser.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *memUserRepo) Update(_ context.Context, u *domainUser.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domainUser.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHashed string) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHashed = passwordHashed
	return nil
}

func (r *memUserRepo) SetResetToken(_ context.Context, id uuid.UUID, tokenHash string, expires time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.ResetTokenHash = &tokenHash
	u.ResetTokenExpires = &expires
	return nil
}

func (r *memUserRepo) GetByResetTokenHash(_ context.Context, tokenHash string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domainUser.ErrResetTokenInvalid
}

func (r *memUserRepo) ClearResetToken(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.ResetTokenHash = nil
	u.ResetTokenExpires = nil
	return nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type memAdminRepo struct {
	admins map[uuid.UUID]*domainAdmin.Admin
}

func (r *memAdminRepo) Create(_ context.Context, a *domainAdmin.Admin) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	clone := *a
	r.admins[a.ID] = &clone
	return nil
}

func (r *memAdminRepo) GetByID(_ context.Context, id uuid.UUID) (*domainAdmin.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domainAdmin.ErrAdminNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *memAdminRepo) GetByEmail(_ context.Context, email string) (*domainAdmin.Admin, error) {
	for _, a := range r.admins {
		if strings.EqualFold(a.Email, email) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domainAdmin.ErrAdminNotFound
}

func (r *memAdminRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHashed string) error {
	a, ok := r.admins[id]
	if !ok {
		return domainAdmin.ErrAdminNotFound
	}
	a.PasswordHashed = passwordHashed
	return nil
}

func (r *memAdminRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	a, ok := r.admins[id]
	if !ok {
		return domainAdmin.ErrAdminNotFound
	}
	a.IsActive = active
	return nil
}

type memPickupRepo struct {
	requests map[uuid.UUID]*domainPickup.PickupRequest
}

func (r *memPickupRepo) Create(_ context.Context, p *domainPickup.PickupRequest) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	clone := *p
	r.requests[p.ID] = &clone
	return nil
}

func (r *memPickupRepo) GetByID(_ context.Context, id uuid.UUID) (*domainPickup.PickupRequest, error) {
	p, ok := r.requests[id]
	if !ok {
		return nil, domainPickup.ErrRequestNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *memPickupRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*domainPickup.PickupRequest, error) {
	var result []*domainPickup.PickupRequest
	for _, p := range r.requests {
		if p.UserID == userID {
			clone := *p
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *memPickupRepo) List(_ context.Context, filter *domainPickup.Filter) ([]*domainPickup.PickupRequest, error) {
	var result []*domainPickup.PickupRequest
	for _, p := range r.requests {
		if filter != nil && filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		clone := *p
		result = append(result, &clone)
	}
	return result, nil
}

func (r *memPickupRepo) Update(_ context.Context, p *domainPickup.PickupRequest) error {
	if _, ok := r.requests[p.ID]; !ok {
		return domainPickup.ErrRequestNotFound
	}
	clone := *p
	r.requests[p.ID] = &clone
	return nil
}

func (r *memPickupRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domainPickup.Status, completedAt *time.Time) error {
	p, ok := r.requests[id]
	if !ok {
		return domainPickup.ErrRequestNotFound
	}
	p.Status = status
	if completedAt != nil {
		p.CompletedAt = completedAt
	}
	return nil
}

func (r *memPickupRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.requests[id]; !ok {
		return domainPickup.ErrRequestNotFound
	}
	delete(r.requests, id)
	return nil
}

func (r *memPickupRepo) GetStatistics(_ context.Context) (*domainPickup.Statistics, error) {
	stats := &domainPickup.Statistics{
		ByStatus:    make(map[string]int),
		ByWasteType: make(map[string]int),
	}
	for _, p := range r.requests {
		stats.TotalRequests++
		stats.ByStatus[string(p.Status)]++
		for _, wt := range p.WasteTypes {
			stats.ByWasteType[string(wt)]++
		}
	}
	return stats, nil
}

type noopMailer struct{}

func (noopMailer) SendPasswordResetEmail(_, _, _ string) error   { return nil }
func (noopMailer) SendPasswordResetConfirmation(_, _ string) error { return nil }

type testEnv struct {
	router    *gin.Engine
	cfg       *config.Config
	userRepo  *memUserRepo
	adminRepo *memAdminRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 168,
		},
		Frontend: config.FrontendConfig{BaseURL: "http://localhost:3000"},
	}

	userRepo := &memUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
	adminRepo := &memAdminRepo{admins: make(map[uuid.UUID]*domainAdmin.Admin)}
	pickupRepo := &memPickupRepo{requests: make(map[uuid.UUID]*domainPickup.PickupRequest)}

	userHandler := NewUserHandler(usecaseUser.NewService(userRepo, noopMailer{}, cfg))
	adminHandler := NewAdminHandler(usecaseAdmin.NewService(adminRepo, cfg))
	pickupHandler := NewPickupHandler(usecasePickup.NewService(pickupRepo))

	auth := middleware.AuthMiddleware(cfg, userRepo, adminRepo)

	router := gin.New()
	api := router.Group("/api")

	users := api.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/profile", auth, middleware.UserOnly(), userHandler.GetProfile)
	users.GET("/count", auth, middleware.AdminOnly(), userHandler.Count)

	admins := api.Group("/admin")
	admins.POST("/login", adminHandler.Login)

	pickups := api.Group("/pickup-requests")
	pickups.Use(auth)
	pickups.POST("", middleware.UserOnly(), pickupHandler.Create)
	pickups.GET("/my-requests", middleware.UserOnly(), pickupHandler.ListMine)
	pickups.GET("", middleware.AdminOnly(), pickupHandler.ListAll)
	pickups.GET("/statistics", middleware.AdminOnly(), pickupHandler.Statistics)
	pickups.GET("/routes", middleware.AdminOnly(), pickupHandler.Routes)
	pickups.GET("/:id", middleware.AdminOnly(), pickupHandler.Get)
	pickups.PATCH("/:id/status", middleware.AdminOnly(), pickupHandler.UpdateStatus)
	pickups.DELETE("/:id", middleware.AdminOnly(), pickupHandler.Delete)

	return &testEnv{
		router:    router,
		cfg:       cfg,
		userRepo:  userRepo,
		adminRepo: adminRepo,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (e *testEnv) registerUser(t *testing.T) (uuid.UUID, string) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/users/register", "", gin.H{
		"first_name":   "Jamie",
		"last_name":    "Rivera",
		"email":        "jamie@example.com",
		"password":     "secret1",
		"phone_number": "+1 555 0100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "jamie@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	token := data["token"].(string)
	id, err := uuid.Parse(data["user"].(map[string]interface{})["id"].(string))
	require.NoError(t, err)
	return id, token
}

func (e *testEnv) seedAdmin(t *testing.T, active bool) (uuid.UUID, string) {
	t.Helper()

	hashed, err := utils.HashPassword("adminpass")
	require.NoError(t, err)

	admin := &domainAdmin.Admin{
		ID:             uuid.New(),
		Name:           "Ops Admin",
		Email:          "ops@example.com",
		PasswordHashed: hashed,
		Role:           domainAdmin.RoleAdmin,
		IsActive:       active,
	}
	require.NoError(t, e.adminRepo.Create(context.Background(), admin))

	token, err := utils.GenerateToken(admin.ID, admin.Email, admin.Role, e.cfg.JWT.Secret, 168)
	require.NoError(t, err)
	return admin.ID, token
}

func pickupPayload() gin.H {
	return gin.H{
		"address":             "12 Riverside Drive, Springfield",
		"waste_type":          []string{"paper", "plastics"},
		"estimated_weight":    12.5,
		"preferred_date":      "2026-09-15T00:00:00Z",
		"preferred_time_slot": "morning",
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/users/register", "", gin.H{
		"first_name":   "Jamie",
		"last_name":    "Rivera",
		"email":        "jamie@example.com",
		"password":     "secret1",
		"phone_number": "+1 555 0100",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, w.Body.String(), "secret1")
	assert.NotContains(t, w.Body.String(), "password")

	w = env.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "jamie@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	w = env.do(t, http.MethodPost, "/api/users/login", "", gin.H{
		"email":    "jamie@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid email or password", body["error"])
}

func TestRegisterDuplicateEmailReturns400(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t)

	w := env.do(t, http.MethodPost, "/api/users/register", "", gin.H{
		"first_name":   "Other",
		"last_name":    "Person",
		"email":        "Jamie@Example.com",
		"password":     "secret2",
		"phone_number": "+1 555 0101",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "already exists")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/pickup-requests", "garbage-token", pickupPayload())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestExpiredTokenDistinctMessage(t *testing.T) {
	env := newTestEnv(t)
	userID, _ := env.registerUser(t)

	expired, err := utils.GenerateToken(userID, "jamie@example.com", "user", env.cfg.JWT.Secret, -1)
	require.NoError(t, err)

	w := env.do(t, http.MethodGet, "/api/users/profile", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Token expired", body["error"])
}

func TestTokenForDeletedUserReturns404(t *testing.T) {
	env := newTestEnv(t)
	userID, token := env.registerUser(t)

	delete(env.userRepo.users, userID)

	w := env.do(t, http.MethodGet, "/api/users/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeactivatedAdminTokenReturns403(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedAdmin(t, false)

	w := env.do(t, http.MethodGet, "/api/pickup-requests", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserCannotReachAdminRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.registerUser(t)

	for _, path := range []string{"/api/pickup-requests", "/api/pickup-requests/statistics", "/api/users/count"} {
		w := env.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusForbidden, w.Code, path)
	}
}

func TestAdminCannotUseUserOnlyRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedAdmin(t, true)

	w := env.do(t, http.MethodPost, "/api/pickup-requests", adminToken, pickupPayload())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPickupLifecycleOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.registerUser(t)
	_, adminToken := env.seedAdmin(t, true)

	w := env.do(t, http.MethodPost, "/api/pickup-requests", userToken, pickupPayload())
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "pending", created["status"])
	requestID := created["id"].(string)

	// Owner sees it in their own listing.
	w = env.do(t, http.MethodGet, "/api/pickup-requests/my-requests", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), list["count"])

	// Skipping straight to completed is rejected.
	w = env.do(t, http.MethodPatch, "/api/pickup-requests/"+requestID+"/status", adminToken, gin.H{"status": "completed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, status := range []string{"scheduled", "in-progress"} {
		w = env.do(t, http.MethodPatch, "/api/pickup-requests/"+requestID+"/status", adminToken, gin.H{"status": status})
		require.Equal(t, http.StatusOK, w.Code, status)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, status, data["status"])
		assert.Nil(t, data["completed_at"])
	}

	w = env.do(t, http.MethodPatch, "/api/pickup-requests/"+requestID+"/status", adminToken, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.NotNil(t, data["completed_at"])
}

func TestPickupCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.registerUser(t)

	payload := pickupPayload()
	payload["waste_type"] = []string{"glass"}
	w := env.do(t, http.MethodPost, "/api/pickup-requests", userToken, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload = pickupPayload()
	delete(payload, "address")
	w = env.do(t, http.MethodPost, "/api/pickup-requests", userToken, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPickupRequestIDHandling(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.seedAdmin(t, true)

	w := env.do(t, http.MethodGet, "/api/pickup-requests/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Invalid request ID", body["error"])

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/pickup-requests/%s", uuid.New()), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/pickup-requests/%s", uuid.New()), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminLoginOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, true)

	w := env.do(t, http.MethodPost, "/api/admin/login", "", gin.H{
		"email":    "ops@example.com",
		"password": "adminpass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	w = env.do(t, http.MethodPost, "/api/admin/login", "", gin.H{
		"email":    "ops@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserCountEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t)
	_, adminToken := env.seedAdmin(t, true)

	w := env.do(t, http.MethodGet, "/api/users/count", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["count"])
}
