package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"scholarship-portal/internal/auth"
	"scholarship-portal/internal/config"
	"scholarship-portal/internal/domain/notification"
	"scholarship-portal/internal/infrastructure/database/postgres"
	"scholarship-portal/internal/infrastructure/otpstore"
	"scholarship-portal/internal/usecase/ledger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const testSecret = "test-secret"

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

type outbox struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (o *outbox) Send(_ context.Context, msg notification.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
	return nil
}

func (o *outbox) lastCode(t *testing.T) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.messages)
	code := codePattern.FindString(o.messages[len(o.messages)-1].HTML)
	require.NotEmpty(t, code)
	return code
}

type memoryBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryBlobs) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryBlobs) URL(_ context.Context, key string) (string, error) {
	return "https://blobs.test/" + key, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	outbox *outbox
	blobs  *memoryBlobs
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := postgres.Open(sqlite.Open(filepath.Join(t.TempDir(), "portal.db")), "test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrateModels())

	issuer, err := auth.NewIssuer(testSecret)
	require.NoError(t, err)

	cfg := &config.Config{
		Server:  config.ServerConfig{Environment: "test"},
		Storage: config.StorageConfig{MaxImageBytes: 1 << 20},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}

	srv := &testServer{
		outbox: &outbox{},
		blobs:  &memoryBlobs{objects: make(map[string][]byte)},
	}
	srv.router = SetupRoutes(cfg, db, Dependencies{
		Issuer:   issuer,
		Ledger:   ledger.New(otpstore.NewMemoryStore(), ledger.DefaultTTL),
		Notifier: srv.outbox,
		Blobs:    srv.blobs,
	})
	return srv
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.serve(t, req)
}

func (s *testServer) upload(t *testing.T, path, token, field string, data []byte) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "picture.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return s.serve(t, req)
}

func (s *testServer) serve(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) login(t *testing.T, email, password string, rememberMe bool) (int, string, int64) {
	t.Helper()
	status, env := s.do(t, http.MethodPost, "/auth/login", "", map[string]any{
		"email": email, "password": password, "rememberMe": rememberMe,
	})
	if status != http.StatusOK {
		return status, "", 0
	}
	var data struct {
		Token     string `json:"token"`
		ExpiresAt int64  `json:"expiresAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return status, data.Token, data.ExpiresAt
}

func (s *testServer) register(t *testing.T, email, password string) {
	t.Helper()
	status, env := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": email, "password": password, "confirmPassword": password,
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
}

func decode(t *testing.T, data json.RawMessage, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestPasswordResetEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	status, env := srv.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "U@x.com", "password": "Aa1!aaaa", "confirmPassword": "Aa1!aaaa",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.True(t, env.Success)
	assert.NotContains(t, string(env.Data), "password")
	assert.Contains(t, string(env.Data), `"email":"u@x.com"`)

	status, env = srv.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "u@x.com", "password": "Bb2@bbbb", "confirmPassword": "Bb2@bbbb",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "email already registered", env.Message)

	before := time.Now()
	status, token, expiresAt := srv.login(t, "u@x.com", "Aa1!aaaa", false)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, before.Add(24*time.Hour).UnixMilli(), expiresAt, float64(5*time.Second/time.Millisecond))

	claims := &auth.Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", claims.Email)
	assert.Equal(t, expiresAt, claims.ExpiresAt.UnixMilli())

	status, env = srv.do(t, http.MethodPost, "/auth/reset-password", "", map[string]string{
		"email": "u@x.com", "password": "Newpass1!", "confirmPassword": "Newpass1!",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "not been verified")

	status, env = srv.do(t, http.MethodPost, "/auth/send-otp", "", map[string]string{"email": "u@x.com"})
	require.Equal(t, http.StatusOK, status, env.Message)
	code := srv.outbox.lastCode(t)
	assert.Contains(t, srv.outbox.messages[0].HTML, "5 minutes")

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	status, env = srv.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]string{"email": "u@x.com", "otp": wrong})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid OTP", env.Message)

	status, env = srv.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]string{"email": "u@x.com", "otp": code})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = srv.do(t, http.MethodPost, "/auth/reset-password", "", map[string]string{
		"email": "u@x.com", "password": "newpass1!", "confirmPassword": "newpass1!",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "uppercase")

	status, env = srv.do(t, http.MethodPost, "/auth/reset-password", "", map[string]string{
		"email": "u@x.com", "password": "Newpass1!", "confirmPassword": "Newpass1!",
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, _, _ = srv.login(t, "u@x.com", "Aa1!aaaa", false)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, expiresAt = srv.login(t, "u@x.com", "Newpass1!", true)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, time.Now().Add(30*24*time.Hour).UnixMilli(), expiresAt, float64(5*time.Second/time.Millisecond))

	status, env = srv.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]string{"email": "u@x.com", "otp": code})
	assert.Equal(t, http.StatusBadRequest, status, "consumed codes cannot be reused")
	assert.Contains(t, env.Message, "no OTP found")
}

func TestAuthValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	status, env := srv.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "Aa1aaaaa", "confirmPassword": "Aa1aaaaa",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "special character")

	status, env = srv.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email": "a@x.com", "password": "Aa1!aaaa", "confirmPassword": "Aa1!aaab",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Passwords do not match", env.Message)

	status, env = srv.do(t, http.MethodPost, "/auth/register", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "email must be a valid email address")

	status, env = srv.do(t, http.MethodPost, "/auth/send-otp", "", map[string]string{"email": "ghost@x.com"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "user not found", env.Message)

	status, _ = srv.do(t, http.MethodPost, "/auth/verify-otp", "", map[string]string{"email": "ghost@x.com", "otp": "123456"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = srv.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "ghost@x.com", "password": "Aa1!aaaa"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid email or password", env.Message)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{not json"))
	status, env = srv.serve(t, req)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid request body", env.Message)
}

func TestSessionGuard(t *testing.T) {
	srv := newTestServer(t)

	status, _ := srv.do(t, http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = srv.do(t, http.MethodGet, "/profile", "forged.token.value", nil)
	assert.Equal(t, http.StatusForbidden, status)

	srv.register(t, "s@x.com", "Aa1!aaaa")
	_, token, _ := srv.login(t, "s@x.com", "Aa1!aaaa", false)

	status, env := srv.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Contains(t, string(env.Data), `"email":"s@x.com"`)
}

func TestOnboardingProfileAndScholarships(t *testing.T) {
	srv := newTestServer(t)

	srv.register(t, "grants@acme.org", "Aa1!aaaa")
	_, sponsorToken, _ := srv.login(t, "grants@acme.org", "Aa1!aaaa", false)
	srv.register(t, "ana@x.com", "Aa1!aaaa")
	_, studentToken, _ := srv.login(t, "ana@x.com", "Aa1!aaaa", false)

	status, env := srv.do(t, http.MethodPost, "/onboarding/select-role", sponsorToken, map[string]string{"role": "admin"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = srv.do(t, http.MethodPost, "/onboarding/select-role", sponsorToken, map[string]string{"role": "sponsor"})
	require.Equal(t, http.StatusOK, status, env.Message)
	status, env = srv.do(t, http.MethodPost, "/onboarding/select-role", sponsorToken, map[string]string{"role": "student"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "You have already selected your role as sponsor.", env.Message)

	status, env = srv.do(t, http.MethodPost, "/scholarship/create", sponsorToken, map[string]any{
		"title": "STEM Grant", "total_amount": 1000, "total_slot": 2,
		"criteria": []string{"GPA 3.0"}, "required_documents": []string{"Transcript"},
	})
	assert.Equal(t, http.StatusNotFound, status, "sponsor profile must exist first")

	status, env = srv.do(t, http.MethodPost, "/onboarding/profile-setup", sponsorToken, map[string]string{
		"organization_name": "Acme Foundation", "organization_type": "NGO",
		"official_email": "grants@acme.org", "contact_number": "+63281234567",
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = srv.do(t, http.MethodPost, "/onboarding/profile-status", sponsorToken, nil)
	require.Equal(t, http.StatusOK, status)
	var onboardingStatus struct {
		Role             string `json:"role"`
		ProfileCompleted bool   `json:"profile_completed"`
	}
	decode(t, env.Data, &onboardingStatus)
	assert.Equal(t, "sponsor", onboardingStatus.Role)
	assert.True(t, onboardingStatus.ProfileCompleted)

	status, env = srv.do(t, http.MethodPost, "/scholarship/create", sponsorToken, map[string]any{
		"title": "STEM Grant", "total_amount": 1000, "total_slot": 2,
		"application_deadline": "2026-12-31",
		"criteria":             []string{"GPA 3.0"}, "required_documents": []string{"Transcript"},
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var created struct {
		ID     string `json:"scholarship_id"`
		Status string `json:"status"`
	}
	decode(t, env.Data, &created)
	assert.Equal(t, "active", created.Status)

	status, env = srv.do(t, http.MethodPost, "/onboarding/select-role", studentToken, map[string]string{"role": "student"})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = srv.do(t, http.MethodPost, "/scholarship/create", studentToken, map[string]any{"title": "Nope"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, env.Message, "Only sponsors can")

	status, _ = srv.do(t, http.MethodPut, "/scholarship/"+created.ID, studentToken, map[string]any{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, status)

	status, env = srv.do(t, http.MethodPut, "/scholarship/"+created.ID, sponsorToken, map[string]any{"total_slot": 5})
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Contains(t, string(env.Data), `"total_slot":5`)

	status, env = srv.upload(t, "/scholarship/"+created.ID+"/image", sponsorToken, "image", pngBytes(t))
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Contains(t, string(env.Data), "scholarships/scholarship-"+created.ID)

	status, env = srv.upload(t, "/scholarship/"+created.ID+"/image", sponsorToken, "image", []byte("not an image at all"))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "only image files are allowed", env.Message)

	status, env = srv.do(t, http.MethodGet, "/scholarship/", "", nil)
	require.Equal(t, http.StatusOK, status)
	var listing struct {
		Scholarships []struct {
			Title    string  `json:"title"`
			ImageURL *string `json:"image_url"`
			Sponsor  struct {
				OrganizationName string `json:"organization_name"`
			} `json:"sponsor"`
		} `json:"scholarships"`
		Total int64 `json:"total"`
	}
	decode(t, env.Data, &listing)
	require.Len(t, listing.Scholarships, 1)
	assert.Equal(t, int64(1), listing.Total)
	assert.Equal(t, "Acme Foundation", listing.Scholarships[0].Sponsor.OrganizationName)
	require.NotNil(t, listing.Scholarships[0].ImageURL)

	status, _ = srv.do(t, http.MethodGet, "/scholarship/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = srv.do(t, http.MethodGet, "/scholarship/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = srv.do(t, http.MethodGet, "/scholarship/my-scholarships", sponsorToken, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Contains(t, string(env.Data), created.ID)

	status, env = srv.do(t, http.MethodPost, "/onboarding/profile-setup", studentToken, map[string]string{
		"full_name": "Ana Cruz", "gender": "female", "date_of_birth": "2004-03-15", "contact_number": "09171234567",
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = srv.upload(t, "/profile/picture", studentToken, "profilePicture", pngBytes(t))
	require.Equal(t, http.StatusOK, status, env.Message)

	status, env = srv.do(t, http.MethodGet, "/profile", studentToken, nil)
	require.Equal(t, http.StatusOK, status)
	var profileResp struct {
		ProfileURL *string `json:"profile_url"`
		Student    struct {
			FullName string `json:"full_name"`
		} `json:"student"`
	}
	decode(t, env.Data, &profileResp)
	assert.Equal(t, "Ana Cruz", profileResp.Student.FullName)
	require.NotNil(t, profileResp.ProfileURL)

	status, env = srv.do(t, http.MethodDelete, "/profile/picture", studentToken, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	status, _ = srv.do(t, http.MethodDelete, "/profile/picture", studentToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Len(t, srv.blobs.objects, 1, "only the scholarship image remains")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
