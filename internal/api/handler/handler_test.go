package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tictac1213/JobNotification/internal/dto"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/internal/service"
	"github.com/tictac1213/JobNotification/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock AuthService ──

type mockAuthService struct {
	signupResult  *dto.SignupResponse
	signupErr     error
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	meResult      *dto.UserResponse
	meErr         error
	updateResult  *dto.UserResponse
	updateErr     error
	prefsResult   *dto.UserResponse
	prefsErr      error
}

func (m *mockAuthService) Signup(_ context.Context, _ *dto.SignupRequest) (*dto.SignupResponse, error) {
	return m.signupResult, m.signupErr
}
func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Refresh(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetMe(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}
func (m *mockAuthService) UpdateProfile(_ context.Context, _ string, _ *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockAuthService) UpdateEmailPreferences(_ context.Context, _ string, _ *dto.UpdateEmailPreferencesRequest) (*dto.UserResponse, error) {
	return m.prefsResult, m.prefsErr
}

// ── Helpers ──

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// ── Tests ──

func TestSignupHandlerValidation(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)

	// Missing required fields.
	w := performJSON(r, http.MethodPost, "/api/auth/signup", gin.H{"name": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid body status = %d, want 400", w.Code)
	}

	// Branch outside the allowed set.
	w = performJSON(r, http.MethodPost, "/api/auth/signup", gin.H{
		"name":       "Asha Verma",
		"email":      "asha@test.edu",
		"password":   "secret123",
		"course_id":  "7f6c0a2e-0000-4000-8000-000000000001",
		"branch":     "ZZZ",
		"year":       3,
		"cgpa":       8.0,
		"scholar_no": "2112345",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad branch status = %d, want 400", w.Code)
	}
}

func TestSignupHandlerSuccess(t *testing.T) {
	svc := &mockAuthService{
		signupResult: &dto.SignupResponse{ID: "u1", Status: model.UserStatusPending},
	}
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)

	w := performJSON(r, http.MethodPost, "/api/auth/signup", gin.H{
		"name":       "Asha Verma",
		"email":      "asha@test.edu",
		"password":   "secret123",
		"course_id":  "7f6c0a2e-0000-4000-8000-000000000001",
		"branch":     "CSE",
		"year":       3,
		"cgpa":       8.0,
		"scholar_no": "2112345",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", w.Code, w.Body.String())
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != 0 {
		t.Errorf("envelope code = %d, want 0", resp.Code)
	}
}

func TestSignupHandlerConflict(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{signupErr: service.ErrEmailExists})
	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)

	w := performJSON(r, http.MethodPost, "/api/auth/signup", gin.H{
		"name":       "Asha Verma",
		"email":      "asha@test.edu",
		"password":   "secret123",
		"course_id":  "7f6c0a2e-0000-4000-8000-000000000001",
		"branch":     "CSE",
		"year":       3,
		"cgpa":       8.0,
		"scholar_no": "2112345",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate email status = %d, want 409", w.Code)
	}
}

func TestLoginHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"pending account", service.ErrAccountNotApproved, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthService{loginErr: tt.err})
			r := gin.New()
			r.POST("/api/auth/login", h.Login)

			w := performJSON(r, http.MethodPost, "/api/auth/login", gin.H{
				"email":    "asha@test.edu",
				"password": "secret123",
			})
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetMeRequiresAuthContext(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	// No auth middleware injecting user_id.
	r.GET("/api/users/me", h.GetMe)

	w := performJSON(r, http.MethodGet, "/api/users/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestGetMeReturnsProfile(t *testing.T) {
	svc := &mockAuthService{
		meResult: &dto.UserResponse{ID: "u1", Email: "asha@test.edu"},
	}
	h := NewAuthHandler(svc)
	r := gin.New()
	r.GET("/api/users/me", func(c *gin.Context) {
		c.Set("user_id", "u1")
		c.Set("role", model.RoleStudent)
	}, h.GetMe)

	w := performJSON(r, http.MethodGet, "/api/users/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	resp := decodeEnvelope(t, w)
	if resp.Code != 0 || resp.Data == nil {
		t.Errorf("envelope = %+v, want code 0 with data", resp)
	}
}
