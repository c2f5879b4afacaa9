package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"campus-shop/internal/dto/request"
	"campus-shop/internal/dto/response"
	"campus-shop/internal/usecase"
	"campus-shop/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuthService returns canned results and records the last request.
type stubAuthService struct {
	registerResp *response.UserResponse
	registerErr  error
	loginResp    *response.TokenResponse
	loginErr     error
	meResp       *response.UserResponse
	meErr        error
	lastRegister *request.RegisterRequest
}

func (s *stubAuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	s.lastRegister = req
	return s.registerResp, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	return s.meResp, s.meErr
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	return s.meResp, s.meErr
}

func TestRegisterHandler(t *testing.T) {
	stub := &stubAuthService{
		registerResp: &response.UserResponse{ID: uuid.NewString(), Email: "jane@example.edu", Name: "Jane Doe"},
	}
	handler := NewAuthHandler(stub, zap.NewNop())

	body := `{"email":"jane@example.edu","name":"Jane Doe","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, stub.lastRegister)
	assert.Equal(t, "jane@example.edu", stub.lastRegister.Email)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
}

func TestRegisterHandlerBadBody(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()
	handler.Register(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	stub := &stubAuthService{loginErr: usecase.ErrUnauthorized}
	handler := NewAuthHandler(stub, zap.NewNop())

	body := `{"email":"jane@example.edu","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.Login(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestMeHandlerRequiresAuthContext(t *testing.T) {
	stub := &stubAuthService{
		meResp: &response.UserResponse{ID: uuid.NewString(), Email: "jane@example.edu"},
	}
	handler := NewAuthHandler(stub, zap.NewNop())

	// No user in context
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	recorder := httptest.NewRecorder()
	handler.Me(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), utils.RoleCustomer))
	recorder = httptest.NewRecorder()
	handler.Me(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestUpdateMeHandler(t *testing.T) {
	stub := &stubAuthService{
		meResp: &response.UserResponse{ID: uuid.NewString(), Email: "jane@example.edu", Name: "New Name"},
	}
	handler := NewAuthHandler(stub, zap.NewNop())

	// No user in context
	req := httptest.NewRequest(http.MethodPut, "/api/auth/me", strings.NewReader(`{"name":"New Name"}`))
	recorder := httptest.NewRecorder()
	handler.UpdateMe(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// Authenticated
	req = httptest.NewRequest(http.MethodPut, "/api/auth/me", strings.NewReader(`{"name":"New Name"}`))
	req = req.WithContext(utils.SetUserContext(req.Context(), uuid.New(), utils.RoleCustomer))
	recorder = httptest.NewRecorder()
	handler.UpdateMe(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
