package handler

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/pinboard-dev/pinboard/internal/config"
	"github.com/pinboard-dev/pinboard/internal/domain"
	"github.com/pinboard-dev/pinboard/internal/utils"
)

type MockAuthService struct {
	RegisterFunc         func(reg domain.Registration) error
	ActivateFunc         func(token string) error
	LoginFunc            func(email, password string) (string, error)
	ForgotPasswordFunc   func(email string) error
	VerifyResetTokenFunc func(email, token string) error
	ChangePasswordFunc   func(email, newPassword string) error
}

func (m *MockAuthService) Register(reg domain.Registration) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(reg)
	}
	return nil
}

func (m *MockAuthService) Activate(token string) error {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(token)
	}
	return nil
}

func (m *MockAuthService) Login(email, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(email, password)
	}
	return "test-token", nil
}

func (m *MockAuthService) ForgotPassword(email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(email)
	}
	return nil
}

func (m *MockAuthService) VerifyResetToken(email, token string) error {
	if m.VerifyResetTokenFunc != nil {
		return m.VerifyResetTokenFunc(email, token)
	}
	return nil
}

func (m *MockAuthService) ChangePassword(email, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(email, newPassword)
	}
	return nil
}

type MockBoardService struct {
	CreateFunc func(email, name string) error
	BoardsFunc func(email string) ([]domain.Board, error)
}

func (m *MockBoardService) Create(email, name string) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(email, name)
	}
	return nil
}

func (m *MockBoardService) Boards(email string) ([]domain.Board, error) {
	if m.BoardsFunc != nil {
		return m.BoardsFunc(email)
	}
	return nil, nil
}

type MockPinService struct {
	UploadFunc func(fileHeader *multipart.FileHeader) (domain.Pin, error)
}

func (m *MockPinService) Upload(fileHeader *multipart.FileHeader) (domain.Pin, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(fileHeader)
	}
	return domain.Pin{Name: "stored.jpg", Path: "/stored.jpg"}, nil
}

type MockPinger struct {
	PingFunc func(ctx context.Context) error
}

func (m *MockPinger) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

type testDeps struct {
	auth   *MockAuthService
	boards *MockBoardService
	pins   *MockPinService
	health *MockPinger
}

// newTestRouter wires a handler with mocked services behind the same
// route templates the real router uses, so mux.Vars behave identically.
func newTestRouter(deps testDeps) *mux.Router {
	if deps.auth == nil {
		deps.auth = &MockAuthService{}
	}
	if deps.boards == nil {
		deps.boards = &MockBoardService{}
	}
	if deps.pins == nil {
		deps.pins = &MockPinService{}
	}
	if deps.health == nil {
		deps.health = &MockPinger{}
	}

	h := New(deps.auth, deps.boards, deps.pins, deps.health, &config.Config{})

	r := mux.NewRouter()
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/users/active/{token}", h.Activate).Methods("GET")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/users/forgotPassword/{email}", h.ForgotPassword).Methods("GET")
	r.HandleFunc("/users/passwordReset/{email}", h.VerifyResetToken).Methods("POST")
	r.HandleFunc("/users/changePassword/{email}", h.ChangePassword).Methods("POST")
	r.HandleFunc("/isLoggedIn", h.IsLoggedIn).Methods("POST")
	r.HandleFunc("/boards", h.CreateBoard).Methods("POST")
	r.HandleFunc("/boards/{email}", h.GetBoards).Methods("POST")
	r.HandleFunc("/pin", h.UploadPin).Methods("POST")
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	return r
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func serve(r *mux.Router, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}
