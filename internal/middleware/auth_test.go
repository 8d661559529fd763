package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinboard-dev/pinboard/internal/domain"
	"github.com/pinboard-dev/pinboard/internal/jwt"
)

func protectedEcho(t *testing.T) (http.Handler, *domain.User) {
	t.Helper()
	seen := &domain.User{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r)
		require.NotNil(t, user)
		*seen = *user
		w.WriteHeader(http.StatusOK)
	}), seen
}

func TestNeedAuth_BearerHeader(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	mw := NewAuth(jwtService)
	handler, seen := protectedEcho(t)

	token, err := jwtService.NewToken(domain.User{Id: 7, Email: "a@x.com"})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/isLoggedIn", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	mw.NeedAuth()(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), seen.Id)
	assert.Equal(t, "a@x.com", seen.Email)
}

func TestNeedAuth_CookieFallback(t *testing.T) {
	jwtService := jwt.New("test-secret", time.Hour)
	mw := NewAuth(jwtService)
	handler, seen := protectedEcho(t)

	token, err := jwtService.NewToken(domain.User{Id: 8, Email: "b@x.com"})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/isLoggedIn", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	rr := httptest.NewRecorder()
	mw.NeedAuth()(handler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "b@x.com", seen.Email)
}

func TestNeedAuth_NoToken(t *testing.T) {
	mw := NewAuth(jwt.New("test-secret", time.Hour))
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	req := httptest.NewRequest("POST", "/isLoggedIn", nil)
	rr := httptest.NewRecorder()
	mw.NeedAuth()(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, handlerCalled)
	assert.Contains(t, rr.Body.String(), "Please sign in")
}

func TestNeedAuth_ExpiredToken(t *testing.T) {
	expiredSigner := jwt.New("test-secret", -time.Minute)
	mw := NewAuth(jwt.New("test-secret", time.Hour))

	token, err := expiredSigner.NewToken(domain.User{Id: 1, Email: "a@x.com"})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/isLoggedIn", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	mw.NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an expired token")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestNeedAuth_TamperedToken(t *testing.T) {
	otherSigner := jwt.New("other-secret", time.Hour)
	mw := NewAuth(jwt.New("test-secret", time.Hour))

	token, err := otherSigner.NewToken(domain.User{Id: 1, Email: "a@x.com"})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/isLoggedIn", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	mw.NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a tampered token")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
