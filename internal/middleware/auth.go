package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pinboard-dev/pinboard/internal/domain"
	jwt_internal "github.com/pinboard-dev/pinboard/internal/jwt"
	"github.com/pinboard-dev/pinboard/internal/logger"
	"github.com/pinboard-dev/pinboard/internal/utils"
)

// Key to store the user claims in the request context
type key int

const UserClaimsKey key = 0

// Auth is the session guard applied in front of protected operations.
// Any valid token grants access; there is no role model.
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// NeedAuth returns middleware that rejects the request with 401 before
// the protected handler runs unless a valid session token is presented.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := a.extractUser(r)
			if err != nil {
				switch err {
				case errNoToken:
					utils.WriteMessage(w, http.StatusUnauthorized, "Please sign in", false)
				case errInvalidClaims:
					logger.Log.Error("invalid session token claims")
					utils.WriteMessage(w, http.StatusUnauthorized, "Invalid token", false)
				default:
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractUser pulls the bearer token from the Authorization header
// (cookie fallback for browser clients) and validates it.
func (a *Auth) extractUser(r *http.Request) (*domain.User, error) {
	var tokenString string
	if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	} else if accessCookie, err := r.Cookie("accessToken"); err == nil {
		tokenString = accessCookie.Value
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	uidFloat, ok := claims["uid"].(float64)
	if !ok {
		return nil, errInvalidClaims
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	return &domain.User{Id: int64(uidFloat), Email: email}, nil
}

// Sentinel errors for extractUser
var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// GetUserFromContext retrieves the authenticated user from the context.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserClaimsKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
