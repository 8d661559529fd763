package service

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/crypto/bcrypt"

	"github.com/pinboard-dev/pinboard/internal/config"
	"github.com/pinboard-dev/pinboard/internal/domain"
	"github.com/pinboard-dev/pinboard/internal/errors"
	"github.com/pinboard-dev/pinboard/internal/logger"
	"github.com/pinboard-dev/pinboard/internal/utils"
)

// AuthService is the account lifecycle manager: registration, email
// activation, login, and the password reset flow. All state between
// calls lives on the user record; the server itself stays stateless.
type AuthService interface {
	Register(reg domain.Registration) error
	Activate(token string) error
	Login(email, password string) (string, error)
	ForgotPassword(email string) error
	VerifyResetToken(email, token string) error
	ChangePassword(email, newPassword string) error
}

type AuthStorage interface {
	SaveUser(user domain.User) (int64, error)
	User(email string) (domain.User, error)
	UserByActivationToken(token string) (domain.User, error)
	ActivateUser(id int64) error
	SetPasswordResetToken(email, token string) error
	UpdatePassword(email, passHash string) error
}

type Email interface {
	Send(recipientEmail, subject, body string) error
	IsCorrect(email string) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type Auth struct {
	storage   AuthStorage
	email     Email
	jwt       Jwt
	cfg       *config.Public
	sanitizer *bluemonday.Policy
}

func NewAuth(storage AuthStorage, email Email, jwt Jwt, cfg *config.Public) *Auth {
	return &Auth{
		storage:   storage,
		email:     email,
		jwt:       jwt,
		cfg:       cfg,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Register creates an inactive user record and emails an activation
// link. A failed send fails the request; the record is kept, the user
// can recover through the forgot-password flow.
func (a *Auth) Register(reg domain.Registration) error {
	if err := a.email.IsCorrect(reg.Email); err != nil {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	activationToken := utils.GenerateToken(a.cfg.ActivationTokenLen)

	user := domain.User{
		Email:              reg.Email,
		PassHash:           string(passHash),
		Status:             domain.StatusInactive,
		ActivationToken:    activationToken,
		PasswordResetToken: "",
		FullName:           a.sanitizer.Sanitize(reg.FullName),
		About:              a.sanitizer.Sanitize(reg.About),
	}

	if _, err := a.storage.SaveUser(user); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/users/active/%s", a.cfg.FrontendBaseURL, activationToken)
	body := fmt.Sprintf(`
		Hello,

		Please activate your account by following the link below:

		<a href=%q>%s</a>

		If you did not register, please ignore this email.
	`, link, link)

	if err := a.email.Send(reg.Email, "Activate your account", body); err != nil {
		logger.Log.Error("failed to send activation email", "email", reg.Email, "error", err)
		return err
	}
	return nil
}

// Activate redeems an activation token. Unknown tokens map to a 400;
// re-activating an already active account is a no-op success.
func (a *Auth) Activate(token string) error {
	user, err := a.storage.UserByActivationToken(token)
	if err != nil {
		if e, ok := err.(*errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusNotFound {
			return &errors.ErrorWithStatusCode{Message: "Invalid activation token", StatusCode: http.StatusBadRequest}
		}
		return err
	}
	if user.Status == domain.StatusActive {
		return nil
	}
	return a.storage.ActivateUser(user.Id)
}

// Login checks credentials and returns a signed session token.
// The status check comes before the password check: an inactive account
// answers Conflict even with the right password.
func (a *Auth) Login(email, password string) (string, error) {
	user, err := a.storage.User(email)
	if err != nil {
		if e, ok := err.(*errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusNotFound {
			return "", &errors.ErrorWithStatusCode{Message: "Email not registered", StatusCode: http.StatusUnauthorized}
		}
		return "", err
	}

	if user.Status != domain.StatusActive {
		return "", &errors.ErrorWithStatusCode{Message: "Account not activated", StatusCode: http.StatusConflict}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return "", &errors.ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusForbidden}
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create session token", "user_id", user.Id, "error", err)
		return "", err
	}

	return token, nil
}

// ForgotPassword stores a fresh reset token and emails a reset link.
// The token update is a no-op for unknown emails and the email is sent
// regardless, so the endpoint does not reveal which addresses exist.
func (a *Auth) ForgotPassword(email string) error {
	if err := a.email.IsCorrect(email); err != nil {
		return err
	}

	resetToken := utils.GenerateToken(a.cfg.ResetTokenLen)
	if err := a.storage.SetPasswordResetToken(email, resetToken); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/users/passwordReset/%s?token=%s", a.cfg.FrontendBaseURL, email, resetToken)
	body := fmt.Sprintf(`
		Hello,

		A password reset was requested for this address. Follow the link
		below to choose a new password:

		<a href=%q>%s</a>

		If you did not request this, please ignore this email.
	`, link, link)

	if err := a.email.Send(email, "Reset your password", body); err != nil {
		logger.Log.Error("failed to send password reset email", "email", email, "error", err)
		return err
	}
	return nil
}

// VerifyResetToken checks that (email, token) matches the most recently
// issued reset token. No state is mutated here; the client may present a
// new password afterwards.
func (a *Auth) VerifyResetToken(email, token string) error {
	invalid := &errors.ErrorWithStatusCode{Message: "Invalid reset token", StatusCode: http.StatusBadRequest}

	user, err := a.storage.User(email)
	if err != nil {
		if e, ok := err.(*errors.ErrorWithStatusCode); ok && e.StatusCode == http.StatusNotFound {
			return invalid
		}
		return err
	}

	if user.PasswordResetToken == "" {
		return invalid
	}
	if subtle.ConstantTimeCompare([]byte(user.PasswordResetToken), []byte(token)) != 1 {
		return invalid
	}
	return nil
}

// ChangePassword stores a fresh hash and clears the reset token, making
// it single-use.
func (a *Auth) ChangePassword(email, newPassword string) error {
	if _, err := a.storage.User(email); err != nil {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return err
	}

	return a.storage.UpdatePassword(email, string(passHash))
}
