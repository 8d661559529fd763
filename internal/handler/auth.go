package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pinboard-dev/pinboard/internal/domain"
	"github.com/pinboard-dev/pinboard/internal/middleware"
	"github.com/pinboard-dev/pinboard/internal/utils"
)

type registerRequest struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
	FullName string `json:"fullName"`
	About    string `json:"about"`
}

type loginRequest struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

type loginResponse struct {
	utils.Response
	Token string `json:"token"`
}

type resetTokenRequest struct {
	Token string `validate:"required" json:"token"`
}

type changePasswordRequest struct {
	Password string `validate:"required" json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reg := domain.Registration{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		About:    req.About,
	}
	if err := h.auth.Register(reg); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Registered. Check your email for the activation link", true)
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.auth.Activate(token); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Account activated. You can login now", true)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, loginResponse{
		Response: utils.Response{Status: http.StatusOK, Message: "Login successful", Result: true},
		Token:    token,
	})
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	if err := h.auth.ForgotPassword(email); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Password reset link sent", true)
}

func (h *Handler) VerifyResetToken(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	var req resetTokenRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.auth.VerifyResetToken(email, req.Token); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Token verified. You can set a new password", true)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	var req changePasswordRequest
	if err := utils.DecodeValidate(r.Body, &req); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.auth.ChangePassword(email, req.Password); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Password changed", true)
}

// IsLoggedIn only runs behind the session guard, so reaching it means
// the token checked out.
func (h *Handler) IsLoggedIn(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		utils.WriteMessage(w, http.StatusUnauthorized, "Please sign in", false)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Logged in as "+user.Email, true)
}
