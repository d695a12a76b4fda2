package handlers

import (
	"net/http"

	"github.com/culinamind/backend/internal/infrastructure/http/middleware"
	"github.com/culinamind/backend/internal/infrastructure/monitoring"
	"github.com/culinamind/backend/internal/infrastructure/security"
	"github.com/culinamind/backend/internal/ports/inbound"
	"go.uber.org/zap"
)

// AuthHandler serves the account endpoints.
type AuthHandler struct {
	auth     inbound.AuthService
	validate *security.RequestValidator
	metrics  *monitoring.MetricsCollector
	logger   *zap.Logger
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(auth inbound.AuthService, validate *security.RequestValidator, metrics *monitoring.MetricsCollector, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate, metrics: metrics, logger: logger.Named("auth-handler")}
}

type userResponse struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Signup handles POST /signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.SignupCommand
	if err := decodeJSON(r, &cmd); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.validate.Struct(cmd); err != nil {
		respond(w, http.StatusBadRequest, "Missing required fields", nil)
		return
	}

	u, err := h.auth.Signup(r.Context(), cmd)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	h.metrics.UserRegistered()
	respond(w, http.StatusCreated, "User created successfully", map[string]any{"user_id": u.ID})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Login successful", map[string]any{
		"access_token": result.AccessToken,
		"user": userResponse{
			ID:        result.User.ID,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Email:     result.User.Email,
		},
	})
}

// GoogleLogin handles POST /login/google.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		respond(w, http.StatusBadRequest, "Missing Google token", nil)
		return
	}

	result, err := h.auth.LoginWithGoogle(r.Context(), req.Token)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Google login successful", map[string]any{
		"access_token": result.AccessToken,
		"user": userResponse{
			ID:        result.User.ID,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Email:     result.User.Email,
		},
	})
}

// GetProfile handles GET /profile.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	u, err := h.auth.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Profile retrieved successfully", userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	})
}

// UpdateProfile handles PUT /profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		respond(w, http.StatusBadRequest, "Both first name and last name are required", nil)
		return
	}

	u, err := h.auth.UpdateProfile(r.Context(), userID, req.FirstName, req.LastName)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Profile updated successfully", map[string]any{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	})
}

// RequestPasswordReset handles POST /reset-password.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "OTP sent to your email", nil)
}

// VerifyOTP handles POST /verify-otp.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.auth.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "OTP verified", nil)
}

// ConfirmPasswordReset handles POST /reset-password/confirm.
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.auth.ConfirmPasswordReset(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respond(w, http.StatusOK, "Password reset successful", nil)
}
