package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	auth    *service.AuthService
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

// NewAuthHandler builds the handler. m may be nil.
func NewAuthHandler(auth *service.AuthService, m *metrics.MetricsManager, log *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, metrics: m, logger: log.Named("AuthHTTPHandler")}
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type userSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type loginResponse struct {
	Message      string      `json:"message"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         userSummary `json:"user"`
}

func (h *AuthHandler) record(event string, err error) {
	if h.metrics != nil {
		h.metrics.AuthEvent(event, err)
	}
}

func (h *AuthHandler) otpSent() {
	if h.metrics != nil {
		h.metrics.OTPIssuedTotal.Inc()
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	_, err := h.auth.Register(r.Context(), req)
	h.record("register", err)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.otpSent()
	writeMessage(w, http.StatusCreated, "User registered. OTP sent to email for verification.")
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	h.resend(w, r, "New OTP sent successfully.")
}

// SendOTP behaves like ResendOTP under the older route name.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	h.resend(w, r, "OTP sent successfully")
}

func (h *AuthHandler) resend(w http.ResponseWriter, r *http.Request, okMessage string) {
	var req emailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	err := h.auth.ResendOTP(r.Context(), req.Email)
	h.record("resend_otp", err)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.otpSent()
	writeMessage(w, http.StatusOK, okMessage)
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	err := h.auth.VerifyOTP(r.Context(), req.Email, req.OTP)
	h.record("verify_otp", err)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Email verified successfully. You can now log in.")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	res, err := h.auth.Login(r.Context(), req.Email, req.Password)
	h.record("login", err)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Message:      "Login successful",
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		User:         userSummary{ID: res.User.ID, Email: res.User.Email},
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if req.RefreshToken == "" {
		writeMessage(w, http.StatusUnauthorized, "Refresh token is required")
		return
	}

	pair, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	h.record("refresh", err)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// Logout must sit behind middleware.JWTAuth.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		h.logger.Warn("Logout reached without token claims")
		writeError(w, h.logger, domain.ErrTokenInvalid)
		return
	}

	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	err := h.auth.Logout(r.Context(), claims, req.RefreshToken)
	h.record("logout", err)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.logger.Debug("Logout complete", zap.String("userID", claims.UserID))
	w.WriteHeader(http.StatusNoContent)
}
