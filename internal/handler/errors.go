package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"go.uber.org/zap"
)

const retryAfterSeconds = "5"

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError is the single place where domain errors become HTTP
// responses. Unexpected errors are logged and reported generically.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation error", Errors: vErr.Fields})
		return
	}

	status, msg := classify(err)
	switch {
	case status == http.StatusServiceUnavailable:
		log.Warn("Dependency unavailable", zap.Error(err))
		w.Header().Set("Retry-After", retryAfterSeconds)
	case status >= 500:
		log.Error("Request failed", zap.Error(err))
	}
	writeMessage(w, status, msg)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusBadRequest, "User already exists"
	case errors.Is(err, domain.ErrAlreadyVerified):
		return http.StatusBadRequest, "User is already verified"
	case errors.Is(err, domain.ErrOTPNotFound):
		return http.StatusBadRequest, "OTP not found or expired"
	case errors.Is(err, domain.ErrOTPMismatch):
		return http.StatusBadRequest, "Invalid OTP"
	case errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest, "Invalid request body"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Resource already exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password"
	case errors.Is(err, domain.ErrNotVerified):
		return http.StatusUnauthorized, "Email not verified. Please verify your OTP first."
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	case errors.Is(err, domain.ErrMailDeliveryFailed):
		return http.StatusInternalServerError, "Failed to send email"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// decodeJSON reads a JSON body of at most maxBodyBytes into dst. An empty
// body leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Join(domain.ErrBadRequest, err)
	}
	return nil
}
