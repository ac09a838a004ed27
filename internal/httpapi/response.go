package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"yumexpress-be/internal/apperr"
	"yumexpress-be/internal/logger"
	"yumexpress-be/internal/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// envelope is the body of every JSON response.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func writeData(w http.ResponseWriter, code int, message string, data interface{}) {
	utils.WriteJSON(w, code, envelope{Success: true, Message: message, Data: data})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrInvalidTransition),
		errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated),
		errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError converts err into the error envelope. Unexpected errors are
// logged and reported with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()

	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		msg = "server error"
	}

	utils.WriteJSONError(w, msg, code)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		return apperr.Validation("invalid JSON body")
	}
	return nil
}
