package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Envelope is the uniform body of every API response. Error is null on success.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

// RespondJSON writes payload as JSON.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

// RespondSuccess wraps data in a successful envelope.
func RespondSuccess(w http.ResponseWriter, status int, data any) {
	RespondJSON(w, status, Envelope{Success: true, Data: data})
}

// RespondError wraps message in a failed envelope.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, Envelope{Success: false, Error: &message})
}
