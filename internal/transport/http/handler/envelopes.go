package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-otp-whatsapp/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// VerifyEnvelope wraps a successful verify-otp response.
type VerifyEnvelope struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	Token        string            `json:"token"`
	User         domain.UserRecord `json:"user"`
	NeedsProfile bool              `json:"needsProfile"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
