package http

import (
	"github.com/go-otp-whatsapp/internal/application/verification"
	"go.uber.org/zap"
)

// Deps holds everything the router needs from the rest of the process.
type Deps struct {
	Verification verification.Service
	Logger       *zap.Logger
}
