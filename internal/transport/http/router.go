package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-otp-whatsapp/internal/config"
	"github.com/go-otp-whatsapp/internal/transport/http/handler"
	appmiddleware "github.com/go-otp-whatsapp/internal/transport/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	otpRL := appmiddleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(deps.Verification)

	r.Get("/health-check/{action}", healthH.Ping)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/otp", func(r chi.Router) {
		r.Use(otpRL.Limit)
		r.Post("/send-otp", otpH.SendOTP)
		r.Post("/verify-otp", otpH.VerifyOTP)
		r.Post("/send-offer", otpH.SendOffer)
	})

	return r
}
