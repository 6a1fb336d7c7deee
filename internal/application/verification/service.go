package verification

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/go-otp-whatsapp/internal/domain"
	"github.com/go-otp-whatsapp/internal/observability"
	"github.com/go-otp-whatsapp/internal/pkg/clock"
	"github.com/go-otp-whatsapp/internal/pkg/otpcode"
	"github.com/go-otp-whatsapp/internal/pkg/phone"
	"github.com/go-otp-whatsapp/internal/pkg/validate"
	"go.uber.org/zap"
)

const offerTemplate = `🎉 Olá %s!

O teu código de oferta de 50%% é válido por 30 dias.
⚠️ Não partilhes este código com ninguém [01SYNCTECHX]

📅 O Trilho Académico estará disponível a partir de Segunda-feira, 3 de novembro.

💬 Podemos enviar-te uma mensagem quando estiver disponível?
Responde com sim ou não. ✅

🌟 Mal podemos esperar por te ajudar a aproveitar esta oportunidade!`

// OTPStore holds at most one pending code per phone key.
type OTPStore interface {
	Put(key, code string, ttl time.Duration)
	Get(key string) (domain.OTPRecord, bool)
	CompareAndConsume(key, code string) (domain.OTPRecord, bool)
	Len() int
}

type UserDirectory interface {
	GetOrCreate(key, name string) domain.UserRecord
	Get(key string) (domain.UserRecord, bool)
}

// Messenger delivers a text message to a digits-only phone number.
type Messenger interface {
	SendText(ctx context.Context, phone, text string) error
}

type CredentialIssuer interface {
	Issue(subjectID string) (string, error)
}

type Service interface {
	SendOTP(ctx context.Context, req domain.SendOTPRequest) error
	VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.Verification, error)
	SendOffer(ctx context.Context, req domain.SendOfferRequest) error
}

type ServiceDeps struct {
	OTPStore  OTPStore
	Users     UserDirectory
	Codes     otpcode.Generator
	Messenger Messenger
	Issuer    CredentialIssuer
	Clock     clock.Clock
	Logger    *zap.Logger
}

type service struct {
	otps      OTPStore
	users     UserDirectory
	codes     otpcode.Generator
	messenger Messenger
	issuer    CredentialIssuer
	clock     clock.Clock
	log       *zap.Logger
}

func NewService(deps ServiceDeps) Service {
	c := deps.Clock
	if c == nil {
		c = clock.System()
	}
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		otps:      deps.OTPStore,
		users:     deps.Users,
		codes:     deps.Codes,
		messenger: deps.Messenger,
		issuer:    deps.Issuer,
		clock:     c,
		log:       log,
	}
}

func (s *service) SendOTP(ctx context.Context, req domain.SendOTPRequest) error {
	key, err := normalizedKey(req, req.Phone)
	if err != nil {
		return err
	}
	code, err := s.codes.Generate()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	// The code stays stored even if delivery fails below.
	s.otps.Put(key, code, domain.OTPTTL)
	observability.PendingCodes.Set(float64(s.otps.Len()))

	msg := fmt.Sprintf("👋 Olá %s, o teu código de verificação é: *%s* (válido por 5 minutos).", req.Name, code)
	if err := s.messenger.SendText(ctx, key, msg); err != nil {
		observability.OTPSends.WithLabelValues("failed").Inc()
		s.log.Error("failed to send OTP", zap.String("phone", phone.Mask(key)), zap.Error(err))
		return deliveryError(err)
	}
	observability.OTPSends.WithLabelValues("sent").Inc()

	s.users.GetOrCreate(key, req.Name)
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, req domain.VerifyOTPRequest) (*domain.Verification, error) {
	key, err := normalizedKey(req, req.Phone)
	if err != nil {
		return nil, err
	}

	rec, ok := s.otps.Get(key)
	if !ok {
		observability.OTPVerifications.WithLabelValues("no_pending").Inc()
		return nil, fmt.Errorf("no code for %s: %w", phone.Mask(key), domain.ErrNoPendingCode)
	}
	if rec.Expired(s.clock.Now()) {
		// Only drop the record we inspected; a concurrent send may have replaced it.
		s.otps.CompareAndConsume(key, rec.Code)
		observability.PendingCodes.Set(float64(s.otps.Len()))
		observability.OTPVerifications.WithLabelValues("expired").Inc()
		return nil, fmt.Errorf("code for %s expired at %s: %w", phone.Mask(key), rec.ExpiresAt.Format(time.RFC3339), domain.ErrCodeExpired)
	}
	if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(req.OTP)) != 1 {
		observability.OTPVerifications.WithLabelValues("mismatch").Inc()
		return nil, fmt.Errorf("wrong code for %s: %w", phone.Mask(key), domain.ErrCodeMismatch)
	}
	if _, ok := s.otps.CompareAndConsume(key, req.OTP); !ok {
		// Redeemed or replaced between Get and here.
		observability.OTPVerifications.WithLabelValues("no_pending").Inc()
		return nil, fmt.Errorf("code for %s already consumed: %w", phone.Mask(key), domain.ErrNoPendingCode)
	}
	observability.PendingCodes.Set(float64(s.otps.Len()))

	user, ok := s.users.Get(key)
	if !ok {
		observability.OTPVerifications.WithLabelValues("user_not_found").Inc()
		return nil, fmt.Errorf("no user for %s: %w", phone.Mask(key), domain.ErrUserNotFound)
	}

	token, err := s.issuer.Issue(key)
	if err != nil {
		s.log.Error("failed to issue token", zap.String("phone", phone.Mask(key)), zap.Error(err))
		return nil, fmt.Errorf("issue token: %w", err)
	}
	observability.OTPVerifications.WithLabelValues("verified").Inc()

	return &domain.Verification{
		Token:        token,
		User:         user,
		NeedsProfile: !user.ProfileCompleted,
	}, nil
}

func (s *service) SendOffer(ctx context.Context, req domain.SendOfferRequest) error {
	key, err := normalizedKey(req, req.Phone)
	if err != nil {
		return err
	}
	if err := s.messenger.SendText(ctx, key, fmt.Sprintf(offerTemplate, req.Name)); err != nil {
		observability.OfferSends.WithLabelValues("failed").Inc()
		s.log.Error("failed to send offer", zap.String("phone", phone.Mask(key)), zap.Error(err))
		return deliveryError(err)
	}
	observability.OfferSends.WithLabelValues("sent").Inc()
	return nil
}

// normalizedKey validates req and returns the phone key for raw.
func normalizedKey(req interface{}, raw string) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	key := phone.Normalize(raw)
	if key == "" {
		return "", fmt.Errorf("phone has no digits: %w", domain.ErrInvalidInput)
	}
	return key, nil
}

func deliveryError(err error) error {
	var d interface{ Details() any }
	if errors.As(err, &d) {
		return &domain.DeliveryError{Details: d.Details(), Err: err}
	}
	return &domain.DeliveryError{Details: err.Error(), Err: err}
}
