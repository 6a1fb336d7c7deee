package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/go-otp-whatsapp/internal/application/verification"
	"github.com/go-otp-whatsapp/internal/config"
	"github.com/go-otp-whatsapp/internal/infrastructure/memory"
	jwtinfra "github.com/go-otp-whatsapp/internal/infrastructure/jwt"
	"github.com/go-otp-whatsapp/internal/pkg/clock"
	"github.com/go-otp-whatsapp/internal/pkg/otpcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMessenger keeps the last text sent to each phone.
type recordingMessenger struct {
	last map[string]string
	err  error
}

func (m *recordingMessenger) SendText(_ context.Context, phone, text string) error {
	if m.err != nil {
		return m.err
	}
	m.last[phone] = text
	return nil
}

func newTestRouter(t *testing.T, msg *recordingMessenger) http.Handler {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:      "router-test-secret",
		JWTExpiry:      5 * time.Hour,
		AllowedOrigins: []string{"*"},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	issuer, err := jwtinfra.NewProvider(cfg, clock.System())
	require.NoError(t, err)

	svc := verification.NewService(verification.ServiceDeps{
		OTPStore:  memory.NewOTPStore(clock.System()),
		Users:     memory.NewUserDirectory(),
		Codes:     otpcode.New(),
		Messenger: msg,
		Issuer:    issuer,
	})
	return NewRouter(cfg, &Deps{Verification: svc})
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	r := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return rr.Code, resp
}

func TestRouter_SendVerifyFlow(t *testing.T) {
	msg := &recordingMessenger{last: map[string]string{}}
	h := newTestRouter(t, msg)

	code, resp := do(t, h, http.MethodPost, "/otp/send-otp", `{"phone":"+351 912-345-678","name":"Ana"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, resp["success"])

	m := regexp.MustCompile(`\*(\d{6})\*`).FindStringSubmatch(msg.last["351912345678"])
	require.Len(t, m, 2)

	code, resp = do(t, h, http.MethodPost, "/otp/verify-otp", `{"phone":"351912345678","otp":"`+m[1]+`"}`)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, true, resp["needsProfile"])

	code, resp = do(t, h, http.MethodPost, "/otp/verify-otp", `{"phone":"351912345678","otp":"`+m[1]+`"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Nenhum código encontrado", resp["error"])
}

func TestRouter_VerifyUnknownPhone(t *testing.T) {
	h := newTestRouter(t, &recordingMessenger{last: map[string]string{}})
	code, resp := do(t, h, http.MethodPost, "/otp/verify-otp", `{"phone":"912345678","otp":"123456"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Nenhum código encontrado", resp["error"])
}

func TestRouter_SendOTP_MissingName(t *testing.T) {
	msg := &recordingMessenger{last: map[string]string{}}
	h := newTestRouter(t, msg)
	code, resp := do(t, h, http.MethodPost, "/otp/send-otp", `{"phone":"912345678"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Número e nome são obrigatórios", resp["error"])
	assert.Empty(t, msg.last)
}

func TestRouter_HealthPing(t *testing.T) {
	h := newTestRouter(t, &recordingMessenger{last: map[string]string{}})
	code, resp := do(t, h, http.MethodGet, "/health-check/ping", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", resp["message"])
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestRouter(t, &recordingMessenger{last: map[string]string{}})
	do(t, h, http.MethodGet, "/health-check/ping", "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "http_request_duration_seconds"))
}
