package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-otp-whatsapp/internal/application/verification"
	"github.com/go-otp-whatsapp/internal/domain"
)

const (
	msgPhoneAndNameRequired = "Número e nome são obrigatórios"
	msgPhoneAndCodeRequired = "Número e código são obrigatórios"
	msgOTPSent              = "Código enviado via WhatsApp"
	msgOTPSendFailed        = "Falha ao enviar OTP"
	msgVerified             = "Código verificado com sucesso!"
	msgVerifyFailed         = "Falha ao verificar código"
	msgOfferSent            = "Mensagem de oferta enviada"
	msgOfferSendFailed      = "Falha ao enviar oferta"
)

// verifyErrors maps verification failures to their client-facing message.
var verifyErrors = []struct {
	err error
	msg string
}{
	{domain.ErrInvalidInput, msgPhoneAndCodeRequired},
	{domain.ErrNoPendingCode, "Nenhum código encontrado"},
	{domain.ErrCodeExpired, "Código expirado"},
	{domain.ErrCodeMismatch, "Código inválido"},
	{domain.ErrUserNotFound, "Usuário não encontrado"},
}

// OTPHandler serves the send-otp, verify-otp and send-offer endpoints.
type OTPHandler struct {
	svc verification.Service
}

func NewOTPHandler(svc verification.Service) *OTPHandler { return &OTPHandler{svc: svc} }

func (h *OTPHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgPhoneAndNameRequired)
		return
	}
	if err := h.svc.SendOTP(r.Context(), req); err != nil {
		writeSendError(w, err, msgPhoneAndNameRequired, msgOTPSendFailed)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: msgOTPSent})
}

func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgPhoneAndCodeRequired)
		return
	}
	res, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		for _, ve := range verifyErrors {
			if errors.Is(err, ve.err) {
				writeError(w, http.StatusBadRequest, ve.msg)
				return
			}
		}
		writeError(w, http.StatusInternalServerError, msgVerifyFailed)
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{
		Success:      true,
		Message:      msgVerified,
		Token:        res.Token,
		User:         res.User,
		NeedsProfile: res.NeedsProfile,
	})
}

func (h *OTPHandler) SendOffer(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgPhoneAndNameRequired)
		return
	}
	if err := h.svc.SendOffer(r.Context(), req); err != nil {
		writeSendError(w, err, msgPhoneAndNameRequired, msgOfferSendFailed)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: msgOfferSent})
}

func writeSendError(w http.ResponseWriter, err error, invalidMsg, failedMsg string) {
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, invalidMsg)
		return
	}
	env := MessageEnvelope{Error: failedMsg, Details: err.Error()}
	var de *domain.DeliveryError
	if errors.As(err, &de) && de.Details != nil {
		env.Details = de.Details
	}
	writeJSON(w, http.StatusInternalServerError, env)
}
