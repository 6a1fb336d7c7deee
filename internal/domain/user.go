package domain

// UserRecord is the minimal profile kept per phone key.
type UserRecord struct {
	Phone            string `json:"phone"`
	Name             string `json:"name"`
	ProfileCompleted bool   `json:"profile_completed"`
}

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Name  string `json:"name" validate:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

type SendOfferRequest struct {
	Phone string `json:"phone" validate:"required"`
	Name  string `json:"name" validate:"required"`
}
