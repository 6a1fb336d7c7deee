package domain

import "time"

// OTPTTL is how long a sent code stays redeemable.
const OTPTTL = 5 * time.Minute

// OTPRecord is a pending code for one phone key.
// Expired when now >= ExpiresAt.
type OTPRecord struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r OTPRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Verification is the result of a successful code redemption.
type Verification struct {
	Token        string
	User         UserRecord
	NeedsProfile bool
}
