// Package memory holds the process-lifetime stores for pending codes and user
// records. Nothing here survives a restart.
package memory

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/go-otp-whatsapp/internal/domain"
	"github.com/go-otp-whatsapp/internal/pkg/clock"
)

// OTPStore maps a phone key to its pending code. Expiry is lazy: records are
// only removed when a caller consumes them.
type OTPStore struct {
	mu    sync.Mutex
	m     map[string]domain.OTPRecord
	clock clock.Clock
}

func NewOTPStore(c clock.Clock) *OTPStore {
	return &OTPStore{m: make(map[string]domain.OTPRecord), clock: c}
}

// Put overwrites any record for key with code, expiring ttl from now.
func (s *OTPStore) Put(key, code string, ttl time.Duration) {
	rec := domain.OTPRecord{Code: code, ExpiresAt: s.clock.Now().Add(ttl)}
	s.mu.Lock()
	s.m[key] = rec
	s.mu.Unlock()
}

func (s *OTPStore) Get(key string) (domain.OTPRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[key]
	return rec, ok
}

// Consume removes and returns the record for key.
func (s *OTPStore) Consume(key string) (domain.OTPRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[key]
	if ok {
		delete(s.m, key)
	}
	return rec, ok
}

// CompareAndConsume removes and returns the record for key only if its code
// equals code. A record replaced by a newer send is left untouched.
func (s *OTPStore) CompareAndConsume(key, code string) (domain.OTPRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[key]
	if !ok || subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) != 1 {
		return domain.OTPRecord{}, false
	}
	delete(s.m, key)
	return rec, true
}

// Len reports how many records are stored, expired ones included.
func (s *OTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
