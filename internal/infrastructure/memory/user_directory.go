package memory

import (
	"sync"

	"github.com/go-otp-whatsapp/internal/domain"
)

// UserDirectory maps a phone key to its profile record.
type UserDirectory struct {
	mu sync.RWMutex
	m  map[string]domain.UserRecord
}

func NewUserDirectory() *UserDirectory {
	return &UserDirectory{m: make(map[string]domain.UserRecord)}
}

// GetOrCreate returns the record for key, creating it with name if absent.
// The name of an existing record is never changed.
func (d *UserDirectory) GetOrCreate(key, name string) domain.UserRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	if u, ok := d.m[key]; ok {
		return u
	}
	u := domain.UserRecord{Phone: key, Name: name}
	d.m[key] = u
	return u
}

func (d *UserDirectory) Get(key string) (domain.UserRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.m[key]
	return u, ok
}
