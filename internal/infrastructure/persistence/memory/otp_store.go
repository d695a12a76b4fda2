package memory

import (
	"context"
	"sync"
	"time"

	"github.com/culinamind/backend/internal/ports/outbound"
)

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// OTPStore is an in-process OTP store for development and tests.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]otpEntry
}

// NewOTPStore creates an in-memory OTP store
func NewOTPStore() *OTPStore {
	return &OTPStore{entries: make(map[string]otpEntry)}
}

var _ outbound.OTPStore = (*OTPStore)(nil)

// Put stores a code for an email
func (s *OTPStore) Put(_ context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = otpEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Verify checks a code; expired codes verify as false
func (s *OTPStore) Verify(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, email)
		return false, nil
	}
	return entry.code == code, nil
}

// Clear removes a stored code
func (s *OTPStore) Clear(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
