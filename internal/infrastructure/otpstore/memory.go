package otpstore

import (
	"context"
	"sync"
	"time"

	"scholarship-portal/internal/domain/otp"
)

// MemoryStore keeps reset records in process memory. Restarting the process
// drops every outstanding reset flow, and the map is not shared between
// instances.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]otp.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]otp.Record),
	}
}

func (s *MemoryStore) Get(_ context.Context, email string) (*otp.Record, error) {
	s.mu.RLock()
	record, exists := s.records[email]
	s.mu.RUnlock()

	if !exists {
		return nil, otp.ErrOTPNotFound
	}
	return &record, nil
}

func (s *MemoryStore) Set(_ context.Context, record *otp.Record) error {
	s.mu.Lock()
	s.records[record.Email] = *record
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	delete(s.records, email)
	s.mu.Unlock()
	return nil
}

// DeleteExpired removes records whose expiry is before the cutoff.
func (s *MemoryStore) DeleteExpired(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for email, record := range s.records {
		if record.ExpiresAt.Before(before) {
			delete(s.records, email)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of records held, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
