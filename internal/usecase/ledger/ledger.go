// Package ledger tracks the one-time codes of the password reset flow.
//
// Each email moves through absent -> pending -> verified -> absent. Requesting
// a code always overwrites the previous one, a matching check marks it
// verified, and a completed reset consumes it. Expiry is checked lazily: the
// first check or consume that sees an expired record drops it.
package ledger

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"scholarship-portal/internal/domain/otp"
)

const (
	DefaultTTL = 5 * time.Minute

	codeMin   = 100000
	codeRange = 900000
)

type Ledger struct {
	store    otp.Store
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)

	// mu serializes read-modify-write sequences against the store.
	mu sync.Mutex
}

type Option func(*Ledger)

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithCodeGenerator(generate func() (string, error)) Option {
	return func(l *Ledger) {
		l.generate = generate
	}
}

func New(store otp.Store, ttl time.Duration, opts ...Option) *Ledger {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	l := &Ledger{
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		generate: GenerateCode,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// TTL is how long an issued code stays usable.
func (l *Ledger) TTL() time.Duration {
	return l.ttl
}

// GenerateCode returns a uniformly random code in 100000..999999.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}

// Request issues a fresh pending code for email, replacing any existing record.
func (l *Ledger) Request(ctx context.Context, email string) (*otp.Record, error) {
	code, err := l.generate()
	if err != nil {
		return nil, err
	}

	record := &otp.Record{
		Email:     email,
		Code:      code,
		ExpiresAt: l.now().Add(l.ttl),
		Verified:  false,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Set(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Check marks the record verified when code matches and has not expired.
// A mismatch leaves the record pending; checking an already verified record
// with the right code succeeds again.
func (l *Ledger) Check(ctx context.Context, email, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, err := l.live(ctx, email)
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(record.Code), []byte(code)) != 1 {
		return otp.ErrOTPMismatch
	}

	if record.Verified {
		return nil
	}
	record.Verified = true
	return l.store.Set(ctx, record)
}

// State reports where email currently sits, dropping the record if it expired.
func (l *Ledger) State(ctx context.Context, email string) (otp.State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	record, err := l.live(ctx, email)
	if errors.Is(err, otp.ErrOTPNotFound) || errors.Is(err, otp.ErrOTPExpired) {
		return otp.StateAbsent, nil
	}
	if err != nil {
		return otp.StateAbsent, err
	}
	return record.State(), nil
}

// RequireVerified fails with otp.ErrOTPNotVerified unless email holds a live
// verified record, or with otp.ErrOTPExpired when the record just expired.
func (l *Ledger) RequireVerified(ctx context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.verified(ctx, email)
	return err
}

// ConsumeAndReset runs commit for a verified email and deletes the record once
// commit succeeds. The record is left untouched when commit fails, and a
// record re-issued while commit was running is not consumed.
func (l *Ledger) ConsumeAndReset(ctx context.Context, email string, commit func(ctx context.Context) error) error {
	l.mu.Lock()
	record, err := l.verified(ctx, email)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	if err := commit(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deleteIfCurrent(ctx, record)
}

// Discard drops record if its email still holds it. A code re-issued since
// record was created is left alone.
func (l *Ledger) Discard(ctx context.Context, record *otp.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.deleteIfCurrent(ctx, record)
}

// deleteIfCurrent deletes the stored record for record.Email when it is the
// same issue as record. Callers must hold l.mu.
func (l *Ledger) deleteIfCurrent(ctx context.Context, record *otp.Record) error {
	current, err := l.store.Get(ctx, record.Email)
	if errors.Is(err, otp.ErrOTPNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if current.Code != record.Code || !current.ExpiresAt.Equal(record.ExpiresAt) {
		return nil
	}
	return l.store.Delete(ctx, record.Email)
}

// Sweep deletes records that expired before cutoff from stores that need it.
func (l *Ledger) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	sweeper, ok := l.store.(otp.Sweeper)
	if !ok {
		return 0, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return sweeper.DeleteExpired(ctx, cutoff)
}

func (l *Ledger) verified(ctx context.Context, email string) (*otp.Record, error) {
	record, err := l.live(ctx, email)
	if errors.Is(err, otp.ErrOTPNotFound) {
		return nil, otp.ErrOTPNotVerified
	}
	if err != nil {
		return nil, err
	}
	if !record.Verified {
		return nil, otp.ErrOTPNotVerified
	}
	return record, nil
}

// live loads the record for email and drops it if it has expired.
// Callers must hold l.mu.
func (l *Ledger) live(ctx context.Context, email string) (*otp.Record, error) {
	record, err := l.store.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	if record.Expired(l.now()) {
		if err := l.store.Delete(ctx, email); err != nil {
			return nil, err
		}
		return nil, otp.ErrOTPExpired
	}
	return record, nil
}
