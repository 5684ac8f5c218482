package otp

import "time"

// State is the position of an email in the password reset ledger.
type State int

const (
	StateAbsent State = iota
	StatePending
	StateVerified
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateVerified:
		return "verified"
	default:
		return "absent"
	}
}

// Record is the one live reset code for an email.
type Record struct {
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Verified  bool      `json:"verified"`
}

// Expired reports whether the record is no longer usable at now.
func (r *Record) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

func (r *Record) State() State {
	if r == nil {
		return StateAbsent
	}
	if r.Verified {
		return StateVerified
	}
	return StatePending
}
