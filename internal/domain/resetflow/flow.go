package resetflow

// Package resetflow models the OTP password-reset flow as an explicit state
// machine. Forward transitions are named after the server acknowledgment
// that permits them; Back never contacts the server. The package is pure:
// orchestration and upstream calls live in internal/service.

import (
	"errors"
	"fmt"
	"time"
)

// Step is the tagged state of the reset flow.
type Step string

const (
	StepEmailEntry  Step = "email_entry"
	StepOtpEntry    Step = "otp_entry"
	StepNewPassword Step = "new_password"
	// StepDone is terminal; the caller is expected to route to login and
	// destroy the flow.
	StepDone Step = "done"
)

// ErrInvalidTransition is returned when a transition is attempted from the
// wrong step.
var ErrInvalidTransition = errors.New("invalid reset flow transition")

// Flow is the ephemeral per-browser reset flow state. It is destroyed when
// the flow completes or its TTL lapses.
type Flow struct {
	ID        string    `json:"id"`
	Step      Step      `json:"step"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// New returns a flow at the initial step.
func New(id string) Flow {
	return Flow{ID: id, Step: StepEmailEntry, CreatedAt: time.Now().UTC()}
}

// EmailAccepted records the server's acknowledgment of the reset-code
// request and advances to OTP entry.
func (f *Flow) EmailAccepted(email string) error {
	if f.Step != StepEmailEntry {
		return fmt.Errorf("%w: email accepted at %s", ErrInvalidTransition, f.Step)
	}
	f.Email = email
	f.Step = StepOtpEntry
	return nil
}

// CodeVerified records the server's acknowledgment of the OTP and advances
// to new-password entry.
func (f *Flow) CodeVerified(code string) error {
	if f.Step != StepOtpEntry {
		return fmt.Errorf("%w: code verified at %s", ErrInvalidTransition, f.Step)
	}
	f.Code = code
	f.Step = StepNewPassword
	return nil
}

// Completed records the server's acceptance of the new password. The flow
// is terminal afterwards.
func (f *Flow) Completed() error {
	if f.Step != StepNewPassword {
		return fmt.Errorf("%w: completed at %s", ErrInvalidTransition, f.Step)
	}
	f.Step = StepDone
	return nil
}

// Back moves one step backwards without server contact. Only the value
// being re-entered is dropped; everything else entered so far is retained.
func (f *Flow) Back() error {
	switch f.Step {
	case StepOtpEntry:
		f.Step = StepEmailEntry
		return nil
	case StepNewPassword:
		f.Code = ""
		f.Step = StepOtpEntry
		return nil
	case StepEmailEntry, StepDone:
		return fmt.Errorf("%w: back at %s", ErrInvalidTransition, f.Step)
	}
	return fmt.Errorf("%w: back at unknown step %q", ErrInvalidTransition, f.Step)
}

// Done reports whether the flow reached its terminal step.
func (f Flow) Done() bool { return f.Step == StepDone }
