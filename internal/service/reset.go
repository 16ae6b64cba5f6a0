package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kebelehub/rfm-ui-api/internal/domain/resetflow"
	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

// FieldErrors maps form field names to inline error messages. Validation
// and per-step business failures surface here so the UI can attach them to
// the offending input instead of a global toast.
type FieldErrors map[string]string

// StepResult is the settled outcome of one reset-flow action.
type StepResult struct {
	Success bool
	Flow    resetflow.Flow
	Fields  FieldErrors
}

// ResetServiceOptions groups dependencies for ResetService.
type ResetServiceOptions struct {
	Upstream ports.UpstreamAuth
	Flows    ports.FlowStore
}

// ResetService orchestrates the three-step OTP password reset. Client-side
// validation runs before any network call; the flow only advances on an
// upstream acknowledgment; Back never contacts the server. The service does
// not navigate: after a completed reset the caller routes to login.
type ResetService struct {
	upstream ports.UpstreamAuth
	flows    ports.FlowStore
	inflight *Inflight
	validate *validator.Validate
}

// NewResetService constructs a new ResetService.
func NewResetService(opts ResetServiceOptions) *ResetService {
	return &ResetService{
		upstream: opts.Upstream,
		flows:    opts.Flows,
		inflight: NewInflight(),
		validate: validator.New(),
	}
}

// Start creates a fresh flow at the email-entry step.
func (s *ResetService) Start(ctx context.Context) (resetflow.Flow, error) {
	f := resetflow.New(uuid.New().String())
	if err := s.flows.Save(ctx, f); err != nil {
		return resetflow.Flow{}, fmt.Errorf("save flow: %w", err)
	}
	return f, nil
}

// requestCodeForm carries the email-entry step's input.
type requestCodeForm struct {
	Email string `validate:"required,email"`
}

// RequestCode validates the email shape, asks the server for a one-time
// code, and advances the flow to OTP entry on acknowledgment.
func (s *ResetService) RequestCode(ctx context.Context, flowID, email string) (StepResult, error) {
	email = strings.TrimSpace(email)
	if fields := s.check(requestCodeForm{Email: email}, map[string]string{
		"Email": "email",
	}); len(fields) > 0 {
		return s.failedStep(ctx, flowID, fields)
	}

	return s.step(ctx, flowID, "request", func(f *resetflow.Flow) FieldErrors {
		if res := s.upstream.RequestResetCode(ctx, email); !res.Success {
			return FieldErrors{"email": res.Error}
		}
		if err := f.EmailAccepted(email); err != nil {
			return FieldErrors{"email": "please start the reset over"}
		}
		return nil
	})
}

// verifyCodeForm carries the OTP step's input.
type verifyCodeForm struct {
	Code string `validate:"required,len=6,numeric"`
}

// VerifyCode validates the 6-digit code shape, verifies it upstream, and
// advances the flow to new-password entry on acknowledgment. Failures
// attach to the code field ("invalid or expired" style messages).
func (s *ResetService) VerifyCode(ctx context.Context, flowID, code string) (StepResult, error) {
	code = strings.TrimSpace(code)
	if fields := s.check(verifyCodeForm{Code: code}, map[string]string{
		"Code": "otp",
	}); len(fields) > 0 {
		return s.failedStep(ctx, flowID, fields)
	}

	return s.step(ctx, flowID, "verify", func(f *resetflow.Flow) FieldErrors {
		if f.Step != resetflow.StepOtpEntry {
			return FieldErrors{"otp": "please start the reset over"}
		}
		if res := s.upstream.VerifyResetCode(ctx, f.Email, code); !res.Success {
			return FieldErrors{"otp": res.Error}
		}
		if err := f.CodeVerified(code); err != nil {
			return FieldErrors{"otp": "please start the reset over"}
		}
		return nil
	})
}

// completeForm carries the final step's input.
type completeForm struct {
	NewPassword     string `validate:"required,min=8"`
	ConfirmPassword string `validate:"required,eqfield=NewPassword"`
}

// Complete validates the password pair, submits the reset upstream, and
// destroys the flow on success. The caller is expected to route to login.
func (s *ResetService) Complete(ctx context.Context, flowID, newPassword, confirmPassword string) (StepResult, error) {
	if fields := s.check(completeForm{NewPassword: newPassword, ConfirmPassword: confirmPassword}, map[string]string{
		"NewPassword":     "newPassword",
		"ConfirmPassword": "confirmPassword",
	}); len(fields) > 0 {
		return s.failedStep(ctx, flowID, fields)
	}

	res, err := s.step(ctx, flowID, "complete", func(f *resetflow.Flow) FieldErrors {
		if f.Step != resetflow.StepNewPassword {
			return FieldErrors{"newPassword": "please start the reset over"}
		}
		in := ports.CompleteResetInput{Email: f.Email, NewPassword: newPassword, Code: f.Code}
		if upRes := s.upstream.CompleteReset(ctx, in); !upRes.Success {
			return FieldErrors{"newPassword": upRes.Error}
		}
		if err := f.Completed(); err != nil {
			return FieldErrors{"newPassword": "please start the reset over"}
		}
		return nil
	})
	if err != nil || !res.Success {
		return res, err
	}

	// Flow is terminal; destroy the ephemeral state.
	if delErr := s.flows.Delete(ctx, flowID); delErr != nil {
		return res, fmt.Errorf("delete completed flow: %w", delErr)
	}
	return res, nil
}

// Back moves the flow one step backwards without any server contact.
func (s *ResetService) Back(ctx context.Context, flowID string) (StepResult, error) {
	f, err := s.flows.Get(ctx, flowID)
	if err != nil {
		return StepResult{}, fmt.Errorf("load flow: %w", err)
	}

	if backErr := f.Back(); backErr != nil {
		return StepResult{Flow: f, Fields: FieldErrors{"step": "cannot go back from here"}}, nil
	}
	if err := s.flows.Save(ctx, f); err != nil {
		return StepResult{}, fmt.Errorf("save flow: %w", err)
	}
	return StepResult{Success: true, Flow: f}, nil
}

// Get loads the current flow state.
func (s *ResetService) Get(ctx context.Context, flowID string) (resetflow.Flow, error) {
	f, err := s.flows.Get(ctx, flowID)
	if err != nil {
		return resetflow.Flow{}, fmt.Errorf("load flow: %w", err)
	}
	return f, nil
}

// step runs one network-backed flow action under the duplicate-submission
// guard: load, act, persist. A failing action leaves the flow at its
// current step with inline errors.
func (s *ResetService) step(ctx context.Context, flowID, op string, act func(*resetflow.Flow) FieldErrors) (StepResult, error) {
	key := flowID + ":" + op
	if !s.inflight.Begin(key) {
		return StepResult{}, ErrSubmitting
	}
	defer s.inflight.End(key)

	f, err := s.flows.Get(ctx, flowID)
	if err != nil {
		return StepResult{}, fmt.Errorf("load flow: %w", err)
	}

	if fields := act(&f); len(fields) > 0 {
		return StepResult{Flow: f, Fields: fields}, nil
	}

	if err := s.flows.Save(ctx, f); err != nil {
		return StepResult{}, fmt.Errorf("save flow: %w", err)
	}
	return StepResult{Success: true, Flow: f}, nil
}

// failedStep reports validation failures alongside the current flow state
// so the screen can re-render in place. The network is never touched.
func (s *ResetService) failedStep(ctx context.Context, flowID string, fields FieldErrors) (StepResult, error) {
	f, err := s.flows.Get(ctx, flowID)
	if err != nil {
		return StepResult{}, fmt.Errorf("load flow: %w", err)
	}
	return StepResult{Flow: f, Fields: fields}, nil
}

// check runs struct validation and converts violations into field-level
// messages using the given struct-field to form-field mapping.
func (s *ResetService) check(form any, names map[string]string) FieldErrors {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return FieldErrors{"form": "invalid input"}
	}

	fields := make(FieldErrors, len(ve))
	for _, fe := range ve {
		name := names[fe.StructField()]
		if name == "" {
			name = strings.ToLower(fe.StructField())
		}
		fields[name] = fieldMessage(name, fe)
	}
	return fields
}

// fieldMessage converts a single validation error into a human-readable
// inline message.
func fieldMessage(name string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return "enter a valid email address"
	case "len":
		return "code must be exactly " + fe.Param() + " digits"
	case "numeric":
		return "code must contain digits only"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "eqfield":
		return "passwords do not match"
	default:
		return name + " is invalid"
	}
}
