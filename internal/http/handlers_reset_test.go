package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/kebelehub/rfm-ui-api/internal/domain/resetflow"
	"github.com/kebelehub/rfm-ui-api/internal/service"
)

// mockResetService is a test double for service.ResetService.
type mockResetService struct {
	startFunc       func(ctx context.Context) (resetflow.Flow, error)
	requestCodeFunc func(ctx context.Context, flowID, email string) (service.StepResult, error)
	verifyCodeFunc  func(ctx context.Context, flowID, code string) (service.StepResult, error)
	completeFunc    func(ctx context.Context, flowID, newPassword, confirmPassword string) (service.StepResult, error)
	backFunc        func(ctx context.Context, flowID string) (service.StepResult, error)
	getFunc         func(ctx context.Context, flowID string) (resetflow.Flow, error)
}

func (m *mockResetService) Start(ctx context.Context) (resetflow.Flow, error) {
	if m.startFunc != nil {
		return m.startFunc(ctx)
	}
	return resetflow.New("flow-1"), nil
}

func (m *mockResetService) RequestCode(ctx context.Context, flowID, email string) (service.StepResult, error) {
	if m.requestCodeFunc != nil {
		return m.requestCodeFunc(ctx, flowID, email)
	}
	flow := resetflow.New(flowID)
	_ = flow.EmailAccepted(email)
	return service.StepResult{Success: true, Flow: flow}, nil
}

func (m *mockResetService) VerifyCode(ctx context.Context, flowID, code string) (service.StepResult, error) {
	if m.verifyCodeFunc != nil {
		return m.verifyCodeFunc(ctx, flowID, code)
	}
	return service.StepResult{}, errors.New("not configured")
}

func (m *mockResetService) Complete(ctx context.Context, flowID, newPassword, confirmPassword string) (service.StepResult, error) {
	if m.completeFunc != nil {
		return m.completeFunc(ctx, flowID, newPassword, confirmPassword)
	}
	return service.StepResult{}, errors.New("not configured")
}

func (m *mockResetService) Back(ctx context.Context, flowID string) (service.StepResult, error) {
	if m.backFunc != nil {
		return m.backFunc(ctx, flowID)
	}
	return service.StepResult{}, errors.New("not configured")
}

func (m *mockResetService) Get(ctx context.Context, flowID string) (resetflow.Flow, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, flowID)
	}
	return resetflow.Flow{}, errors.New("not found")
}

func resetCookie(value string) *http.Cookie {
	return &http.Cookie{Name: "reset_flow", Value: value}
}

func TestResetHandlers_RequestCode_StartsFlowAndSetsCookie(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password",
		strings.NewReader(`{"email":"chaltu@example.com"}`))
	rec := httptest.NewRecorder()

	handlers.RequestCode(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, string(resetflow.StepOtpEntry), body["step"])
	assert.Equal(t, "chaltu@example.com", body["email"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "reset_flow", cookies[0].Name)
	assert.Equal(t, "flow-1", cookies[0].Value)
}

func TestResetHandlers_RequestCode_ReusesExistingFlow(t *testing.T) {
	var gotFlowID string
	handlers := &ResetHandlers{Svc: &mockResetService{
		requestCodeFunc: func(_ context.Context, flowID, email string) (service.StepResult, error) {
			gotFlowID = flowID
			flow := resetflow.New(flowID)
			_ = flow.EmailAccepted(email)
			return service.StepResult{Success: true, Flow: flow}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password",
		strings.NewReader(`{"email":"chaltu@example.com"}`))
	req.AddCookie(resetCookie("existing-flow"))
	rec := httptest.NewRecorder()

	handlers.RequestCode(rec, req)

	assert.Equal(t, "existing-flow", gotFlowID)
	assert.Empty(t, rec.Result().Cookies(), "no new cookie when a flow exists")
}

func TestResetHandlers_RequestCode_ValidationErrorStaysOnStep(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{
		requestCodeFunc: func(_ context.Context, flowID, _ string) (service.StepResult, error) {
			return service.StepResult{
				Flow:   resetflow.New(flowID),
				Fields: service.FieldErrors{"email": "enter a valid email address"},
			}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password",
		strings.NewReader(`{"email":"nope"}`))
	req.AddCookie(resetCookie("flow-1"))
	rec := httptest.NewRecorder()

	handlers.RequestCode(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, string(resetflow.StepEmailEntry), body["step"])
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "enter a valid email address", fields["email"])
}

func TestResetHandlers_VerifyCode_NoFlow(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp",
		strings.NewReader(`{"otp":"123456"}`))
	rec := httptest.NewRecorder()

	handlers.VerifyCode(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResetHandlers_VerifyCode_DuplicateSubmission(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{
		verifyCodeFunc: func(_ context.Context, _, _ string) (service.StepResult, error) {
			return service.StepResult{}, service.ErrSubmitting
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp",
		strings.NewReader(`{"otp":"123456"}`))
	req.AddCookie(resetCookie("flow-1"))
	rec := httptest.NewRecorder()

	handlers.VerifyCode(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestResetHandlers_Complete_Success(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{
		completeFunc: func(_ context.Context, flowID, _, _ string) (service.StepResult, error) {
			return service.StepResult{
				Success: true,
				Flow:    resetflow.Flow{ID: flowID, Step: resetflow.StepDone},
			}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password",
		strings.NewReader(`{"newPassword":"s3cret-pass","confirmPassword":"s3cret-pass"}`))
	req.AddCookie(resetCookie("flow-1"))
	rec := httptest.NewRecorder()

	handlers.Complete(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "/login", body["redirect_to"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "reset_flow", cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0, "flow cookie must be destroyed")
}

func TestResetHandlers_ExpiredFlowTellsBrowserToStartOver(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{
		verifyCodeFunc: func(_ context.Context, _, _ string) (service.StepResult, error) {
			return service.StepResult{}, errors.New("get flow: not found")
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp",
		strings.NewReader(`{"otp":"123456"}`))
	req.AddCookie(resetCookie("gone"))
	rec := httptest.NewRecorder()

	handlers.VerifyCode(rec, req)

	assert.Equal(t, http.StatusGone, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestResetHandlers_Back_RetainsEmail(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{
		backFunc: func(_ context.Context, flowID string) (service.StepResult, error) {
			return service.StepResult{
				Success: true,
				Flow: resetflow.Flow{
					ID:    flowID,
					Step:  resetflow.StepOtpEntry,
					Email: "chaltu@example.com",
				},
			}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset/back", nil)
	req.AddCookie(resetCookie("flow-1"))
	rec := httptest.NewRecorder()

	handlers.Back(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, string(resetflow.StepOtpEntry), body["step"])
	assert.Equal(t, "chaltu@example.com", body["email"])
}

func TestResetHandlers_Step_ResumesFlow(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{
		getFunc: func(_ context.Context, flowID string) (resetflow.Flow, error) {
			return resetflow.Flow{ID: flowID, Step: resetflow.StepNewPassword, Email: "chaltu@example.com"}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/reset", nil)
	req.AddCookie(resetCookie("flow-1"))
	rec := httptest.NewRecorder()

	handlers.Step(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, string(resetflow.StepNewPassword), body["step"])
	assert.Equal(t, "chaltu@example.com", body["email"])
}

func TestResetHandlers_Step_ExpiredFlow(t *testing.T) {
	handlers := &ResetHandlers{Svc: &mockResetService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/reset", nil)
	req.AddCookie(resetCookie("gone"))
	rec := httptest.NewRecorder()

	handlers.Step(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
