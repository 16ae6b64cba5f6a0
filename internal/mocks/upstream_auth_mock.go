// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/kebelehub/rfm-ui-api/internal/ports (interfaces: UpstreamAuth)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=upstream_auth_mock.go github.com/kebelehub/rfm-ui-api/internal/ports UpstreamAuth
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	auth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	ports "github.com/kebelehub/rfm-ui-api/internal/ports"
	gomock "go.uber.org/mock/gomock"
)

// MockUpstreamAuth is a mock of UpstreamAuth interface.
type MockUpstreamAuth struct {
	ctrl     *gomock.Controller
	recorder *MockUpstreamAuthMockRecorder
	isgomock struct{}
}

// MockUpstreamAuthMockRecorder is the mock recorder for MockUpstreamAuth.
type MockUpstreamAuthMockRecorder struct {
	mock *MockUpstreamAuth
}

// NewMockUpstreamAuth creates a new mock instance.
func NewMockUpstreamAuth(ctrl *gomock.Controller) *MockUpstreamAuth {
	mock := &MockUpstreamAuth{ctrl: ctrl}
	mock.recorder = &MockUpstreamAuthMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockUpstreamAuth) EXPECT() *MockUpstreamAuthMockRecorder {
	return m.recorder
}

// CompleteReset mocks base method.
func (m *MockUpstreamAuth) CompleteReset(ctx context.Context, in ports.CompleteResetInput) ports.Result {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CompleteReset", ctx, in)
	ret0, _ := ret[0].(ports.Result)
	return ret0
}

// CompleteReset indicates an expected call of CompleteReset.
func (mr *MockUpstreamAuthMockRecorder) CompleteReset(ctx, in any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CompleteReset", reflect.TypeOf((*MockUpstreamAuth)(nil).CompleteReset), ctx, in)
}

// Login mocks base method.
func (m *MockUpstreamAuth) Login(ctx context.Context, username, password string) (auth.Principal, ports.Result) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Login", ctx, username, password)
	ret0, _ := ret[0].(auth.Principal)
	ret1, _ := ret[1].(ports.Result)
	return ret0, ret1
}

// Login indicates an expected call of Login.
func (mr *MockUpstreamAuthMockRecorder) Login(ctx, username, password any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Login", reflect.TypeOf((*MockUpstreamAuth)(nil).Login), ctx, username, password)
}

// Logout mocks base method.
func (m *MockUpstreamAuth) Logout(ctx context.Context) ports.Result {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Logout", ctx)
	ret0, _ := ret[0].(ports.Result)
	return ret0
}

// Logout indicates an expected call of Logout.
func (mr *MockUpstreamAuthMockRecorder) Logout(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Logout", reflect.TypeOf((*MockUpstreamAuth)(nil).Logout), ctx)
}

// RequestResetCode mocks base method.
func (m *MockUpstreamAuth) RequestResetCode(ctx context.Context, email string) ports.Result {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RequestResetCode", ctx, email)
	ret0, _ := ret[0].(ports.Result)
	return ret0
}

// RequestResetCode indicates an expected call of RequestResetCode.
func (mr *MockUpstreamAuthMockRecorder) RequestResetCode(ctx, email any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RequestResetCode", reflect.TypeOf((*MockUpstreamAuth)(nil).RequestResetCode), ctx, email)
}

// VerifyResetCode mocks base method.
func (m *MockUpstreamAuth) VerifyResetCode(ctx context.Context, email, code string) ports.Result {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "VerifyResetCode", ctx, email, code)
	ret0, _ := ret[0].(ports.Result)
	return ret0
}

// VerifyResetCode indicates an expected call of VerifyResetCode.
func (mr *MockUpstreamAuthMockRecorder) VerifyResetCode(ctx, email, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "VerifyResetCode", reflect.TypeOf((*MockUpstreamAuth)(nil).VerifyResetCode), ctx, email, code)
}
