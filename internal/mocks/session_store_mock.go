// Code generated by MockGen. DO NOT EDIT.
// Source: github.com/kebelehub/rfm-ui-api/internal/ports (interfaces: SessionStore)
//
// Generated by this command:
//
//	mockgen -package=mocks -destination=session_store_mock.go github.com/kebelehub/rfm-ui-api/internal/ports SessionStore
//

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	auth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	gomock "go.uber.org/mock/gomock"
)

// MockSessionStore is a mock of SessionStore interface.
type MockSessionStore struct {
	ctrl     *gomock.Controller
	recorder *MockSessionStoreMockRecorder
	isgomock struct{}
}

// MockSessionStoreMockRecorder is the mock recorder for MockSessionStore.
type MockSessionStoreMockRecorder struct {
	mock *MockSessionStore
}

// NewMockSessionStore creates a new mock instance.
func NewMockSessionStore(ctrl *gomock.Controller) *MockSessionStore {
	mock := &MockSessionStore{ctrl: ctrl}
	mock.recorder = &MockSessionStoreMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSessionStore) EXPECT() *MockSessionStoreMockRecorder {
	return m.recorder
}

// Clear mocks base method.
func (m *MockSessionStore) Clear(ctx context.Context, id string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Clear", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// Clear indicates an expected call of Clear.
func (mr *MockSessionStoreMockRecorder) Clear(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Clear", reflect.TypeOf((*MockSessionStore)(nil).Clear), ctx, id)
}

// Commit mocks base method.
func (m *MockSessionStore) Commit(ctx context.Context, sess auth.Session) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Commit", ctx, sess)
	ret0, _ := ret[0].(error)
	return ret0
}

// Commit indicates an expected call of Commit.
func (mr *MockSessionStoreMockRecorder) Commit(ctx, sess any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Commit", reflect.TypeOf((*MockSessionStore)(nil).Commit), ctx, sess)
}

// Rehydrate mocks base method.
func (m *MockSessionStore) Rehydrate(ctx context.Context, id string) (auth.Session, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rehydrate", ctx, id)
	ret0, _ := ret[0].(auth.Session)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Rehydrate indicates an expected call of Rehydrate.
func (mr *MockSessionStoreMockRecorder) Rehydrate(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rehydrate", reflect.TypeOf((*MockSessionStore)(nil).Rehydrate), ctx, id)
}
