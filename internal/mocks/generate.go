// Package mocks provides mock implementations for testing the resident UI service.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the
// upstream port interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	upstream := mocks.NewMockUpstreamAuth(ctrl)
//	upstream.EXPECT().Login(gomock.Any(), "kebede", "secret").Return(principal, ports.Result{Success: true})
package mocks

// Generate mock for UpstreamAuth from internal/ports. This creates
// MockUpstreamAuth with Login, RequestResetCode, VerifyResetCode,
// CompleteReset and Logout.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=upstream_auth_mock.go github.com/kebelehub/rfm-ui-api/internal/ports UpstreamAuth

// Generate mock for SessionStore from internal/ports. This creates
// MockSessionStore with Commit, Rehydrate and Clear.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/kebelehub/rfm-ui-api/internal/ports SessionStore
