package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"sync"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	"github.com/kebelehub/rfm-ui-api/internal/domain/resetflow"
	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UpstreamAuth = (*MockUpstreamAuth)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
	_ ports.FlowStore    = (*MemoryFlowStore)(nil)
	_ ports.FlashStore   = (*MemoryFlashStore)(nil)
)

// MockUpstreamAuth simulates the remote auth API with deterministic
// defaults. Set the Func fields to override per-call behavior.
type MockUpstreamAuth struct {
	LoginFunc            func(ctx context.Context, username, password string) (domainauth.Principal, ports.Result)
	RequestResetCodeFunc func(ctx context.Context, email string) ports.Result
	VerifyResetCodeFunc  func(ctx context.Context, email, code string) ports.Result
	CompleteResetFunc    func(ctx context.Context, in ports.CompleteResetInput) ports.Result
	LogoutFunc           func(ctx context.Context) ports.Result

	// DefaultPrincipal is returned by Login when LoginFunc is unset.
	DefaultPrincipal domainauth.Principal

	// Call counters for asserting that (and how often) the network was hit.
	// Guarded by mu: tests exercise the duplicate-submission path from
	// multiple goroutines.
	mu                 sync.Mutex
	LoginCalls         int
	RequestCodeCalls   int
	VerifyCodeCalls    int
	CompleteResetCalls int
	LogoutCalls        int
}

func (m *MockUpstreamAuth) count(field *int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*field++
}

// NewMockUpstreamAuth creates a MockUpstreamAuth with a sensible default user.
func NewMockUpstreamAuth() *MockUpstreamAuth {
	return &MockUpstreamAuth{
		DefaultPrincipal: domainauth.Principal{
			ID:          "mock-user-1",
			DisplayName: "Mock User",
			Username:    "mockuser",
			Role:        domainauth.RoleStaff,
		},
	}
}

func (m *MockUpstreamAuth) Login(ctx context.Context, username, password string) (domainauth.Principal, ports.Result) {
	m.count(&m.LoginCalls)
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return m.DefaultPrincipal, ports.OK()
}

func (m *MockUpstreamAuth) RequestResetCode(ctx context.Context, email string) ports.Result {
	m.count(&m.RequestCodeCalls)
	if m.RequestResetCodeFunc != nil {
		return m.RequestResetCodeFunc(ctx, email)
	}
	return ports.OK()
}

func (m *MockUpstreamAuth) VerifyResetCode(ctx context.Context, email, code string) ports.Result {
	m.count(&m.VerifyCodeCalls)
	if m.VerifyResetCodeFunc != nil {
		return m.VerifyResetCodeFunc(ctx, email, code)
	}
	return ports.OK()
}

func (m *MockUpstreamAuth) CompleteReset(ctx context.Context, in ports.CompleteResetInput) ports.Result {
	m.count(&m.CompleteResetCalls)
	if m.CompleteResetFunc != nil {
		return m.CompleteResetFunc(ctx, in)
	}
	return ports.OK()
}

func (m *MockUpstreamAuth) Logout(ctx context.Context) ports.Result {
	m.count(&m.LogoutCalls)
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return ports.OK()
}

// MemorySessionStore is an in-memory ports.SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session

	CommitErr    error
	RehydrateErr error
	ClearErr     error
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Commit(_ context.Context, sess domainauth.Session) error {
	if m.CommitErr != nil {
		return m.CommitErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Rehydrate(_ context.Context, id string) (domainauth.Session, error) {
	if m.RehydrateErr != nil {
		return domainauth.Session{}, m.RehydrateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Clear(_ context.Context, id string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// MemoryFlowStore is an in-memory ports.FlowStore.
type MemoryFlowStore struct {
	mu    sync.Mutex
	flows map[string]resetflow.Flow
}

// NewMemoryFlowStore creates an empty in-memory flow store.
func NewMemoryFlowStore() *MemoryFlowStore {
	return &MemoryFlowStore{flows: make(map[string]resetflow.Flow)}
}

func (m *MemoryFlowStore) Save(_ context.Context, f resetflow.Flow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flows[f.ID] = f
	return nil
}

func (m *MemoryFlowStore) Get(_ context.Context, id string) (resetflow.Flow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.flows[id]
	if !ok {
		return resetflow.Flow{}, ErrNotFound
	}
	return f, nil
}

func (m *MemoryFlowStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flows, id)
	return nil
}

// MemoryFlashStore is an in-memory ports.FlashStore.
type MemoryFlashStore struct {
	mu     sync.Mutex
	queues map[string][]ports.Flash
}

// NewMemoryFlashStore creates an empty in-memory flash store.
func NewMemoryFlashStore() *MemoryFlashStore {
	return &MemoryFlashStore{queues: make(map[string][]ports.Flash)}
}

func (m *MemoryFlashStore) Push(_ context.Context, sessionID string, f ports.Flash) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queues[sessionID] = append(m.queues[sessionID], f)
	return nil
}

func (m *MemoryFlashStore) Drain(_ context.Context, sessionID string) ([]ports.Flash, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.queues[sessionID]
	delete(m.queues, sessionID)
	return out, nil
}

// ErrNotFound mirrors the adapter sentinel for absent records.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}
