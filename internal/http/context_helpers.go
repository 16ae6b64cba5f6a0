package httpx

import (
	"context"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
)

// sessionKey is the private context key for the authenticated session.
// Keeping it in one place guarantees middleware and handlers agree on it.
type sessionKey struct{}

// SetSessionInContext attaches session to ctx. A nil session leaves ctx
// untouched so callers can pass through whatever the middleware resolved.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetUserSessionFromContext returns the session stored on ctx, if any.
func GetUserSessionFromContext(ctx context.Context) (*domainauth.Session, bool) {
	if session, ok := ctx.Value(sessionKey{}).(*domainauth.Session); ok && session != nil {
		return session, true
	}
	return nil, false
}

// GetSessionFromContext is the single-value form for handlers that treat
// a missing session as nil rather than branching on presence.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	if s, ok := GetUserSessionFromContext(ctx); ok {
		return s
	}
	return nil
}
