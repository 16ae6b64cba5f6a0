package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOfficer   Role = "officer"
	RoleResident  Role = "resident"
	RoleStaff     Role = "staff"
	RoleDataClerk Role = "data_clerk"
)

// ParseRole normalizes a role string received from the upstream API into a
// known Role. The second return value is false for anything outside the
// closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleOfficer, RoleResident, RoleStaff, RoleDataClerk:
		return Role(s), true
	}
	return "", false
}

// Notification is one entry of the principal's notification feed.
// Insertion order is recency order; the feed is served as received.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
}

// Principal is the authenticated user as returned by the upstream auth API.
// It is persisted verbatim into the session store and rehydrated on every
// request carrying a session cookie.
type Principal struct {
	ID            string         `json:"id"`
	DisplayName   string         `json:"display_name"`
	Username      string         `json:"username"`
	Avatar        string         `json:"avatar"`
	Role          Role           `json:"role"`
	Notifications []Notification `json:"notifications,omitempty"`
}

// Session is the server-side record persisted for an authenticated browser.
// ID is an opaque session identifier (e.g., random URL-safe string).
// At most one live Principal exists per session; authentication state is
// derived from principal presence, never set independently.
type Session struct {
	ID        string    `json:"id"`
	Principal Principal `json:"principal"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAuthenticated reports whether the session carries a live principal.
func (s Session) IsAuthenticated() bool { return s.Principal.ID != "" }

// HasRole reports set membership of the session's role in allowed.
func (s Session) HasRole(allowed ...Role) bool {
	for _, r := range allowed {
		if s.Principal.Role == r {
			return true
		}
	}
	return false
}
