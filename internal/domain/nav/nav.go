// Package nav computes role-gated navigation. It is a pure view over a
// static entry table: no network calls and no mutation of shared state.
package nav

import (
	"strings"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
)

// Entry is one navigation item. Roles is the closed set of roles allowed
// to see the entry; an empty Roles set marks the entry public (visible to
// unauthenticated browsers, e.g. the login screen).
type Entry struct {
	Title string            `json:"title"`
	Path  string            `json:"path"`
	Icon  string            `json:"icon"`
	Roles []domainauth.Role `json:"-"`
}

// allows reports whether the entry's role set contains role.
func (e Entry) allows(role domainauth.Role) bool {
	for _, r := range e.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Public reports whether the entry is visible without a principal.
func (e Entry) Public() bool { return len(e.Roles) == 0 }

// DefaultEntries is the application navigation table. Order here is render
// order; Visible preserves it.
func DefaultEntries() []Entry {
	return []Entry{
		{Title: "Dashboard", Path: "/", Icon: "home", Roles: []domainauth.Role{
			domainauth.RoleAdmin, domainauth.RoleOfficer, domainauth.RoleStaff, domainauth.RoleDataClerk, domainauth.RoleResident,
		}},
		{Title: "Register", Path: "/residents/register", Icon: "user-plus", Roles: []domainauth.Role{
			domainauth.RoleAdmin, domainauth.RoleStaff, domainauth.RoleDataClerk,
		}},
		{Title: "residentsALL", Path: "/residents", Icon: "users", Roles: []domainauth.Role{
			domainauth.RoleAdmin, domainauth.RoleOfficer,
		}},
		{Title: "ManageRequests", Path: "/requests", Icon: "inbox", Roles: []domainauth.Role{
			domainauth.RoleAdmin, domainauth.RoleOfficer, domainauth.RoleStaff,
		}},
		{Title: "Documents", Path: "/documents", Icon: "file-text", Roles: []domainauth.Role{
			domainauth.RoleAdmin, domainauth.RoleOfficer, domainauth.RoleStaff, domainauth.RoleResident,
		}},
		{Title: "Certificates", Path: "/certificates", Icon: "award", Roles: []domainauth.Role{
			domainauth.RoleAdmin, domainauth.RoleOfficer, domainauth.RoleResident,
		}},
		{Title: "Notifications", Path: "/notifications", Icon: "bell", Roles: []domainauth.Role{
			domainauth.RoleAdmin, domainauth.RoleOfficer, domainauth.RoleStaff, domainauth.RoleDataClerk, domainauth.RoleResident,
		}},
		{Title: "reports", Path: "/reports", Icon: "bar-chart", Roles: []domainauth.Role{
			domainauth.RoleAdmin, domainauth.RoleOfficer,
		}},
		{Title: "AuditLog", Path: "/audit", Icon: "shield", Roles: []domainauth.Role{
			domainauth.RoleAdmin,
		}},
	}
}

// Visible returns the ordered sub-sequence of entries the given session may
// see. A nil session (no principal) is fail-closed: only public entries are
// returned, never the unfiltered table.
func Visible(entries []Entry, session *domainauth.Session) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if session == nil || !session.IsAuthenticated() {
			if e.Public() {
				out = append(out, e)
			}
			continue
		}
		if e.Public() || e.allows(session.Principal.Role) {
			out = append(out, e)
		}
	}
	return out
}

// IsActive reports whether the entry should render as active for the
// current path. The root entry matches only exactly; every other entry
// matches by path prefix, so /residents stays active on /residents/edit/42.
func IsActive(e Entry, currentPath string) bool {
	if e.Path == "/" {
		return currentPath == "/"
	}
	if !strings.HasPrefix(currentPath, e.Path) {
		return false
	}
	// Reject sibling prefixes like /residents-archive for entry /residents.
	rest := currentPath[len(e.Path):]
	return rest == "" || strings.HasPrefix(rest, "/")
}
