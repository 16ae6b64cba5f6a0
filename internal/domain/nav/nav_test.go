package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
)

func sessionWithRole(role domainauth.Role) *domainauth.Session {
	return &domainauth.Session{
		ID:        "s-1",
		Principal: domainauth.Principal{ID: "u-1", Role: role},
	}
}

func titles(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return out
}

func TestVisible_StaffRole(t *testing.T) {
	visible := Visible(DefaultEntries(), sessionWithRole(domainauth.RoleStaff))

	got := titles(visible)
	assert.Contains(t, got, "Register")
	assert.Contains(t, got, "ManageRequests")
	assert.NotContains(t, got, "residentsALL")
	assert.NotContains(t, got, "reports")
}

func TestVisible_AdminSeesAll(t *testing.T) {
	entries := DefaultEntries()
	visible := Visible(entries, sessionWithRole(domainauth.RoleAdmin))
	assert.Len(t, visible, len(entries))
}

func TestVisible_PreservesOrder(t *testing.T) {
	entries := DefaultEntries()
	visible := Visible(entries, sessionWithRole(domainauth.RoleOfficer))

	require.NotEmpty(t, visible)
	// Every visible entry must appear in the same relative order as the table.
	idx := 0
	for _, e := range visible {
		for idx < len(entries) && entries[idx].Title != e.Title {
			idx++
		}
		require.Less(t, idx, len(entries), "entry %q out of table order", e.Title)
	}
}

func TestVisible_NoSessionFailsClosed(t *testing.T) {
	entries := append(DefaultEntries(), Entry{Title: "Login", Path: "/login", Icon: "log-in"})

	visible := Visible(entries, nil)

	assert.Equal(t, []string{"Login"}, titles(visible))

	// An unauthenticated (zero-principal) session behaves the same.
	visible = Visible(entries, &domainauth.Session{ID: "s-0"})
	assert.Equal(t, []string{"Login"}, titles(visible))
}

func TestIsActive(t *testing.T) {
	root := Entry{Title: "Dashboard", Path: "/"}
	residents := Entry{Title: "residentsALL", Path: "/residents"}

	assert.True(t, IsActive(root, "/"))
	assert.False(t, IsActive(root, "/residents"))

	assert.True(t, IsActive(residents, "/residents"))
	assert.True(t, IsActive(residents, "/residents/edit/42"))
	assert.False(t, IsActive(residents, "/residents-archive"))
	assert.False(t, IsActive(residents, "/reports"))
}
