package upstream

import (
	"context"
	"encoding/json"

	domainauth "github.com/kebelehub/rfm-ui-api/internal/domain/auth"
	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

// Fixed endpoints of the upstream auth API.
const (
	pathLogin          = "/auth/login"
	pathForgotPassword = "/auth/forgot-password"
	pathVerifyOTP      = "/auth/verify-otp"
	pathResetPassword  = "/auth/reset-password"
	pathLogout         = "/auth/logout"
)

// Compile-time conformance.
var _ ports.UpstreamAuth = (*Client)(nil)

// Login authenticates against the upstream API. On success the returned
// principal is decoded from the envelope's user object; the raw role string
// is normalized into the closed Role set.
func (c *Client) Login(ctx context.Context, username, password string) (domainauth.Principal, ports.Result) {
	payload := map[string]string{"username": username, "password": password}
	env, err := c.postJSON(ctx, pathLogin, payload)
	if err != nil {
		c.logger.Warn("login call failed", "error", err)
		return domainauth.Principal{}, ports.Fail(genericFailure)
	}
	if !env.Success {
		return domainauth.Principal{}, ports.Fail(failureMessage(env))
	}

	var principal domainauth.Principal
	if len(env.User) == 0 {
		c.logger.Warn("login succeeded without user payload")
		return domainauth.Principal{}, ports.Fail(genericFailure)
	}
	if decodeErr := json.Unmarshal(env.User, &principal); decodeErr != nil {
		c.logger.Warn("decode principal", "error", decodeErr)
		return domainauth.Principal{}, ports.Fail(genericFailure)
	}
	if _, ok := domainauth.ParseRole(string(principal.Role)); !ok {
		c.logger.Warn("login returned unknown role", "role", principal.Role)
		return domainauth.Principal{}, ports.Fail(genericFailure)
	}

	return principal, ports.OK()
}

// RequestResetCode asks the server to send a one-time code to the email.
func (c *Client) RequestResetCode(ctx context.Context, email string) ports.Result {
	return c.simplePost(ctx, pathForgotPassword, map[string]string{"email": email})
}

// VerifyResetCode checks the one-time code for the email.
func (c *Client) VerifyResetCode(ctx context.Context, email, code string) ports.Result {
	return c.simplePost(ctx, pathVerifyOTP, map[string]string{"email": email, "otp": code})
}

// CompleteReset sets the new password.
func (c *Client) CompleteReset(ctx context.Context, in ports.CompleteResetInput) ports.Result {
	return c.simplePost(ctx, pathResetPassword, map[string]string{
		"email":       in.Email,
		"newPassword": in.NewPassword,
		"otp":         in.Code,
	})
}

// Logout invalidates the upstream session. Best-effort: callers ignore
// failures beyond logging.
func (c *Client) Logout(ctx context.Context) ports.Result {
	return c.simplePost(ctx, pathLogout, struct{}{})
}

// simplePost runs one POST whose response carries no payload beyond the
// success envelope.
func (c *Client) simplePost(ctx context.Context, path string, payload any) ports.Result {
	env, err := c.postJSON(ctx, path, payload)
	if err != nil {
		c.logger.Warn("upstream call failed", "path", path, "error", err)
		return ports.Fail(genericFailure)
	}
	if !env.Success {
		return ports.Fail(failureMessage(env))
	}
	return ports.OK()
}
