package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kebelehub/rfm-ui-api/internal/domain/resetflow"
	mocks "github.com/kebelehub/rfm-ui-api/internal/mocks/auth"
	"github.com/kebelehub/rfm-ui-api/internal/ports"
)

func newTestResetService(upstream *mocks.MockUpstreamAuth) (*ResetService, *mocks.MemoryFlowStore) {
	flows := mocks.NewMemoryFlowStore()
	svc := NewResetService(ResetServiceOptions{
		Upstream: upstream,
		Flows:    flows,
	})
	return svc, flows
}

func TestResetService_HappyPath(t *testing.T) {
	upstream := mocks.NewMockUpstreamAuth()
	svc, flows := newTestResetService(upstream)
	ctx := context.Background()

	flow, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, resetflow.StepEmailEntry, flow.Step)

	res, err := svc.RequestCode(ctx, flow.ID, "user@example.com")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, resetflow.StepOtpEntry, res.Flow.Step)

	res, err = svc.VerifyCode(ctx, flow.ID, "123456")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.Equal(t, resetflow.StepNewPassword, res.Flow.Step)

	// Email and OTP never need re-entering after advancement.
	assert.Equal(t, "user@example.com", res.Flow.Email)
	assert.Equal(t, "123456", res.Flow.Code)

	res, err = svc.Complete(ctx, flow.ID, "Passw0rd!", "Passw0rd!")
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.True(t, res.Flow.Done())

	// The upstream receives the values entered across steps.
	assert.Equal(t, 1, upstream.CompleteResetCalls)

	// Ephemeral flow state destroyed on completion.
	_, err = flows.Get(ctx, flow.ID)
	assert.Error(t, err)
}

func TestResetService_InvalidEmailNeverSent(t *testing.T) {
	upstream := mocks.NewMockUpstreamAuth()
	svc, _ := newTestResetService(upstream)
	ctx := context.Background()

	flow, err := svc.Start(ctx)
	require.NoError(t, err)

	res, err := svc.RequestCode(ctx, flow.ID, "not-an-email")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Fields, "email")
	assert.Zero(t, upstream.RequestCodeCalls, "validation failures stay off the network")
	assert.Equal(t, resetflow.StepEmailEntry, res.Flow.Step)
}

func TestResetService_OtpShapeValidatedClientSide(t *testing.T) {
	upstream := mocks.NewMockUpstreamAuth()
	svc, _ := newTestResetService(upstream)
	ctx := context.Background()

	flow, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.RequestCode(ctx, flow.ID, "user@example.com")
	require.NoError(t, err)

	for _, bad := range []string{"", "12345", "1234567", "12345a"} {
		res, verr := svc.VerifyCode(ctx, flow.ID, bad)
		require.NoError(t, verr)
		assert.False(t, res.Success, "otp %q", bad)
		assert.Contains(t, res.Fields, "otp")
	}
	assert.Zero(t, upstream.VerifyCodeCalls)
}

func TestResetService_ServerRejectionStaysOnStep(t *testing.T) {
	upstream := &mocks.MockUpstreamAuth{
		VerifyResetCodeFunc: func(context.Context, string, string) ports.Result {
			return ports.Fail("invalid or expired code")
		},
	}
	svc, _ := newTestResetService(upstream)
	ctx := context.Background()

	flow, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.RequestCode(ctx, flow.ID, "user@example.com")
	require.NoError(t, err)

	res, err := svc.VerifyCode(ctx, flow.ID, "123456")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "invalid or expired code", res.Fields["otp"])
	assert.Equal(t, resetflow.StepOtpEntry, res.Flow.Step, "failure leaves the flow on its current step")
}

func TestResetService_MismatchedPasswordsBlockCompleteReset(t *testing.T) {
	upstream := mocks.NewMockUpstreamAuth()
	svc, _ := newTestResetService(upstream)
	ctx := context.Background()

	flow, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.RequestCode(ctx, flow.ID, "user@example.com")
	require.NoError(t, err)
	_, err = svc.VerifyCode(ctx, flow.ID, "123456")
	require.NoError(t, err)

	res, err := svc.Complete(ctx, flow.ID, "Passw0rd!", "Different1")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Fields, "confirmPassword")
	assert.Zero(t, upstream.CompleteResetCalls, "completeReset must never be invoked on mismatch")

	// Too-short passwords are also blocked client-side.
	res, err = svc.Complete(ctx, flow.ID, "short", "short")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Fields, "newPassword")
	assert.Zero(t, upstream.CompleteResetCalls)
}

func TestResetService_BackNeverContactsServer(t *testing.T) {
	upstream := mocks.NewMockUpstreamAuth()
	svc, _ := newTestResetService(upstream)
	ctx := context.Background()

	flow, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.RequestCode(ctx, flow.ID, "user@example.com")
	require.NoError(t, err)
	_, err = svc.VerifyCode(ctx, flow.ID, "123456")
	require.NoError(t, err)

	requestCalls, verifyCalls := upstream.RequestCodeCalls, upstream.VerifyCodeCalls

	res, err := svc.Back(ctx, flow.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, resetflow.StepOtpEntry, res.Flow.Step)
	assert.Empty(t, res.Flow.Code)
	assert.Equal(t, "user@example.com", res.Flow.Email, "email survives going back")

	assert.Equal(t, requestCalls, upstream.RequestCodeCalls)
	assert.Equal(t, verifyCalls, upstream.VerifyCodeCalls)
}

func TestResetService_DuplicateSubmissionRejected(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	upstream := &mocks.MockUpstreamAuth{
		RequestResetCodeFunc: func(context.Context, string) ports.Result {
			close(started)
			<-release
			return ports.OK()
		},
	}
	svc, _ := newTestResetService(upstream)
	ctx := context.Background()

	flow, err := svc.Start(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = svc.RequestCode(ctx, flow.ID, "user@example.com")
	}()

	<-started
	// The first submission is in flight; a duplicate must be rejected.
	_, err = svc.RequestCode(ctx, flow.ID, "user@example.com")
	assert.ErrorIs(t, err, ErrSubmitting)

	close(release)
	wg.Wait()

	// Settled: the guard is released for the next step's submission.
	res, err := svc.VerifyCode(ctx, flow.ID, "123456")
	require.NoError(t, err)
	assert.True(t, res.Success)
}
