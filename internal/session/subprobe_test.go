package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintlab/deepscope/internal/models"
	"github.com/osintlab/deepscope/internal/osint"
	ws "github.com/osintlab/deepscope/internal/websocket"
)

type fakeUsernameInvestigator struct {
	fn func(ctx context.Context, username string) (*models.UsernameReport, error)
}

func (f *fakeUsernameInvestigator) InvestigateUsername(ctx context.Context, username string) (*models.UsernameReport, error) {
	return f.fn(ctx, username)
}

func usernameReport(username string) *models.UsernameReport {
	return &models.UsernameReport{
		Username:         username,
		Probability:      72,
		Confidence:       "High",
		PlatformsFound:   5,
		PlatformsChecked: 8,
	}
}

func TestSubController_Investigate(t *testing.T) {
	rec := &recorder{}
	var probed string
	client := &fakeUsernameInvestigator{fn: func(_ context.Context, username string) (*models.UsernameReport, error) {
		probed = username
		return usernameReport(username), nil
	}}
	ctrl := NewSubController(client, rec)

	report, err := ctrl.Investigate(context.Background(), "jdoe99")
	require.NoError(t, err)
	assert.Equal(t, "jdoe99", probed)
	assert.Equal(t, "High", report.Confidence)

	snap := ctrl.Snapshot()
	assert.Equal(t, SubStateIdle, snap.State)
	assert.Equal(t, report, snap.Report)
	assert.Empty(t, snap.Error)
}

func TestSubController_EmptyUsername(t *testing.T) {
	client := &fakeUsernameInvestigator{fn: func(context.Context, string) (*models.UsernameReport, error) {
		t.Fatal("backend must not be reached for an empty username")
		return nil, nil
	}}
	ctrl := NewSubController(client, &recorder{})

	_, err := ctrl.Investigate(context.Background(), "   ")
	require.ErrorIs(t, err, ErrMissingUsername)
}

func TestSubController_ErrorStaysInOwnSlot(t *testing.T) {
	rec := &recorder{}
	client := &fakeUsernameInvestigator{fn: func(context.Context, string) (*models.UsernameReport, error) {
		return nil, &osint.ServiceError{Message: "Username required"}
	}}
	ctrl := NewSubController(client, rec)

	_, err := ctrl.Investigate(context.Background(), "jdoe99")
	require.Error(t, err)

	snap := ctrl.Snapshot()
	assert.Equal(t, SubStateIdle, snap.State)
	assert.Equal(t, "Username required", snap.Error)
	assert.Nil(t, snap.Report)

	// The error is announced on the sub-flow channel, never on the primary
	// session channel.
	subErrors := rec.ofType(ws.EventSubError)
	require.Len(t, subErrors, 1)
	assert.Empty(t, rec.ofType(ws.EventState))
}

func TestSubController_LastSettlingProbeWins(t *testing.T) {
	rec := &recorder{}
	release := make(chan struct{})
	var calls atomic.Int32
	client := &fakeUsernameInvestigator{fn: func(_ context.Context, username string) (*models.UsernameReport, error) {
		if calls.Add(1) == 1 {
			<-release
		}
		return usernameReport(username), nil
	}}
	ctrl := NewSubController(client, rec)

	firstDone := make(chan error, 1)
	go func() {
		_, err := ctrl.Investigate(context.Background(), "jodoe")
		firstDone <- err
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	report, err := ctrl.Investigate(context.Background(), "jdoe99")
	require.NoError(t, err)
	require.Equal(t, "jdoe99", report.Username)

	close(release)
	require.ErrorIs(t, <-firstDone, ErrSuperseded)

	assert.Equal(t, "jdoe99", ctrl.Snapshot().Report.Username,
		"the displaced probe must not replace the newer report")
}
