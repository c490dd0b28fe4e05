package session

import (
	"context"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/osintlab/deepscope/internal/models"
	ws "github.com/osintlab/deepscope/internal/websocket"
)

// SubState enumerates the sub-investigation lifecycle: Idle → Investigating
// → Idle. Only one sub-investigation is displayed at a time; a newer probe
// replaces the pending one.
type SubState string

const (
	SubStateIdle          SubState = "idle"
	SubStateInvestigating SubState = "investigating"
)

// UsernameInvestigator is the secondary-call dependency; *osint.Client
// satisfies it.
type UsernameInvestigator interface {
	InvestigateUsername(ctx context.Context, username string) (*models.UsernameReport, error)
}

// SubSnapshot is the tagged view of the sub-investigation.
type SubSnapshot struct {
	State  SubState               `json:"state"`
	Report *models.UsernameReport `json:"report,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// SubController owns the secondary "investigate this username" flow. It is
// fully decoupled from the primary session and keeps its own error slot, so
// a failed probe never clobbers the primary result view.
type SubController struct {
	client   UsernameInvestigator
	notifier Notifier

	mu     sync.Mutex
	state  SubState
	token  string
	report *models.UsernameReport
	errMsg string
}

func NewSubController(client UsernameInvestigator, notifier Notifier) *SubController {
	return &SubController{
		client:   client,
		notifier: notifier,
		state:    SubStateIdle,
	}
}

// Investigate probes one username. Triggering a new probe while another is
// pending is allowed; the older settle is discarded.
func (c *SubController) Investigate(ctx context.Context, username string) (*models.UsernameReport, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingUsername
	}

	token := uuid.NewString()

	c.mu.Lock()
	c.token = token
	c.state = SubStateInvestigating
	c.errMsg = ""
	c.mu.Unlock()

	report, err := c.client.InvestigateUsername(ctx, username)

	c.mu.Lock()
	if c.token != token {
		c.mu.Unlock()
		log.Infof("discarding stale username probe for %q", username)
		return nil, ErrSuperseded
	}
	c.state = SubStateIdle
	if err != nil {
		c.report = nil
		c.errMsg = userMessage(err)
		msg := c.errMsg
		c.mu.Unlock()
		if c.notifier != nil {
			c.notifier.Publish(ws.EventSubError, map[string]string{"error": msg})
		}
		return nil, err
	}
	c.report = report
	c.mu.Unlock()

	return report, nil
}

// Snapshot returns the current sub-investigation view.
func (c *SubController) Snapshot() SubSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return SubSnapshot{
		State:  c.state,
		Report: c.report,
		Error:  c.errMsg,
	}
}
