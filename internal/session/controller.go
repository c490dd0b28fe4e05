package session

import (
	"context"
	"errors"
	"sync"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/osintlab/deepscope/internal/models"
	"github.com/osintlab/deepscope/internal/osint"
	ws "github.com/osintlab/deepscope/internal/websocket"
)

// State enumerates the primary session lifecycle. Transitions are
// Idle → Submitting → Awaiting → Succeeded|Failed, re-entrant from either
// terminal state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateAwaiting   State = "awaiting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ErrSuperseded is returned to a caller whose submission was replaced by a
// newer one before it settled. The stale response is discarded instead of
// overwriting the newer run's state.
var ErrSuperseded = errors.New("superseded by a newer submission")

// Investigator is the primary-call dependency; *osint.Client satisfies it.
type Investigator interface {
	Investigate(ctx context.Context, req models.InvestigationRequest) (*models.InvestigationResult, error)
}

// Snapshot is a tagged view of the session: exactly one of Result and Error
// is populated in a terminal state, neither while in flight.
type Snapshot struct {
	State    State                       `json:"state"`
	Progress float64                     `json:"progress"`
	Result   *models.InvestigationResult `json:"result,omitempty"`
	Error    string                      `json:"error,omitempty"`
}

// Controller owns the lifecycle of the primary investigation. It holds the
// latest result or error and nothing older; resubmission discards both.
type Controller struct {
	client    Investigator
	estimator *Estimator
	notifier  Notifier

	mu     sync.Mutex
	state  State
	token  string // sequence token of the latest submission
	result *models.InvestigationResult
	errMsg string
}

func NewController(client Investigator, estimator *Estimator, notifier Notifier) *Controller {
	return &Controller{
		client:    client,
		estimator: estimator,
		notifier:  notifier,
		state:     StateIdle,
	}
}

// Submit validates the request and runs the primary call to settlement. The
// session is re-entrant: a submission arriving while another is outstanding
// takes over the session, and the older call's settle is discarded when it
// eventually lands.
func (c *Controller) Submit(ctx context.Context, raw models.InvestigationRequest) (*models.InvestigationResult, error) {
	req, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	token := uuid.NewString()

	c.mu.Lock()
	c.token = token
	c.state = StateSubmitting
	c.result = nil
	c.errMsg = ""
	c.mu.Unlock()
	c.publishState()

	c.estimator.Start()

	c.mu.Lock()
	if c.token == token {
		c.state = StateAwaiting
	}
	c.mu.Unlock()
	c.publishState()

	result, err := c.client.Investigate(ctx, req)

	c.mu.Lock()
	if c.token != token {
		c.mu.Unlock()
		log.Infof("discarding stale investigation response (token %s)", token)
		return nil, ErrSuperseded
	}
	if err != nil {
		c.state = StateFailed
		c.errMsg = userMessage(err)
	} else {
		c.state = StateSucceeded
		c.result = result
	}
	c.mu.Unlock()

	c.estimator.Finish()
	c.publishState()

	if err != nil {
		return nil, err
	}
	return result, nil
}

// Snapshot returns the current session view, used for UI re-hydration.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:    c.state,
		Progress: c.estimator.Value(),
		Result:   c.result,
		Error:    c.errMsg,
	}
}

func (c *Controller) publishState() {
	if c.notifier != nil {
		c.notifier.Publish(ws.EventState, c.Snapshot())
	}
}

// userMessage maps an error to the wording shown in the UI: backend messages
// verbatim, transport details hidden behind a generic line.
func userMessage(err error) string {
	var svcErr *osint.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return osint.UnreachableMessage
}
