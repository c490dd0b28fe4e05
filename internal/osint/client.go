package osint

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/apex/log"

	"github.com/osintlab/deepscope/internal/models"
)

const (
	investigatePath         = "/api/investigate"
	investigateUsernamePath = "/api/investigate-username"
)

// Client talks to the OSINT aggregation backend. The backend can take minutes
// on a deep investigation and no client-side timeout is applied; cancellation
// comes only from the caller's context.
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// Investigate runs the primary deep investigation. A body carrying an error
// key comes back as *ServiceError regardless of HTTP status; anything that
// prevents reading a well-formed result is a *TransportError.
func (c *Client) Investigate(ctx context.Context, req models.InvestigationRequest) (*models.InvestigationResult, error) {
	body, err := c.post(ctx, investigatePath, req)
	if err != nil {
		return nil, err
	}
	if msg, ok := models.ServiceError(body); ok {
		return nil, &ServiceError{Message: msg}
	}
	result, err := models.DecodeInvestigationResult(body)
	if err != nil {
		return nil, &TransportError{Op: "decode " + investigatePath, Err: err}
	}
	return result, nil
}

// InvestigateUsername runs the secondary single-username probe.
func (c *Client) InvestigateUsername(ctx context.Context, username string) (*models.UsernameReport, error) {
	body, err := c.post(ctx, investigateUsernamePath, map[string]string{"username": username})
	if err != nil {
		return nil, err
	}
	if msg, ok := models.ServiceError(body); ok {
		return nil, &ServiceError{Message: msg}
	}
	report, err := models.DecodeUsernameReport(body)
	if err != nil {
		return nil, &TransportError{Op: "decode " + investigateUsernamePath, Err: err}
	}
	return report, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, &TransportError{Op: "encode " + path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, &TransportError{Op: "build " + path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Errorf("backend request %s failed: %v", path, err)
		return nil, &TransportError{Op: "post " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + path, Err: err}
	}
	return body, nil
}
