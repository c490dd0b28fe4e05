package models

import (
	"encoding/json"
	"fmt"
)

// ServiceError probes a response body for the backend's error key. The
// backend signals failure through the body, not the HTTP status, so callers
// must run this check before attempting to decode a result.
func ServiceError(data []byte) (string, bool) {
	var probe ErrorResponse
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", false
	}
	return probe.Error, probe.Error != ""
}

// DecodeInvestigationResult parses the primary response document. Presence
// and absence of branches is decided here, once, at the network boundary;
// downstream code only ever sees nil or populated pointers.
func DecodeInvestigationResult(data []byte) (*InvestigationResult, error) {
	var result InvestigationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("investigation result: %w", err)
	}
	if result.NameResults != nil {
		for i := range result.NameResults.UsernameInvestigations {
			if err := result.NameResults.UsernameInvestigations[i].Validate(); err != nil {
				return nil, err
			}
		}
	}
	return &result, nil
}

// DecodeUsernameReport parses a standalone sub-investigation response.
func DecodeUsernameReport(data []byte) (*UsernameReport, error) {
	var report UsernameReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("username report: %w", err)
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return &report, nil
}

// Validate rejects payloads that break the report invariant. A backend that
// claims more platform hits than it checked is malformed, not merely empty.
func (r *UsernameReport) Validate() error {
	if r.PlatformsFound > r.PlatformsChecked {
		return fmt.Errorf("username report for %q: platforms_found %d exceeds platforms_checked %d",
			r.Username, r.PlatformsFound, r.PlatformsChecked)
	}
	return nil
}
