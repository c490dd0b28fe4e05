package session

import (
	"errors"
	"strings"

	"github.com/osintlab/deepscope/internal/models"
)

// ErrMissingCriteria rejects a submission that names no usable target. It is
// raised before any network call; the user fixes the form and resubmits.
var ErrMissingCriteria = errors.New("missing search criteria")

// ErrMissingUsername rejects an empty sub-investigation. Callers only ever
// pass a previously rendered candidate, so hitting this means a broken caller.
var ErrMissingUsername = errors.New("missing username")

// MissingCriteriaMessage is the user-facing wording for ErrMissingCriteria.
const MissingCriteriaMessage = "Please provide either an email address OR both first and last name"

// Normalize trims the request fields and enforces the submission
// precondition: an email, or both name parts. No further syntactic checks
// happen client-side; malformed input is the backend's to reject.
func Normalize(req models.InvestigationRequest) (models.InvestigationRequest, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if req.Email == "" && (req.FirstName == "" || req.LastName == "") {
		return req, ErrMissingCriteria
	}
	return req, nil
}
