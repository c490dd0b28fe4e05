package models

import "encoding/json"

// InvestigationRequest is the body of POST /api/investigate. Either an email
// or both name parts must survive trimming; the session layer enforces that
// before the request leaves the process.
type InvestigationRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// InvestigationResult is the primary response document. Both branches are
// independently optional: the backend populates email_results when an email
// was supplied and name_results when a name pair was supplied. A missing
// branch means the corresponding search mode never ran.
type InvestigationResult struct {
	EmailResults *EmailResults `json:"email_results,omitempty"`
	NameResults  *NameResults  `json:"name_results,omitempty"`
}

// EmailResults aggregates the email-mode sub-sources. Every field is optional
// on its own: the backend omits a branch whose sub-source failed or was
// skipped, so absence must never be read as "nothing found".
type EmailResults struct {
	Email           string           `json:"email"`
	Username        string           `json:"username,omitempty"`
	Timestamp       string           `json:"timestamp,omitempty"`
	Reputation      *Reputation      `json:"reputation,omitempty"`
	PasteSites      *PasteSites      `json:"paste_sites,omitempty"`
	Breaches        *BreachSummary   `json:"breaches,omitempty"`
	SocialMedia     *SocialMedia     `json:"social_media,omitempty"`
	DarkWebMentions *DarkWebMentions `json:"dark_web_mentions,omitempty"`
	GoogleDorks     *GoogleDorks     `json:"google_dorks,omitempty"`
}

// NameResults aggregates the name-mode sub-sources.
type NameResults struct {
	FullName               string             `json:"full_name,omitempty"`
	EmailMatch             *EmailMatch        `json:"email_match,omitempty"`
	PotentialEmails        *PotentialEmails   `json:"potential_emails,omitempty"`
	UsernameVariations     []string           `json:"username_variations,omitempty"`
	UsernameInvestigations []UsernameReport   `json:"username_investigations,omitempty"`
	SocialMedia            *SocialMedia       `json:"social_media,omitempty"`
	Professional           []ProfessionalSite `json:"professional,omitempty"`
	DarkWeb                *DarkWebMentions   `json:"dark_web,omitempty"`
	PublicRecords          *PublicRecords     `json:"public_records,omitempty"`
	GoogleDorks            *GoogleDorks       `json:"google_dorks,omitempty"`
}

// Reputation mirrors the emailrep sub-source. When the lookup itself failed
// the backend sets Error and the rest of the fields are meaningless.
type Reputation struct {
	Reputation string `json:"reputation"`
	Suspicious bool   `json:"suspicious"`
	References int    `json:"references"`
	Error      string `json:"error,omitempty"`
}

type PasteSites struct {
	TotalFound  int     `json:"total_found"`
	FoundPastes []Paste `json:"found_pastes,omitempty"`
	Error       string  `json:"error,omitempty"`
}

type Paste struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	// Unix seconds as reported by the paste dump index.
	Time int64 `json:"time"`
}

// BreachSummary reports haveibeenpwned-style results. Older backend builds
// named the breach array breaches_found; both spellings are accepted.
type BreachSummary struct {
	Found    bool
	Count    int
	Message  string
	Error    string
	Breaches []Breach
	Details  []BreachSource
}

type breachSummaryJSON struct {
	Found        bool           `json:"found"`
	Count        int            `json:"count"`
	Message      string         `json:"message,omitempty"`
	Error        string         `json:"error,omitempty"`
	Breaches     []Breach       `json:"breaches,omitempty"`
	BreachesAlt  []Breach       `json:"breaches_found,omitempty"`
	Details      []BreachSource `json:"details,omitempty"`
}

func (b *BreachSummary) UnmarshalJSON(data []byte) error {
	var raw breachSummaryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Found = raw.Found
	b.Count = raw.Count
	b.Message = raw.Message
	b.Error = raw.Error
	b.Breaches = raw.Breaches
	if len(b.Breaches) == 0 {
		b.Breaches = raw.BreachesAlt
	}
	b.Details = raw.Details
	return nil
}

func (b BreachSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(breachSummaryJSON{
		Found:    b.Found,
		Count:    b.Count,
		Message:  b.Message,
		Error:    b.Error,
		Breaches: b.Breaches,
		Details:  b.Details,
	})
}

type Breach struct {
	Name string   `json:"name"`
	Date string   `json:"date"`
	Data []string `json:"data,omitempty"`
}

type BreachSource struct {
	Source string `json:"source"`
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type SocialMedia struct {
	Note          string     `json:"note,omitempty"`
	VerifiedFound int        `json:"verified_found"`
	Platforms     []Platform `json:"platforms,omitempty"`
}

// Platform is one social/media profile candidate. Status uses the
// StatusFound family of constants; unrecognized values are kept verbatim and
// classified by the renderer.
type Platform struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

type DarkWebMentions struct {
	Note          string         `json:"note,omitempty"`
	SearchEngines []SearchEngine `json:"search_engines,omitempty"`
	LeakDatabases []LeakDatabase `json:"leak_databases,omitempty"`
}

type SearchEngine struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

type LeakDatabase struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Note string `json:"note,omitempty"`
}

type GoogleDorks struct {
	Note            string       `json:"note,omitempty"`
	GoogleSearchURL string       `json:"google_search_url,omitempty"`
	Regions         *DorkRegions `json:"regions,omitempty"`
	Dorks           []Dork       `json:"dorks,omitempty"`
}

type DorkRegions struct {
	UKEUCount int `json:"uk_eu_count"`
	USCount   int `json:"us_count"`
}

type Dork struct {
	Query       string `json:"query"`
	Region      string `json:"region,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Description string `json:"description,omitempty"`
	ResultCount *int   `json:"result_count,omitempty"`
}

type EmailMatch struct {
	Confidence string   `json:"confidence"`
	Details    []string `json:"details,omitempty"`
}

type PotentialEmails struct {
	Note     string   `json:"note,omitempty"`
	Patterns []string `json:"patterns,omitempty"`
}

type ProfessionalSite struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

type PublicRecords struct {
	Warning       string           `json:"warning,omitempty"`
	VerifiedCount int              `json:"verified_count"`
	Databases     []RecordDatabase `json:"databases,omitempty"`
}

type RecordDatabase struct {
	Name               string `json:"name"`
	URL                string `json:"url"`
	Description        string `json:"description,omitempty"`
	VerificationStatus string `json:"verification_status,omitempty"`
	StatusIcon         string `json:"status_icon,omitempty"`
}

// UsernameReport is returned both embedded in username_investigations and
// standalone from POST /api/investigate-username. Confidence is derived by
// the backend from Probability and is authoritative; the client never
// recomputes the bucket.
type UsernameReport struct {
	Username         string          `json:"username"`
	Probability      int             `json:"probability"`
	Confidence       string          `json:"confidence"`
	PlatformsFound   int             `json:"platforms_found"`
	PlatformsChecked int             `json:"platforms_checked"`
	Details          []PlatformCheck `json:"details,omitempty"`
}

type PlatformCheck struct {
	Platform string `json:"platform"`
	Status   string `json:"status,omitempty"`
	URL      string `json:"url"`
}

// ErrorResponse is mutually exclusive with a populated result; responses are
// probed for the error key before any result decoding.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Verification/presence status values the backend is known to emit.
const (
	StatusFound         = "found"
	StatusNotFound      = "not_found"
	StatusCheckManually = "check_manually"
	StatusError         = "error"
	StatusNotChecked    = "not_checked"
)
