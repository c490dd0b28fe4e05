package report

import (
	"net/url"
	"strings"
	"time"

	"github.com/osintlab/deepscope/internal/models"
)

const googleSearchBase = "https://www.google.com/search?q="

// confidenceClass maps a backend confidence label to one of three style
// buckets, case-insensitively. The backend owns the bucketing algorithm;
// anything it emits outside High/Medium/Low lands in a neutral bucket
// instead of breaking the render.
func confidenceClass(confidence string) string {
	switch strings.ToLower(strings.TrimSpace(confidence)) {
	case "high":
		return "high"
	case "medium":
		return "medium"
	case "low":
		return "low"
	default:
		return "neutral"
	}
}

// statusClass normalizes a presence/verification status for styling. An
// absent or unrecognized status means the source was never checked, not that
// nothing was found.
func statusClass(status string) string {
	switch status {
	case models.StatusFound, models.StatusNotFound, models.StatusCheckManually, models.StatusError:
		return status
	default:
		return models.StatusNotChecked
	}
}

func statusIcon(status string) string {
	switch status {
	case models.StatusFound:
		return "✅"
	case models.StatusNotFound:
		return "❌"
	case models.StatusCheckManually:
		return "🔍"
	case models.StatusError:
		return "⚠️"
	default:
		return "⏳"
	}
}

func statusText(status string) string {
	switch status {
	case models.StatusFound:
		return "Results Found"
	case models.StatusNotFound:
		return "No Results"
	case models.StatusCheckManually:
		return "Manual Check Required"
	case models.StatusError:
		return "Error Checking"
	default:
		return "Not Checked"
	}
}

func reputationLabel(reputation string) string {
	if reputation == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(reputation)
}

// dorkSearchURL turns a literal dork query into a Google search link. The
// query is fully percent-encoded (spaces included) so quotes, colons and
// operators survive as a valid URL.
func dorkSearchURL(query string) string {
	return googleSearchBase + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
}

// pasteTime renders paste-dump unix seconds as a local date-time string.
func pasteTime(sec int64) string {
	return time.Unix(sec, 0).Format("Jan 2, 2006 3:04 PM")
}
