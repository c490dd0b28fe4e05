package report

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osintlab/deepscope/internal/models"
)

func render(t *testing.T, result *models.InvestigationResult) *goquery.Document {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	html, err := r.Report(result)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestReport_BreachesFound(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{
			Email: "a@b.com",
			Breaches: &models.BreachSummary{
				Found: true,
				Count: 2,
				Breaches: []models.Breach{
					{Name: "X", Date: "2019-01-01", Data: []string{"email", "password"}},
				},
			},
		},
	})

	section := doc.Find(`[data-section="breaches"]`)
	require.Equal(t, 1, section.Length())
	assert.Equal(t, "2", section.Find(".breach-count").Text())

	cards := section.Find(".breach-item")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "X", cards.Find("h4").Text())
	assert.Contains(t, cards.Find(".breach-data").Text(), "email, password")
}

func TestReport_NoBreachesIsAffirmative(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{
			Email:    "a@b.com",
			Breaches: &models.BreachSummary{Found: false, Count: 0, Message: "No breaches found"},
		},
	})

	section := doc.Find(`[data-section="breaches"]`)
	require.Equal(t, 1, section.Length(), "present-but-empty branch still gets its section")
	assert.Equal(t, "No breaches found", section.Find(".success").Text())
	assert.Equal(t, 0, section.Find(".breach-item").Length())
}

func TestReport_AbsentBranchRendersNothing(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{Email: "a@b.com"},
	})

	// Absence of a key means the section was never produced, not that it is
	// empty.
	assert.Equal(t, 0, doc.Find(`[data-section="dark-web"]`).Length())
	assert.Equal(t, 0, doc.Find(`[data-section="breaches"]`).Length())
	assert.Equal(t, 0, doc.Find(`[data-section="paste-sites"]`).Length())
	assert.Equal(t, 0, doc.Find(`[data-section="social-media"]`).Length())
	assert.Equal(t, "a@b.com", doc.Find(".target-email").Text())
}

func TestReport_EmptyPasteSitesIsAffirmative(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{
			Email:      "a@b.com",
			PasteSites: &models.PasteSites{TotalFound: 0},
		},
	})

	section := doc.Find(`[data-section="paste-sites"]`)
	require.Equal(t, 1, section.Length())
	assert.Equal(t, "No paste site mentions found", section.Find(".success").Text())
}

func TestReport_PasteTimestamps(t *testing.T) {
	stamp := time.Date(2021, 6, 15, 14, 30, 0, 0, time.Local)
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{
			Email: "a@b.com",
			PasteSites: &models.PasteSites{
				TotalFound:  1,
				FoundPastes: []models.Paste{{Title: "dump", URL: "https://pastebin.com/abc", Time: stamp.Unix()}},
			},
		},
	})

	assert.Equal(t, stamp.Format("Jan 2, 2006 3:04 PM"), doc.Find(".paste-time").Text())
}

func TestReport_ConfidenceBuckets(t *testing.T) {
	tests := []struct {
		confidence string
		wantClass  string
	}{
		{"High", "high"},
		{"HIGH", "high"},
		{"high", "high"},
		{"Medium", "medium"},
		{"Low", "low"},
		{"Probably", "neutral"},
		{"", "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.confidence, func(t *testing.T) {
			doc := render(t, &models.InvestigationResult{
				NameResults: &models.NameResults{
					EmailMatch: &models.EmailMatch{Confidence: tt.confidence},
				},
			})

			badge := doc.Find(`[data-section="email-match"] .confidence-badge`)
			require.Equal(t, 1, badge.Length())
			assert.True(t, badge.HasClass(tt.wantClass), "confidence %q should bucket to %q", tt.confidence, tt.wantClass)
		})
	}
}

func TestReport_StatusMarkers(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{
			Email: "a@b.com",
			SocialMedia: &models.SocialMedia{
				VerifiedFound: 1,
				Platforms: []models.Platform{
					{Name: "GitHub", URL: "https://github.com/jdoe", Status: "found"},
					{Name: "Reddit", URL: "https://reddit.com/user/jdoe", Status: "not_found"},
					{Name: "Instagram", URL: "https://instagram.com/jdoe", Status: "check_manually"},
					{Name: "Twitch", URL: "https://twitch.tv/jdoe", Status: "error"},
					{Name: "Mystery", URL: "https://example.com/jdoe", Status: "half_found"},
					{Name: "Blank", URL: "https://example.org/jdoe"},
				},
			},
		},
	})

	cards := doc.Find(`[data-section="social-media"] .platform-card`)
	require.Equal(t, 6, cards.Length())

	wantClasses := []string{"found", "not_found", "check_manually", "error", "not_checked", "not_checked"}
	cards.Each(func(i int, card *goquery.Selection) {
		assert.True(t, card.HasClass(wantClasses[i]), "card %d should carry class %q", i, wantClasses[i])
	})
}

func TestReport_DorkLinksAreFullyEncoded(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		NameResults: &models.NameResults{
			GoogleDorks: &models.GoogleDorks{
				Dorks: []models.Dork{
					{Query: `"a@b.com" "password" OR "leaked"`, Priority: "high"},
					{Query: `"Jo Doe" site:companies-house.gov.uk`, Priority: "high"},
				},
			},
		},
	})

	links := doc.Find(`[data-section="google-dorks"] a.search-btn`)
	require.Equal(t, 2, links.Length())

	href, ok := links.First().Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://www.google.com/search?q=%22a%40b.com%22%20%22password%22%20OR%20%22leaked%22", href)

	href, ok = links.Last().Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://www.google.com/search?q=%22Jo%20Doe%22%20site%3Acompanies-house.gov.uk", href)
}

func TestReport_ReputationSkippedOnSubSourceError(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{
			Email:      "a@b.com",
			Reputation: &models.Reputation{Error: "Reputation check unavailable"},
		},
	})

	assert.Equal(t, 0, doc.Find(`[data-section="reputation"]`).Length())
}

func TestReport_Reputation(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{
			Email:      "a@b.com",
			Reputation: &models.Reputation{Reputation: "suspicious", Suspicious: true, References: 12},
		},
	})

	section := doc.Find(`[data-section="reputation"]`)
	require.Equal(t, 1, section.Length())
	assert.Equal(t, "SUSPICIOUS", section.Find(".reputation-badge").Text())
	assert.Equal(t, 1, section.Find(".warning").Length())
	assert.Contains(t, section.Find(".stats").Text(), "12")
}

func TestReport_UsernameVariationsAreClickable(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		NameResults: &models.NameResults{
			FullName:           "Jo Doe",
			UsernameVariations: []string{"jodoe", "jdoe99"},
		},
	})

	badges := doc.Find(`[data-section="username-variations"] .username-badge`)
	require.Equal(t, 2, badges.Length())

	username, ok := badges.Last().Attr("data-username")
	require.True(t, ok)
	assert.Equal(t, "jdoe99", username)
	assert.Equal(t, "jdoe99", badges.Last().Text())
}

func TestReport_PublicRecordsVerification(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		NameResults: &models.NameResults{
			PublicRecords: &models.PublicRecords{
				Warning:       "Verify manually before relying on these",
				VerifiedCount: 1,
				Databases: []models.RecordDatabase{
					{Name: "192.com", URL: "https://192.com", VerificationStatus: "found"},
					{Name: "Companies House", URL: "https://find-and-update.company-information.service.gov.uk", VerificationStatus: "not_checked"},
					{Name: "Electoral Roll", URL: "https://example.com"},
				},
			},
		},
	})

	rows := doc.Find(`[data-section="public-records"] .record-item`)
	require.Equal(t, 3, rows.Length())
	assert.Equal(t, "Results Found", rows.First().Find(".status-text").Text())
	assert.Equal(t, "Not Checked", rows.Eq(1).Find(".status-text").Text())
	assert.Equal(t, "Not Checked", rows.Eq(2).Find(".status-text").Text(),
		"absent verification status defaults to not checked")
}

func TestUsernameCard(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	html, err := r.UsernameCard(&models.UsernameReport{
		Username:         "jdoe99",
		Probability:      72,
		Confidence:       "HIGH",
		PlatformsFound:   5,
		PlatformsChecked: 8,
		Details: []models.PlatformCheck{
			{Platform: "GitHub", Status: "found", URL: "https://github.com/jdoe99"},
			{Platform: "Reddit", Status: "not_found", URL: "https://reddit.com/user/jdoe99"},
		},
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	card := doc.Find(".username-report")
	require.Equal(t, 1, card.Length())

	username, _ := card.Attr("data-username")
	assert.Equal(t, "jdoe99", username)
	assert.True(t, card.Find(".confidence-badge").HasClass("high"), "mixed-case confidence buckets case-insensitively")
	assert.Equal(t, "5", card.Find(".platforms-found").Text())
	assert.Equal(t, "8", card.Find(".platforms-checked").Text())
	assert.Equal(t, 2, card.Find(".platform-card").Length())
}

func TestReport_BothBranches(t *testing.T) {
	doc := render(t, &models.InvestigationResult{
		EmailResults: &models.EmailResults{
			Email:    "jo.doe@b.com",
			Breaches: &models.BreachSummary{Found: false},
		},
		NameResults: &models.NameResults{
			FullName:        "Jo Doe",
			PotentialEmails: &models.PotentialEmails{Patterns: []string{"jo.doe@b.com", "jdoe@b.com"}},
		},
	})

	assert.Equal(t, "jo.doe@b.com", doc.Find(".target-email").Text())
	assert.Equal(t, "Jo Doe", doc.Find(".target-name").Text())
	assert.Equal(t, 1, doc.Find(`[data-section="breaches"]`).Length())
	assert.Equal(t, 2, doc.Find(`[data-section="potential-emails"] .email-item`).Length())
}
