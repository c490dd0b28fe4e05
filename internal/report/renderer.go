// Package report projects investigation results into HTML. Rendering is a
// pure function of the result document: every branch is optional, a missing
// key produces no section at all, and a present-but-empty branch produces an
// affirmative "none found" line.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/osintlab/deepscope/internal/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

type Renderer struct {
	tpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tpl, err := template.New("report").Funcs(template.FuncMap{
		"confidenceClass": confidenceClass,
		"statusClass":     statusClass,
		"statusIcon":      statusIcon,
		"statusText":      statusText,
		"reputationLabel": reputationLabel,
		"dorkSearchURL":   dorkSearchURL,
		"pasteTime":       pasteTime,
		"join":            strings.Join,
		"resultCount": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
	}).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Report renders the full investigation document.
func (r *Renderer) Report(result *models.InvestigationResult) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "report", result); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// UsernameCard renders a standalone sub-investigation report. It is the same
// card used for embedded username_investigations entries.
func (r *Renderer) UsernameCard(report *models.UsernameReport) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "username_card", report); err != nil {
		return "", fmt.Errorf("render username card: %w", err)
	}
	return buf.String(), nil
}
