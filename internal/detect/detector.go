package detect

import (
	"context"
	"fmt"
	"strings"

	"tally/internal/llm"
)

// Detector resolves the client a calendar event belongs to. It asks the
// language model first when AI is enabled and falls back to keyword matching
// against the registry company list. It never returns an error: an event
// without a recognizable client simply gets an empty string.
type Detector struct {
	client    llm.Client
	companies []string
	enabled   bool
}

// NewDetector creates a Detector over the registry company list. A nil
// client or enabled=false skips the AI path entirely.
func NewDetector(client llm.Client, companies []string, enabled bool) *Detector {
	return &Detector{
		client:    client,
		companies: companies,
		enabled:   enabled && client != nil,
	}
}

// DetectClient returns the company name for an event title, or "" when no
// company can be identified. External attendee domains, when present, are
// passed to the model as a hint.
func (d *Detector) DetectClient(ctx context.Context, title, externalDomains string) string {
	if title == "" || len(d.companies) == 0 {
		return ""
	}

	if d.enabled {
		if client := d.detectWithModel(ctx, title, externalDomains); client != "" {
			return client
		}
	}

	return MatchCompanyKeywords(title, d.companies)
}

func (d *Detector) detectWithModel(ctx context.Context, title, externalDomains string) string {
	domainHint := ""
	if externalDomains != "" {
		domainHint = "\nExternal attendee domains: " + externalDomains
	}

	prompt := fmt.Sprintf(clientDetectPrompt, title, domainHint, strings.Join(d.companies, ", "))

	resp, err := d.client.Generate(ctx, llm.GenerateRequest{
		Task:   llm.TaskClientDetect,
		Prompt: prompt,
	})
	if err != nil {
		return ""
	}

	// Only accept answers that are actually on the list. "Unknown" and any
	// hallucinated name fall through to keyword matching.
	answer := strings.ToLower(strings.TrimSpace(resp.Text))
	for _, company := range d.companies {
		if strings.ToLower(company) == answer {
			return company
		}
	}
	return ""
}
