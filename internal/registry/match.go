package registry

import (
	"strings"

	"tally/internal/domain"
)

// MatchOpportunity finds the opportunity code for a detected client.
//
// A single company match resolves directly. When several registry rows match
// the client, words from each row's description (longer than three
// characters) are searched in the event title to disambiguate; failing that,
// the first match is returned flagged for review. An empty client or no
// match yields an empty code.
func MatchOpportunity(client, title string, codes []domain.ProjectCode) (string, bool) {
	if client == "" {
		return "", false
	}
	clientLower := strings.ToLower(strings.TrimSpace(client))

	var matches []domain.ProjectCode
	for _, pc := range codes {
		if strings.Contains(pc.CompanyLower, clientLower) {
			matches = append(matches, pc)
		}
	}

	switch len(matches) {
	case 0:
		return "", false
	case 1:
		return matches[0].Code, false
	}

	if title != "" {
		titleLower := strings.ToLower(title)
		for _, pc := range matches {
			for _, word := range strings.Fields(pc.DescriptionLower) {
				if len(word) > 3 && strings.Contains(titleLower, word) {
					return pc.Code, false
				}
			}
		}
	}

	return matches[0].Code, true
}
