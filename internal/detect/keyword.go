package detect

import "strings"

// MatchCompanyKeywords finds a company whose name appears in the title.
// Matching is accent-folded and case-insensitive: first the whole company
// name is searched for, then its individual words longer than three
// characters, so "Wurth" still matches a title like "Wurthindustry review".
// Returns the empty string when nothing matches.
func MatchCompanyKeywords(title string, companies []string) string {
	titleNorm := NormalizeText(title)
	if titleNorm == "" {
		return ""
	}

	for _, company := range companies {
		companyNorm := NormalizeText(company)
		if companyNorm == "" {
			continue
		}
		if strings.Contains(titleNorm, companyNorm) {
			return company
		}
		for _, word := range strings.Fields(companyNorm) {
			if len(word) > 3 && strings.Contains(titleNorm, word) {
				return company
			}
		}
	}
	return ""
}
