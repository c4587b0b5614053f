// Package registry loads the project/opportunity registry and matches
// detected clients to opportunity codes.
//
// Three historical file layouts are in circulation. The reader detects which
// one it is looking at from the header row and normalizes all of them to the
// same ProjectCode shape, so format drift never reaches the pipeline.
package registry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"tally/internal/domain"
)

// Variant identifies which historical registry layout a file uses.
type Variant string

const (
	// VariantNew uses the current CRM export headers.
	VariantNew Variant = "new"
	// VariantOld uses the pre-migration headers.
	VariantOld Variant = "old"
	// VariantLegacy has no header row; columns are positional
	// (company, description, code).
	VariantLegacy Variant = "legacy"
)

// column headers per variant, in (code, company, description) order.
var variantHeaders = map[Variant][3]string{
	VariantNew: {"JDA OpptyID", "Account Name", "Opportunity Name"},
	VariantOld: {"Project Code", "Company", "Project Description"},
}

// DetectVariant inspects a header row and reports the layout it belongs to.
func DetectVariant(header []string) Variant {
	for _, h := range header {
		switch strings.TrimSpace(h) {
		case "JDA OpptyID":
			return VariantNew
		case "Project Code":
			return VariantOld
		}
	}
	return VariantLegacy
}

// Load reads the registry file and returns normalized project codes.
// The file must be CSV; a missing or malformed registry is fatal to the run.
func Load(path string) ([]domain.ProjectCode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening project registry: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing project registry %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("project registry %s is empty", path)
	}

	variant := DetectVariant(records[0])
	rows := records
	colIdx := [3]int{2, 0, 1} // legacy positional: company, description, code

	if variant != VariantLegacy {
		headers := variantHeaders[variant]
		idx, err := headerIndices(records[0], headers)
		if err != nil {
			return nil, fmt.Errorf("project registry %s: %w", path, err)
		}
		colIdx = idx
		rows = records[1:]
	}

	codes := make([]domain.ProjectCode, 0, len(rows))
	for _, rec := range rows {
		if len(rec) <= maxIdx(colIdx) {
			continue
		}
		pc := domain.ProjectCode{
			Code:        strings.TrimSpace(rec[colIdx[0]]),
			Company:     strings.TrimSpace(rec[colIdx[1]]),
			Description: strings.TrimSpace(rec[colIdx[2]]),
		}
		if pc.Company == "" && pc.Code == "" {
			continue
		}
		pc.CompanyLower = strings.ToLower(pc.Company)
		pc.DescriptionLower = strings.ToLower(pc.Description)
		codes = append(codes, pc)
	}
	return codes, nil
}

func headerIndices(header []string, want [3]string) ([3]int, error) {
	var idx [3]int
	for i, name := range want {
		found := -1
		for col, h := range header {
			if strings.TrimSpace(h) == name {
				found = col
				break
			}
		}
		if found < 0 {
			return idx, fmt.Errorf("missing column %q", name)
		}
		idx[i] = found
	}
	return idx, nil
}

func maxIdx(idx [3]int) int {
	m := idx[0]
	for _, v := range idx[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Companies returns the distinct company names in registry order.
func Companies(codes []domain.ProjectCode) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pc := range codes {
		if pc.Company == "" || seen[pc.Company] {
			continue
		}
		seen[pc.Company] = true
		out = append(out, pc.Company)
	}
	return out
}
