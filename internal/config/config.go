package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tally/internal/domain"
)

// Settings is the top-level settings.yaml model.
type Settings struct {
	Paths  PathsConfig  `yaml:"paths"`
	AI     AIConfig     `yaml:"ai"`
	Report ReportConfig `yaml:"report"`
	Upload UploadConfig `yaml:"upload"`
}

// PathsConfig locates the input and output files of a run.
type PathsConfig struct {
	CalendarInput string `yaml:"calendar_input"`
	ProjectCodes  string `yaml:"project_codes"`
	PreviewDB     string `yaml:"preview_db"`
}

// AIConfig controls the AI-backed client detection and comment generation.
type AIConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Model    string `yaml:"model"`
	Endpoint string `yaml:"endpoint"`
}

// ReportConfig holds defaults for preview and report generation.
type ReportConfig struct {
	WeeksBack   int     `yaml:"weeks_back"`
	TargetHours float64 `yaml:"target_hours"`
}

// UploadConfig identifies the remote tracking list.
type UploadConfig struct {
	SiteID string `yaml:"site_id"`
	ListID string `yaml:"list_id"`
}

// CategoryMapping maps upper-cased raw calendar categories to normalized
// categories, and names the subset that requires an opportunity identifier.
type CategoryMapping struct {
	Mapping         map[string]domain.Category `yaml:"mapping"`
	SalesCategories []domain.Category          `yaml:"sales_categories"`
}

// Exclusions lists raw categories discarded before the pipeline runs.
type Exclusions struct {
	Categories []string `yaml:"categories"`
}

// Dir returns the configuration directory: $TALLY_CONFIG or ./config.
func Dir() string {
	if d := os.Getenv("TALLY_CONFIG"); d != "" {
		return d
	}
	return "config"
}

// LoadSettings reads settings.yaml from the config directory and applies
// defaults for unset values. A missing or malformed file is fatal to the run.
func LoadSettings(dir string) (*Settings, error) {
	var s Settings
	if err := loadYAML(dir, "settings.yaml", &s); err != nil {
		return nil, err
	}
	if s.Paths.CalendarInput == "" {
		s.Paths.CalendarInput = filepath.Join("data", "input", "calendar_export.json")
	}
	if s.Paths.ProjectCodes == "" {
		s.Paths.ProjectCodes = filepath.Join("data", "input", "project_codes.csv")
	}
	if s.Paths.PreviewDB == "" {
		s.Paths.PreviewDB = filepath.Join("data", "output", "preview.db")
	}
	if s.Report.WeeksBack <= 0 {
		s.Report.WeeksBack = 12
	}
	if s.Report.TargetHours <= 0 {
		s.Report.TargetHours = 40
	}
	return &s, nil
}

// LoadCategoryMapping reads category_mapping.yaml. Mapping keys are
// normalized to upper case so lookups are case-insensitive.
func LoadCategoryMapping(dir string) (*CategoryMapping, error) {
	var m CategoryMapping
	if err := loadYAML(dir, "category_mapping.yaml", &m); err != nil {
		return nil, err
	}
	if len(m.Mapping) == 0 {
		return nil, fmt.Errorf("category_mapping.yaml: mapping is empty")
	}
	upper := make(map[string]domain.Category, len(m.Mapping))
	for raw, cat := range m.Mapping {
		upper[strings.ToUpper(raw)] = cat
	}
	m.Mapping = upper
	return &m, nil
}

// Lookup returns the normalized category for a raw calendar category, or
// false when the category has no mapping.
func (m *CategoryMapping) Lookup(raw string) (domain.Category, bool) {
	c, ok := m.Mapping[strings.ToUpper(raw)]
	return c, ok
}

// IsSales reports whether the category needs an opportunity identifier.
func (m *CategoryMapping) IsSales(c domain.Category) bool {
	for _, s := range m.SalesCategories {
		if s == c {
			return true
		}
	}
	return false
}

// LoadExclusions reads excluded.yaml. The returned set is keyed by
// upper-cased raw category.
func LoadExclusions(dir string) (map[string]bool, error) {
	var e Exclusions
	if err := loadYAML(dir, "excluded.yaml", &e); err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(e.Categories))
	for _, c := range e.Categories {
		set[strings.ToUpper(c)] = true
	}
	return set, nil
}

func loadYAML(dir, name string, out any) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
