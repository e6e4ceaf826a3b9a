package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amterp/namemap/internal/config"
	"github.com/amterp/namemap/internal/dataset"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/store"
)

// IssueSeverity indicates how critical an issue is.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Issue codes for check results.
const (
	// Errors: the map would render wrong
	CodeMissingName   = "MISSING_NAME"
	CodeColorConflict = "COLOR_CONFLICT"

	// Warnings: the table is usable but stale or odd
	CodeUnusedName       = "UNUSED_NAME"
	CodeInvalidColor     = "INVALID_COLOR"
	CodeCategoryOverride = "CATEGORY_OVERRIDE"
)

// Issue represents a single check finding.
type Issue struct {
	Severity IssueSeverity  `json:"severity"`
	Code     string         `json:"code"`
	Category model.Category `json:"category,omitempty"`
	Year     int            `json:"year,omitempty"`
	Names    []string       `json:"names,omitempty"`
	Color    string         `json:"color,omitempty"`
	Message  string         `json:"message"`
}

// ReportSummary summarizes the check results.
type ReportSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

// CheckReport contains all check results.
type CheckReport struct {
	Names   int           `json:"names"` // Distinct names in the table
	Years   int           `json:"years"`
	Issues  []Issue       `json:"issues"`
	Summary ReportSummary `json:"summary"`
}

// HasErrors returns true if there are any error-level issues.
func (r *CheckReport) HasErrors() bool {
	return r.Summary.Errors > 0
}

// CheckService verifies a written color table against its input.
type CheckService struct {
	paths     *config.Paths
	cfg       *model.ProjectConfig
	artifacts store.ArtifactStore
}

// NewCheckService creates a new check service.
func NewCheckService(paths *config.Paths, cfg *model.ProjectConfig, artifacts store.ArtifactStore) *CheckService {
	return &CheckService{paths: paths, cfg: cfg, artifacts: artifacts}
}

// Run loads the configured input and table and checks them.
func (s *CheckService) Run() (*CheckReport, error) {
	ds, err := dataset.Load(s.paths.InputPath(s.cfg))
	if err != nil {
		return nil, err
	}
	table, err := s.artifacts.LoadTable()
	if err != nil {
		return nil, err
	}
	return Check(ds, table), nil
}

// Check reports input names without a color, names sharing a color within one
// year and category, table entries absent from the input and malformed colors.
// A shared color is only an error when at least two of the names got their color
// from that category; otherwise a later category overwrote one of them and the
// clash is reported as a warning.
func Check(ds *model.Dataset, table model.ColorTable) *CheckReport {
	report := &CheckReport{
		Names:  len(table),
		Years:  ds.Len(),
		Issues: []Issue{},
	}

	// owner is the category whose assignment a name's color came from.
	owner := make(map[string]model.Category)
	for _, c := range model.Categories {
		for _, name := range ds.Names(c) {
			owner[name] = c
		}
	}

	seen := make(map[string]bool)
	for _, c := range model.Categories {
		for _, name := range ds.Names(c) {
			seen[name] = true
			if _, ok := table.Get(name); !ok {
				report.Issues = append(report.Issues, Issue{
					Severity: SeverityError,
					Code:     CodeMissingName,
					Category: c,
					Names:    []string{name},
					Message:  fmt.Sprintf("%q has no color", name),
				})
			}
		}
	}

	for _, rec := range ds.Years() {
		for _, c := range model.Categories {
			checkConflicts(report, rec.Year, c, rec.Placements(c), table, owner)
		}
	}

	for _, name := range table.Names() {
		color, _ := table.Get(name)
		if !seen[name] {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeUnusedName,
				Names:    []string{name},
				Message:  fmt.Sprintf("%q is in the table but not in the input", name),
			})
		}
		if !model.IsHexColor(color) {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeInvalidColor,
				Names:    []string{name},
				Color:    color,
				Message:  fmt.Sprintf("%q has malformed color %q", name, color),
			})
		}
	}

	for _, issue := range report.Issues {
		if issue.Severity == SeverityError {
			report.Summary.Errors++
		} else {
			report.Summary.Warnings++
		}
	}
	return report
}

func checkConflicts(report *CheckReport, year int, c model.Category, placements []model.Placement, table model.ColorTable, owner map[string]model.Category) {
	byColor := make(map[string][]string)
	for _, p := range placements {
		color, ok := table.Get(p.Name)
		if !ok {
			continue
		}
		names := byColor[strings.ToLower(color)]
		if !contains(names, p.Name) {
			byColor[strings.ToLower(color)] = append(names, p.Name)
		}
	}

	colors := make([]string, 0, len(byColor))
	for color := range byColor {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	for _, color := range colors {
		names := byColor[color]
		if len(names) < 2 {
			continue
		}

		owned := 0
		var overridden []string
		for _, name := range names {
			if owner[name] == c {
				owned++
			} else {
				overridden = append(overridden, name)
			}
		}
		if owned < 2 {
			report.Issues = append(report.Issues, Issue{
				Severity: SeverityWarning,
				Code:     CodeCategoryOverride,
				Category: c,
				Year:     year,
				Names:    names,
				Color:    color,
				Message: fmt.Sprintf("%d: %s share %s because %s took a color from category %s",
					year, strings.Join(names, ", "), color, strings.Join(overridden, ", "), owner[overridden[0]]),
			})
			continue
		}

		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     CodeColorConflict,
			Category: c,
			Year:     year,
			Names:    names,
			Color:    color,
			Message:  fmt.Sprintf("%d: %s share %s", year, strings.Join(names, ", "), color),
		})
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
