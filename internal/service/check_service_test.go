package service

import (
	"testing"

	nmerr "github.com/amterp/namemap/internal/errors"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/store"
	"github.com/amterp/namemap/testutil"
)

func countCode(report *CheckReport, code string) int {
	n := 0
	for _, issue := range report.Issues {
		if issue.Code == code {
			n++
		}
	}
	return n
}

func TestCheck_Healthy(t *testing.T) {
	ds := mustDataset(t, testutil.ScenarioTSV)
	table := model.ColorTable{
		"Alice": "#111111", "Bob": "#222222", "Carol": "#222222",
		"Eve": "#111111", "Fay": "#222222", "Gina": "#222222",
	}

	report := Check(ds, table)
	if report.HasErrors() {
		t.Errorf("expected no errors, got %+v", report.Issues)
	}
	if report.Summary.Warnings != 0 {
		t.Errorf("expected no warnings, got %+v", report.Issues)
	}
	if report.Names != 6 || report.Years != 2 {
		t.Errorf("got %d names over %d years, want 6 over 2", report.Names, report.Years)
	}
}

func TestCheck_Issues(t *testing.T) {
	ds := mustDataset(t, testutil.ScenarioTSV)
	table := model.ColorTable{
		"Alice": "#111111",
		"Bob":   "#111111", // conflicts with Alice in year 1
		"Carol": "#222222",
		"Eve":   "#111111",
		"Fay":   "#222222",
		// Gina missing
		"Zed": "red",
	}

	report := Check(ds, table)

	tests := []struct {
		code string
		want int
	}{
		{CodeMissingName, 1},
		{CodeColorConflict, 1},
		{CodeUnusedName, 1},
		{CodeInvalidColor, 1},
	}
	for _, tt := range tests {
		if got := countCode(report, tt.code); got != tt.want {
			t.Errorf("%s: got %d, want %d", tt.code, got, tt.want)
		}
	}
	if report.Summary.Errors != 2 || report.Summary.Warnings != 2 {
		t.Errorf("got %d errors and %d warnings, want 2 and 2", report.Summary.Errors, report.Summary.Warnings)
	}

	for _, issue := range report.Issues {
		if issue.Code != CodeColorConflict {
			continue
		}
		if issue.Year != 1 || issue.Category != model.CategoryMale {
			t.Errorf("got conflict in %d/%s, want 1/M", issue.Year, issue.Category)
		}
		if len(issue.Names) != 2 || issue.Names[0] != "Alice" || issue.Names[1] != "Bob" {
			t.Errorf("got conflict names %v, want [Alice Bob]", issue.Names)
		}
	}
}

func TestCheck_ColorCaseInsensitive(t *testing.T) {
	ds := mustDataset(t, "year\tstate\tm\tf\n1\tCA\tAl\t\n1\tNY\tBo\t\n")
	table := model.ColorTable{"Al": "#ABCDEF", "Bo": "#abcdef"}

	if got := countCode(Check(ds, table), CodeColorConflict); got != 1 {
		t.Errorf("got %d conflicts, want 1", got)
	}
}

func TestCheck_CategoryOverride(t *testing.T) {
	// Sam is an M name in NY and the F name in CA. F is assigned last, so Sam's
	// color can land on Al's in year 1.
	ds := mustDataset(t, "year\tstate\tm\tf\n1\tCA\tAl\tSam\n1\tNY\tSam\t\n")
	table := NewAssigner(defaultPalette(t), model.DefaultMaxColors, nil).Assign(ds).Table
	if table.Lookup("Al") != table.Lookup("Sam") {
		t.Fatalf("expected Al and Sam to share a color, got %q and %q", table.Lookup("Al"), table.Lookup("Sam"))
	}

	report := Check(ds, table)
	if report.HasErrors() {
		t.Errorf("expected no errors, got %+v", report.Issues)
	}
	if got := countCode(report, CodeCategoryOverride); got != 1 {
		t.Fatalf("got %d override warnings, want 1: %+v", got, report.Issues)
	}
	for _, issue := range report.Issues {
		if issue.Code == CodeCategoryOverride && (issue.Severity != SeverityWarning || issue.Category != model.CategoryMale) {
			t.Errorf("got %s issue in %s, want warning in M", issue.Severity, issue.Category)
		}
	}
}

func TestCheck_OverrideDoesNotHideRealConflict(t *testing.T) {
	// Al and Bo are both M only; Sam also appears in F.
	ds := mustDataset(t, "year\tstate\tm\tf\n1\tCA\tAl\tSam\n1\tNY\tBo\t\n1\tTX\tSam\t\n")
	table := model.ColorTable{"Al": "#111111", "Bo": "#111111", "Sam": "#111111"}

	report := Check(ds, table)
	if got := countCode(report, CodeColorConflict); got != 1 {
		t.Errorf("got %d conflicts, want 1: %+v", got, report.Issues)
	}
	if got := countCode(report, CodeCategoryOverride); got != 0 {
		t.Errorf("got %d override warnings, want 0", got)
	}
}

func TestCheckService_Run(t *testing.T) {
	svc, paths, cfg := setupGenerateTest(t, testutil.ScenarioTSV)
	artifacts := store.NewArtifactStore(paths, cfg)
	check := NewCheckService(paths, cfg, artifacts)

	if _, err := check.Run(); !nmerr.IsNotInitialized(err) {
		t.Fatalf("got %v before generate, want not-initialized", err)
	}

	if _, err := svc.Generate(GenerateOptions{}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	report, err := check.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.HasErrors() {
		t.Errorf("expected a clean report, got %+v", report.Issues)
	}
}
