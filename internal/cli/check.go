package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/namemap/internal/service"
)

func registerCheck(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("check")
	cmd.SetDescription("Verify the color table against the input. Exit 0 if healthy, 1 if errors found.")

	ctx.CheckUsed, _ = parent.RegisterCmd(cmd)
}

func runCheck(opts globalOptions) {
	app, err := NewApp(opts, Overrides{})
	if err != nil {
		Fatal(err)
	}

	report, err := app.CheckService.Run()
	if err != nil {
		Fatal(err)
	}

	if opts.Json {
		if err := printJson(CheckOutput{Healthy: !report.HasErrors(), CheckReport: report}); err != nil {
			Fatal(err)
		}
	} else {
		printCheckReport(report)
	}

	// Exit with status 1 if there are errors
	if report.HasErrors() {
		os.Exit(1)
	}
}

func printCheckReport(report *service.CheckReport) {
	fmt.Printf("Checked %d name(s) over %d year(s)\n", report.Names, report.Years)
	fmt.Println()

	if len(report.Issues) == 0 {
		PrintSuccess("No issues found")
		return
	}

	// Errors first, then warnings
	for _, severity := range []service.IssueSeverity{service.SeverityError, service.SeverityWarning} {
		for _, issue := range report.Issues {
			if issue.Severity == severity {
				printIssue(issue)
			}
		}
	}

	fmt.Println()
	var summaryParts []string
	if report.Summary.Errors > 0 {
		summaryParts = append(summaryParts, StyleError.Render(fmt.Sprintf("%d error(s)", report.Summary.Errors)))
	}
	if report.Summary.Warnings > 0 {
		summaryParts = append(summaryParts, StyleWarning.Render(fmt.Sprintf("%d warning(s)", report.Summary.Warnings)))
	}
	fmt.Printf("Summary: %s\n", strings.Join(summaryParts, ", "))

	if report.Summary.Errors > 0 {
		fmt.Println()
		PrintInfo("Run 'namemap generate' to rebuild the table")
	}
}

func printIssue(issue service.Issue) {
	var icon, code string
	if issue.Severity == service.SeverityError {
		icon = StyleError.Render(IconError)
		code = StyleError.Render(fmt.Sprintf("[%s]", issue.Code))
	} else {
		icon = StyleWarning.Render(IconWarning)
		code = StyleWarning.Render(fmt.Sprintf("[%s]", issue.Code))
	}

	location := ""
	if issue.Category != "" {
		location = " " + RenderMuted(string(issue.Category))
		if issue.Year != 0 {
			location += RenderMuted(fmt.Sprintf("/%d", issue.Year))
		}
	}

	swatch := ""
	if issue.Color != "" {
		swatch = " " + ColorSwatch(issue.Color)
	}

	fmt.Printf("%s %s%s%s %s\n", icon, code, location, swatch, issue.Message)
}
