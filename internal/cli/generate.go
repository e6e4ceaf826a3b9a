package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/service"
)

func registerGenerate(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("generate")
	cmd.SetDescription("Assign colors to every name and write the color table and palette preview")

	ctx.GenerateInput, _ = ra.NewString("input").
		SetShort("i").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Input TSV (overrides namemap.toml)").
		Register(cmd)

	ctx.GenerateOut, _ = ra.NewString("out").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output directory (overrides namemap.toml)").
		Register(cmd)

	ctx.GenerateMaxColors, _ = ra.NewInt("max-colors").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Stop merging color classes at this many (overrides namemap.toml)").
		Register(cmd)

	ctx.GenerateDryRun, _ = ra.NewBool("dry-run").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Compute and report without writing files").
		Register(cmd)

	ctx.GenerateUsed, _ = parent.RegisterCmd(cmd)
}

func runGenerate(opts globalOptions, overrides Overrides, dryRun bool) {
	app, err := NewApp(opts, overrides)
	if err != nil {
		Fatal(err)
	}

	result, err := app.GenerateService.Generate(service.GenerateOptions{DryRun: dryRun})
	if err != nil {
		Fatal(err)
	}

	if opts.Json {
		if err := printJson(result); err != nil {
			Fatal(err)
		}
		return
	}
	printGenerateResult(result)
}

func printGenerateResult(result *service.GenerateResult) {
	fmt.Printf("Read %d year(s) from %s\n", result.Years, RenderMuted(result.InputPath))
	fmt.Println()

	for _, c := range result.Categories {
		fmt.Println(RenderBold(categoryTitle(c.Category)))
		fmt.Println(Field("names", fmt.Sprint(c.Names)))
		fmt.Println(Field("labels", fmt.Sprintf("%d → %d after %d merge(s)", c.InitialLabels, c.FinalLabels, len(c.Merges))))
		fmt.Println(Field("peaks", formatPeaks(c.PeakLoads)))
		if c.Deficit > 0 {
			PrintWarning("%d color class(es) share a palette color; run 'namemap check' to see conflicts", c.Deficit)
		}
		fmt.Println()
	}

	fmt.Printf("Palette: %s\n", SwatchRow(result.Palette))
	fmt.Println()

	if !result.Written {
		PrintInfo("Dry run: nothing written")
		return
	}
	PrintSuccess("Wrote %d colors to %s", len(result.Table), result.ColorsPath)
	PrintSuccess("Wrote palette preview to %s", result.PreviewPath)
}

func categoryTitle(c model.Category) string {
	switch c {
	case model.CategoryMale:
		return "Male names (M)"
	case model.CategoryFemale:
		return "Female names (F)"
	}
	return string(c)
}

// formatPeaks lists peak loads heaviest first.
func formatPeaks(peaks []int) string {
	if len(peaks) == 0 {
		return RenderMuted("none")
	}
	sorted := append([]int(nil), peaks...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, " ")
}
