package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/namemap/internal/util"
)

func registerLookup(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("lookup")
	cmd.SetDescription("Print the color assigned to a name")

	ctx.LookupName, _ = ra.NewString("name").
		SetUsage("Name as it appears in the input").
		SetCompletionFunc(completeNames).
		Register(cmd)

	ctx.LookupUsed, _ = parent.RegisterCmd(cmd)
}

func runLookup(opts globalOptions, name string) {
	app, err := NewApp(opts, Overrides{})
	if err != nil {
		Fatal(err)
	}

	table, err := app.Artifacts.LoadTable()
	if err != nil {
		Fatal(err)
	}

	name = util.NormalizeName(name)
	_, found := table.Get(name)
	color := table.LookupOr(name, app.Config.FallbackColor)

	if opts.Json {
		if err := printJson(LookupOutput{Name: name, Color: color, Found: found}); err != nil {
			Fatal(err)
		}
		return
	}

	if !found {
		fmt.Printf("%s %s %s\n", ColorSwatch(color), color, RenderMuted("("+name+" not in table, using fallback)"))
		return
	}
	fmt.Printf("%s %s\n", NameChip(name, color), color)
}
