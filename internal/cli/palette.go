package cli

import (
	"fmt"

	"github.com/amterp/ra"

	"github.com/amterp/namemap/internal/palette"
)

func registerPalette(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("palette")
	cmd.SetDescription("Show the palette colors are assigned from, lightest first")

	ctx.PaletteUsed, _ = parent.RegisterCmd(cmd)
}

// paletteRowWidth is how many swatches the palette grid shows per line.
const paletteRowWidth = 4

func runPalette(opts globalOptions) {
	app, err := NewApp(opts, Overrides{})
	if err != nil {
		Fatal(err)
	}

	pal, err := palette.Generate(app.Config.Palette)
	if err != nil {
		Fatal(err)
	}

	if opts.Json {
		if err := printJson(NewPaletteOutput(pal, app.Config.FallbackColor)); err != nil {
			Fatal(err)
		}
		return
	}

	source := app.Config.Palette.Scheme
	if len(app.Config.Palette.Base) > 0 {
		source = fmt.Sprintf("%d custom base colors", len(app.Config.Palette.Base))
	}
	fmt.Println(Panel(fmt.Sprintf("%d colors from %s", len(pal), source), PaletteGrid(pal, paletteRowWidth)))
	fmt.Println()
	for i, c := range pal {
		fmt.Printf("%3d %s %s\n", i, ColorSwatch(c), c)
	}
	if len(pal) < app.Config.MaxColors {
		fmt.Println()
		PrintWarning("palette has %d colors but max_colors is %d; busy years may share colors", len(pal), app.Config.MaxColors)
	}
}
