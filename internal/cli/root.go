package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool
	Verbose        *bool
	Json           *bool

	// init command
	InitUsed      *bool
	InitInput     *string
	InitOut       *string
	InitScheme    *string
	InitMaxColors *int
	InitForce     *bool
	InitDefaults  *bool

	// generate command
	GenerateUsed      *bool
	GenerateInput     *string
	GenerateOut       *string
	GenerateMaxColors *int
	GenerateDryRun    *bool

	// lookup command
	LookupUsed *bool
	LookupName *string

	// check command
	CheckUsed *bool

	// palette command
	PaletteUsed *bool

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool
	ServeWatch  *bool

	// completion command
	CompletionUsed  *bool
	CompletionShell *string
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("namemap")
	cmd.SetDescription("Assign map colors to baby names so no two names shown together share one")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	ctx.Verbose, _ = ra.NewBool("verbose").
		SetShort("v").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Log diagnostics, including every label merge").
		Register(cmd, ra.WithGlobal(true))

	ctx.Json, _ = ra.NewBool("json").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Print machine-readable JSON instead of styled text").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerGenerate(cmd, ctx)
	registerLookup(cmd, ctx)
	registerCheck(cmd, ctx)
	registerPalette(cmd, ctx)
	registerServe(cmd, ctx)
	registerCompletion(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx, cmd)
}

func executeCommand(ctx *CommandContext, rootCmd *ra.Cmd) {
	opts := globalOptions{
		Interactive: !*ctx.NonInteractive,
		Verbose:     *ctx.Verbose,
		Json:        *ctx.Json,
	}

	switch {
	case *ctx.InitUsed:
		runInit(opts, initOptions{
			Input:     *ctx.InitInput,
			OutputDir: *ctx.InitOut,
			Scheme:    *ctx.InitScheme,
			MaxColors: *ctx.InitMaxColors,
			Force:     *ctx.InitForce,
			Defaults:  *ctx.InitDefaults,
		})

	case *ctx.GenerateUsed:
		runGenerate(opts, Overrides{
			Input:     *ctx.GenerateInput,
			OutputDir: *ctx.GenerateOut,
			MaxColors: *ctx.GenerateMaxColors,
		}, *ctx.GenerateDryRun)

	case *ctx.LookupUsed:
		runLookup(opts, *ctx.LookupName)

	case *ctx.CheckUsed:
		runCheck(opts)

	case *ctx.PaletteUsed:
		runPalette(opts)

	case *ctx.ServeUsed:
		runServe(opts, *ctx.ServePort, *ctx.ServeNoOpen, *ctx.ServeWatch)

	case *ctx.CompletionUsed:
		runCompletion(*ctx.CompletionShell, rootCmd)
	}
}

// globalOptions carries the global flags into each command.
type globalOptions struct {
	Interactive bool
	Verbose     bool
	Json        bool
}
