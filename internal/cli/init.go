package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/amterp/ra"

	"github.com/amterp/namemap/internal/config"
	nmerr "github.com/amterp/namemap/internal/errors"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/palette"
	"github.com/amterp/namemap/internal/prompt"
	"github.com/amterp/namemap/internal/service"
	"github.com/amterp/namemap/internal/store"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Create namemap.toml in the current directory")

	ctx.InitInput, _ = ra.NewString("input").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Input TSV path, relative to the project (default: " + model.DefaultInput + ")").
		Register(cmd)

	ctx.InitOut, _ = ra.NewString("out").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output directory, relative to the project (default: " + model.DefaultOutputDir + ")").
		Register(cmd)

	ctx.InitScheme, _ = ra.NewString("scheme").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Base palette scheme (" + strings.Join(palette.SchemeNames(), ", ") + ")").
		SetCompletionFunc(completeSchemes).
		Register(cmd)

	ctx.InitMaxColors, _ = ra.NewInt("max-colors").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage(fmt.Sprintf("Stop merging color classes at this many (default: %d)", model.DefaultMaxColors)).
		Register(cmd)

	ctx.InitForce, _ = ra.NewBool("force").
		SetShort("f").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Overwrite an existing namemap.toml").
		Register(cmd)

	ctx.InitDefaults, _ = ra.NewBool("yes").
		SetShort("y").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Accept defaults for anything not given as a flag").
		Register(cmd)

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

// initOptions are the init command's flags.
type initOptions struct {
	Input     string
	OutputDir string
	Scheme    string
	MaxColors int
	Force     bool
	Defaults  bool
}

func runInit(opts globalOptions, flags initOptions) {
	cwd, err := os.Getwd()
	if err != nil {
		Fatal(err)
	}

	paths := config.NewPaths(cwd)
	configStore := store.NewConfigStore(paths)
	initService := service.NewInitService(paths, configStore)

	var prompter prompt.Prompter = &prompt.NoopPrompter{}
	switch {
	case flags.Defaults:
		prompter = &prompt.DefaultsPrompter{}
	case opts.Interactive:
		prompter = prompt.NewHuhPrompter()
	}

	force := flags.Force
	if configStore.Exists() && !force {
		ok, err := prompter.Confirm(paths.ConfigPath()+" exists. Overwrite?", false)
		if err != nil && !errors.Is(err, prompt.ErrNonInteractive) {
			Fatal(err)
		}
		if !ok {
			Fatal(nmerr.ConfigAlreadyExists(paths.ConfigPath()))
		}
		force = true
	}

	cfg, err := buildInitConfig(prompter, flags)
	if err != nil {
		Fatal(err)
	}

	if err := initService.Initialize(cfg, force); err != nil {
		Fatal(err)
	}

	PrintSuccess("Created %s", paths.ConfigPath())
	PrintInfo("Put your data at %s and run 'namemap generate'", RenderBold(paths.InputPath(cfg)))
}

// buildInitConfig fills the config from flags, asking for anything missing.
// In non-interactive mode missing values fall back to defaults.
func buildInitConfig(p prompt.Prompter, flags initOptions) (*model.ProjectConfig, error) {
	cfg := model.DefaultProjectConfig()

	ask := func(current *string, flag, title string, validate prompt.Validator) error {
		if flag != "" {
			*current = flag
			return nil
		}
		answer, err := p.Input(title, *current, validate)
		if errors.Is(err, prompt.ErrNonInteractive) {
			return nil
		}
		if err != nil {
			return err
		}
		if answer != "" {
			*current = answer
		}
		return nil
	}

	if err := ask(&cfg.Input, flags.Input, "Input TSV (year, state, m, f columns)", nil); err != nil {
		return nil, err
	}
	if err := ask(&cfg.OutputDir, flags.OutputDir, "Output directory", nil); err != nil {
		return nil, err
	}

	if flags.Scheme != "" {
		cfg.Palette.Scheme = flags.Scheme
	} else {
		scheme, err := p.Select("Base palette", palette.SchemeNames(), cfg.Palette.Scheme)
		switch {
		case errors.Is(err, prompt.ErrNonInteractive):
		case err != nil:
			return nil, err
		default:
			cfg.Palette.Scheme = scheme
		}
	}
	if _, err := palette.Scheme(cfg.Palette.Scheme); err != nil {
		return nil, err
	}

	if flags.MaxColors != 0 {
		cfg.MaxColors = flags.MaxColors
	}
	return cfg, nil
}
