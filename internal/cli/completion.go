package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amterp/ra"

	"github.com/amterp/namemap/internal/config"
	"github.com/amterp/namemap/internal/discovery"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/palette"
	"github.com/amterp/namemap/internal/store"
)

// completionCtx provides lightweight store access for shell completion.
// Completion functions run during ParseOrExit, before NewApp() is called,
// so we can't use the full App. This loads just the color table.
type completionCtx struct {
	once  sync.Once
	table model.ColorTable
	err   error
}

var compCtx completionCtx

func initCompletionCtx() {
	compCtx.once.Do(func() {
		result, err := discovery.DiscoverProject()
		if err != nil || result == nil {
			compCtx.err = fmt.Errorf("no project found")
			return
		}

		paths := config.NewPaths(result.ProjectRoot)
		cfg, err := store.NewConfigStore(paths).Load()
		if err != nil {
			compCtx.err = err
			return
		}

		compCtx.table, compCtx.err = store.NewArtifactStore(paths, cfg).LoadTable()
	})
}

// completeNames returns names from the color table matching the given prefix.
func completeNames(toComplete string) ([]string, ra.CompletionDirective) {
	initCompletionCtx()
	if compCtx.err != nil {
		return nil, ra.CompletionDirectiveNoFileComp
	}
	return filterPrefix(compCtx.table.Names(), toComplete), ra.CompletionDirectiveNoFileComp
}

// completeSchemes returns built-in palette schemes matching the given prefix.
func completeSchemes(toComplete string) ([]string, ra.CompletionDirective) {
	return filterPrefix(palette.SchemeNames(), toComplete), ra.CompletionDirectiveNoFileComp
}

func filterPrefix(candidates []string, prefix string) []string {
	var result []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			result = append(result, c)
		}
	}
	return result
}

// registerCompletion adds the "namemap completion <shell>" command.
func registerCompletion(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("completion")
	cmd.SetDescription("Output shell completion script")

	ctx.CompletionShell, _ = ra.NewString("shell").
		SetUsage("Shell type").
		SetEnumConstraint([]string{"bash", "zsh"}).
		Register(cmd)

	ctx.CompletionUsed, _ = parent.RegisterCmd(cmd)
}

// runCompletion outputs the shell completion script to stdout.
func runCompletion(shell string, rootCmd *ra.Cmd) {
	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(os.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(os.Stdout)
	default:
		Fatal(fmt.Errorf("unsupported shell: %s (supported: bash, zsh)", shell))
	}
	if err != nil {
		Fatal(fmt.Errorf("failed to generate completion script: %w", err))
	}
}
