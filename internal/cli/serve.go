package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/amterp/ra"
	"github.com/sirupsen/logrus"

	"github.com/amterp/namemap/internal/api"
	"github.com/amterp/namemap/internal/palette"
	"github.com/amterp/namemap/internal/service"
)

func registerServe(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("serve")
	cmd.SetDescription("Serve the palette preview and a color lookup API")

	ctx.ServePort, _ = ra.NewInt("port").
		SetOptional(true).
		SetDefault(3000).
		SetShort("p").
		SetFlagOnly(true).
		SetUsage("Port to listen on (will try incrementally if in use)").
		Register(cmd)

	ctx.ServeNoOpen, _ = ra.NewBool("no-open").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Don't open browser automatically").
		Register(cmd)

	ctx.ServeWatch, _ = ra.NewBool("watch").
		SetShort("w").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Regenerate whenever the input file changes").
		Register(cmd)

	ctx.ServeUsed, _ = parent.RegisterCmd(cmd)
}

func runServe(opts globalOptions, port int, noOpen bool, watch bool) {
	app, err := NewApp(opts, Overrides{})
	if err != nil {
		Fatal(err)
	}
	if !opts.Verbose {
		app.Log.SetLevel(logrus.InfoLevel)
	}

	pal, err := palette.Generate(app.Config.Palette)
	if err != nil {
		Fatal(err)
	}

	handler := api.NewHandler(app.Artifacts, pal, app.Config.FallbackColor, app.Log)

	serverOpts := api.ServerOptions{
		Targets: api.WatchTargets{
			ColorsPath:  app.Paths.ColorsPath(app.Config),
			PreviewPath: app.Paths.PreviewPath(app.Config),
		},
	}
	if watch {
		serverOpts.Targets.InputPath = app.Paths.InputPath(app.Config)
		serverOpts.Regenerate = func() error {
			_, err := app.GenerateService.Generate(service.GenerateOptions{})
			return err
		}
	}

	// Find an available port starting from the requested one
	actualPort := findAvailablePort(port)

	server := api.NewServer(handler, actualPort, serverOpts, app.Log)

	url := fmt.Sprintf("http://localhost:%d", actualPort)
	fmt.Println(Panel("namemap preview", RenderURL(url)))
	if watch {
		fmt.Printf("Watching %s\n", RenderMuted(serverOpts.Targets.InputPath))
	}
	if !app.Artifacts.TableExists() {
		PrintWarning("No color table yet. Run 'namemap generate' to create one")
	}
	fmt.Println("Press Ctrl+C to stop")

	if !noOpen {
		openBrowser(url)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			app.Log.WithError(err).Error("shutdown failed")
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		Fatal(err)
	}
}

// findAvailablePort tries ports starting from startPort until it finds one that's available.
func findAvailablePort(startPort int) int {
	maxAttempts := 100
	for i := 0; i < maxAttempts; i++ {
		port := startPort + i
		if isPortAvailable(port) {
			return port
		}
	}
	// If we couldn't find a port after maxAttempts, return the original and let it fail naturally
	return startPort
}

// isPortAvailable checks if a port is available by attempting to listen on it.
func isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
