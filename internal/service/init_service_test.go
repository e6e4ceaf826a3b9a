package service

import (
	"os"
	"testing"

	"github.com/amterp/namemap/internal/config"
	nmerr "github.com/amterp/namemap/internal/errors"
	"github.com/amterp/namemap/internal/model"
	"github.com/amterp/namemap/internal/store"
)

func TestInitService_Initialize(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	configStore := store.NewConfigStore(paths)
	svc := NewInitService(paths, configStore)

	cfg := model.DefaultProjectConfig()
	cfg.MaxColors = 12
	if err := svc.Initialize(cfg, false); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if !configStore.Exists() {
		t.Fatal("expected config to exist")
	}
	if info, err := os.Stat(paths.OutputDir(cfg)); err != nil || !info.IsDir() {
		t.Errorf("expected output dir, stat returned %v", err)
	}

	loaded, err := configStore.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.MaxColors != 12 {
		t.Errorf("got max_colors %d, want 12", loaded.MaxColors)
	}
}

func TestInitService_AlreadyInitialized(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	svc := NewInitService(paths, store.NewConfigStore(paths))

	if err := svc.Initialize(nil, false); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := svc.Initialize(nil, false); !nmerr.IsAlreadyExists(err) {
		t.Errorf("got %v, want already-exists", err)
	}
	if err := svc.Initialize(nil, true); err != nil {
		t.Errorf("forced Initialize failed: %v", err)
	}
}

func TestInitService_RejectsInvalidConfig(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	configStore := store.NewConfigStore(paths)
	svc := NewInitService(paths, configStore)

	cfg := model.DefaultProjectConfig()
	cfg.FallbackColor = "white"
	if err := svc.Initialize(cfg, false); !nmerr.IsValidationError(err) {
		t.Errorf("got %v, want a validation error", err)
	}
	if configStore.Exists() {
		t.Error("invalid config was written")
	}
}
