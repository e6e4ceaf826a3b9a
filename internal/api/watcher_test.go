package api

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestWatcher(t *testing.T, targets WatchTargets) *FileWatcher {
	t.Helper()
	fw, err := NewFileWatcher(targets, quietLogger())
	if err != nil {
		t.Fatalf("NewFileWatcher failed: %v", err)
	}
	t.Cleanup(func() {
		fw.Stop()
		fw.watcher.Close()
	})
	return fw
}

func TestClassifyChange(t *testing.T) {
	out := filepath.Join("/project", "data")
	fw := newTestWatcher(t, WatchTargets{
		ColorsPath:  filepath.Join(out, "colors.json"),
		PreviewPath: filepath.Join(out, "palette.html"),
		InputPath:   filepath.Join("/project", "input", "counts.tsv"),
	})

	tests := []struct {
		name     string
		path     string
		op       fsnotify.Op
		wantKind FileChangeKind
		wantType FileChangeType
	}{
		{"colors created", filepath.Join(out, "colors.json"), fsnotify.Create, FileChangeKindColors, FileChangeCreated},
		{"colors modified", filepath.Join(out, "colors.json"), fsnotify.Write, FileChangeKindColors, FileChangeModified},
		{"preview removed", filepath.Join(out, "palette.html"), fsnotify.Remove, FileChangeKindPreview, FileChangeDeleted},
		{"preview renamed away", filepath.Join(out, "palette.html"), fsnotify.Rename, FileChangeKindPreview, FileChangeDeleted},
		{"input modified", filepath.Join("/project", "input", "counts.tsv"), fsnotify.Write, FileChangeKindInput, FileChangeModified},
		{"unclean path", out + "/./colors.json", fsnotify.Write, FileChangeKindColors, FileChangeModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := fw.classifyChange(fsnotify.Event{Name: tt.path, Op: tt.op})
			if change.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", change.Kind, tt.wantKind)
			}
			if change.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", change.Type, tt.wantType)
			}
		})
	}
}

func TestClassifyChange_Unknown(t *testing.T) {
	fw := newTestWatcher(t, WatchTargets{
		ColorsPath:  "/project/data/colors.json",
		PreviewPath: "/project/data/palette.html",
	})

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
	}{
		{"other file in output dir", "/project/data/notes.txt", fsnotify.Write},
		{"temp file", "/project/data/.colors.json-123.tmp", fsnotify.Create},
		{"chmod only", "/project/data/colors.json", fsnotify.Chmod},
		{"input not watched", "/project/data/counts_by_year.tsv", fsnotify.Write},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			change := fw.classifyChange(fsnotify.Event{Name: tt.path, Op: tt.op})
			if change.Kind != FileChangeKindUnknown {
				t.Errorf("Kind = %q, want %q", change.Kind, FileChangeKindUnknown)
			}
		})
	}
}

func TestNewFileWatcher_SharedDirectoryWatchedOnce(t *testing.T) {
	fw := newTestWatcher(t, WatchTargets{
		ColorsPath:  "/project/data/colors.json",
		PreviewPath: "/project/data/palette.html",
		InputPath:   "/project/data/counts.tsv",
	})
	if len(fw.dirs) != 1 || fw.dirs[0] != "/project/data" {
		t.Errorf("got dirs %v, want [/project/data]", fw.dirs)
	}
}

// chanSubscriber implements FileWatcherSubscriber for testing
type chanSubscriber struct {
	changes chan FileChange
}

func (c *chanSubscriber) OnFileChange(change FileChange) {
	c.changes <- change
}

func TestFileWatcher_EmitsDebouncedChange(t *testing.T) {
	dir := t.TempDir()
	colors := filepath.Join(dir, "colors.json")
	fw := newTestWatcher(t, WatchTargets{
		ColorsPath:  colors,
		PreviewPath: filepath.Join(dir, "palette.html"),
	})
	fw.delay = 20 * time.Millisecond

	sub := &chanSubscriber{changes: make(chan FileChange, 16)}
	fw.Subscribe(sub)
	if err := fw.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := os.WriteFile(colors, []byte("{}\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case change := <-sub.changes:
		if change.Kind != FileChangeKindColors {
			t.Errorf("Kind = %q, want %q", change.Kind, FileChangeKindColors)
		}
		if change.Path != "colors.json" {
			t.Errorf("Path = %q, want colors.json", change.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change received")
	}
}

func TestFileWatcher_StoppedPreventsRestart(t *testing.T) {
	fw := &FileWatcher{
		stopped: true,
	}

	err := fw.Start()
	if err == nil {
		t.Error("Expected error when starting stopped watcher")
	}
}
