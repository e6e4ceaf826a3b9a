package api

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// FileChangeType indicates what type of change occurred.
type FileChangeType string

const (
	FileChangeCreated  FileChangeType = "created"
	FileChangeModified FileChangeType = "modified"
	FileChangeDeleted  FileChangeType = "deleted"
)

// FileChangeKind indicates what kind of file changed.
type FileChangeKind string

const (
	FileChangeKindColors  FileChangeKind = "colors"
	FileChangeKindPreview FileChangeKind = "preview"
	FileChangeKindInput   FileChangeKind = "input"
	FileChangeKindUnknown FileChangeKind = "unknown"
)

// IsArtifact reports whether the change concerns a generated output.
func (k FileChangeKind) IsArtifact() bool {
	return k == FileChangeKindColors || k == FileChangeKindPreview
}

// FileChange represents a file system change notification.
type FileChange struct {
	Type FileChangeType `json:"type"`
	Kind FileChangeKind `json:"kind"`
	Path string         `json:"path"` // Base name of the changed file
}

// FileWatcherSubscriber receives file change notifications.
type FileWatcherSubscriber interface {
	OnFileChange(change FileChange)
}

// WatchTargets are the files a FileWatcher reports on. InputPath may be empty
// to ignore input changes.
type WatchTargets struct {
	ColorsPath  string
	PreviewPath string
	InputPath   string
}

// FileWatcher watches the directories holding the target files and notifies
// subscribers when one of the targets changes.
type FileWatcher struct {
	watcher     *fsnotify.Watcher
	kinds       map[string]FileChangeKind // Cleaned absolute path -> kind
	dirs        []string
	log         logrus.FieldLogger
	delay       time.Duration
	mu          sync.RWMutex
	subscribers []FileWatcherSubscriber
	debounce    map[string]*time.Timer
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
}

// NewFileWatcher creates a new file watcher for the given targets.
func NewFileWatcher(targets WatchTargets, log logrus.FieldLogger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher:  watcher,
		kinds:    make(map[string]FileChangeKind),
		log:      log,
		delay:    100 * time.Millisecond,
		debounce: make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
	}
	fw.addTarget(targets.ColorsPath, FileChangeKindColors)
	fw.addTarget(targets.PreviewPath, FileChangeKindPreview)
	fw.addTarget(targets.InputPath, FileChangeKindInput)

	return fw, nil
}

func (fw *FileWatcher) addTarget(path string, kind FileChangeKind) {
	if path == "" {
		return
	}
	path = filepath.Clean(path)
	fw.kinds[path] = kind

	dir := filepath.Dir(path)
	for _, d := range fw.dirs {
		if d == dir {
			return
		}
	}
	fw.dirs = append(fw.dirs, dir)
}

// Subscribe adds a subscriber to receive file change notifications.
func (fw *FileWatcher) Subscribe(sub FileWatcherSubscriber) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.subscribers = append(fw.subscribers, sub)
}

// Start begins watching the target directories.
func (fw *FileWatcher) Start() error {
	fw.mu.Lock()
	if fw.running {
		fw.mu.Unlock()
		return nil
	}
	if fw.stopped {
		fw.mu.Unlock()
		return fmt.Errorf("file watcher cannot be restarted after stop")
	}
	fw.running = true
	fw.mu.Unlock()

	for _, dir := range fw.dirs {
		if err := fw.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	go fw.run()
	return nil
}

// Stop stops watching for changes.
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if !fw.running || fw.stopped {
		fw.mu.Unlock()
		return nil
	}
	fw.running = false
	fw.stopped = true
	fw.mu.Unlock()

	// Pending timers must not fire after stop
	fw.debounceMu.Lock()
	for path, timer := range fw.debounce {
		timer.Stop()
		delete(fw.debounce, path)
	}
	fw.debounceMu.Unlock()

	close(fw.stopCh)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.WithError(err).Warn("file watcher error")

		case <-fw.stopCh:
			return
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	// Temp files from atomic writes and editors are hidden or end in ~
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return
	}
	if _, ok := fw.kinds[filepath.Clean(event.Name)]; !ok {
		return
	}

	// Coalesce rapid changes to the same file
	fw.debounceMu.Lock()
	if timer, exists := fw.debounce[event.Name]; exists {
		timer.Stop()
	}
	fw.debounce[event.Name] = time.AfterFunc(fw.delay, func() {
		fw.emitChange(event)
		fw.debounceMu.Lock()
		delete(fw.debounce, event.Name)
		fw.debounceMu.Unlock()
	})
	fw.debounceMu.Unlock()
}

func (fw *FileWatcher) emitChange(event fsnotify.Event) {
	// A debounce timer may fire after Stop
	fw.mu.RLock()
	if fw.stopped {
		fw.mu.RUnlock()
		return
	}
	subs := make([]FileWatcherSubscriber, len(fw.subscribers))
	copy(subs, fw.subscribers)
	fw.mu.RUnlock()

	change := fw.classifyChange(event)
	if change.Kind == FileChangeKindUnknown {
		return
	}
	fw.log.WithFields(logrus.Fields{
		"kind": change.Kind,
		"type": change.Type,
	}).Debug("file changed")

	for _, sub := range subs {
		sub.OnFileChange(change)
	}
}

func (fw *FileWatcher) classifyChange(event fsnotify.Event) FileChange {
	kind, ok := fw.kinds[filepath.Clean(event.Name)]
	if !ok {
		return FileChange{Kind: FileChangeKindUnknown}
	}

	change := FileChange{
		Kind: kind,
		Path: filepath.Base(event.Name),
	}

	switch {
	case event.Op&fsnotify.Create != 0:
		change.Type = FileChangeCreated
	case event.Op&fsnotify.Write != 0:
		change.Type = FileChangeModified
	case event.Op&fsnotify.Remove != 0:
		change.Type = FileChangeDeleted
	case event.Op&fsnotify.Rename != 0:
		change.Type = FileChangeDeleted // Rename source is effectively deleted
	default:
		return FileChange{Kind: FileChangeKindUnknown}
	}
	return change
}
