package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
)

func newTestPage(queue int) *previewPage {
	return &previewPage{out: make(chan ReloadMessage, queue)}
}

func TestReloadHub_JoinGreetsWithGeneration(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	hub.OnFileChange(FileChange{Type: FileChangeModified, Kind: FileChangeKindColors, Path: "colors.json"})

	page := newTestPage(4)
	hub.join(page)

	if hub.PageCount() != 1 {
		t.Errorf("Expected 1 page, got %d", hub.PageCount())
	}
	want := ReloadMessage{Type: MessageHello, Generation: 1}
	if diff := cmp.Diff(want, <-page.out); diff != "" {
		t.Errorf("hello mismatch (-want +got):\n%s", diff)
	}
}

func TestReloadHub_LeaveClosesQueue(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	page := newTestPage(4)
	hub.join(page)
	<-page.out

	hub.leave(page)
	hub.leave(page) // Should not panic

	if hub.PageCount() != 0 {
		t.Errorf("Expected 0 pages, got %d", hub.PageCount())
	}
	select {
	case _, ok := <-page.out:
		if ok {
			t.Error("Queue should be closed")
		}
	default:
		t.Error("Queue should be closed and readable")
	}
}

func TestReloadHub_ArtifactChangeReachesEveryPage(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	pages := []*previewPage{newTestPage(4), newTestPage(4)}
	for _, p := range pages {
		hub.join(p)
		<-p.out
	}

	hub.OnFileChange(FileChange{Type: FileChangeModified, Kind: FileChangeKindColors, Path: "colors.json"})
	hub.OnFileChange(FileChange{Type: FileChangeDeleted, Kind: FileChangeKindPreview, Path: "palette.html"})

	want := []ReloadMessage{
		{Type: MessageReload, Generation: 1, Artifact: FileChangeKindColors, File: "colors.json"},
		{Type: MessageReload, Generation: 2, Artifact: FileChangeKindPreview, File: "palette.html", Deleted: true},
	}
	for i, p := range pages {
		got := []ReloadMessage{<-p.out, <-p.out}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("page %d messages mismatch (-want +got):\n%s", i, diff)
		}
	}
	if hub.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", hub.Generation())
	}
}

func TestReloadHub_IgnoresInputChange(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	page := newTestPage(4)
	hub.join(page)
	<-page.out

	hub.OnFileChange(FileChange{Type: FileChangeModified, Kind: FileChangeKindInput, Path: "counts.tsv"})

	select {
	case msg := <-page.out:
		t.Errorf("unexpected message %+v", msg)
	default:
	}
	if hub.Generation() != 0 {
		t.Errorf("Generation() = %d, want 0", hub.Generation())
	}
}

func TestReloadHub_DropsStalledPage(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	stalled := newTestPage(1) // hello fills the queue
	healthy := newTestPage(4)
	hub.join(stalled)
	hub.join(healthy)
	<-healthy.out

	hub.OnFileChange(FileChange{Type: FileChangeModified, Kind: FileChangeKindColors, Path: "colors.json"})

	if hub.PageCount() != 1 {
		t.Errorf("Expected stalled page to be dropped, got %d pages", hub.PageCount())
	}
	if msg := <-healthy.out; msg.Generation != 1 {
		t.Errorf("healthy page got generation %d, want 1", msg.Generation)
	}

	// A later change must not touch the closed queue
	hub.OnFileChange(FileChange{Type: FileChangeModified, Kind: FileChangeKindPreview, Path: "palette.html"})
}

func TestReloadHub_ServeWS(t *testing.T) {
	hub := NewReloadHub(quietLogger())
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var hello ReloadMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if hello.Type != MessageHello || hello.Generation != 0 {
		t.Errorf("got %+v, want hello at generation 0", hello)
	}

	hub.OnFileChange(FileChange{Type: FileChangeCreated, Kind: FileChangeKindPreview, Path: "palette.html"})

	var reload ReloadMessage
	if err := conn.ReadJSON(&reload); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	want := ReloadMessage{Type: MessageReload, Generation: 1, Artifact: FileChangeKindPreview, File: "palette.html"}
	if diff := cmp.Diff(want, reload); diff != "" {
		t.Errorf("reload mismatch (-want +got):\n%s", diff)
	}
}
