package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Message types sent to preview pages.
const (
	MessageHello  = "hello"
	MessageReload = "reload"
)

const (
	pageQueueSize = 16
	pingInterval  = 30 * time.Second
	pongWait      = 60 * time.Second
	writeWait     = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // preview server is local only
	},
}

// ReloadMessage tells a preview page that an artifact changed. Generation counts
// artifact changes since the server started; a page that has already reloaded
// for a generation can ignore repeats, since one generate run touches both the
// colors file and the preview.
type ReloadMessage struct {
	Type       string         `json:"type"`
	Generation uint64         `json:"generation"`
	Artifact   FileChangeKind `json:"artifact,omitempty"`
	File       string         `json:"file,omitempty"`
	Deleted    bool           `json:"deleted,omitempty"`
}

// ReloadHub pushes artifact changes to every open preview page.
type ReloadHub struct {
	mu         sync.Mutex
	pages      map[*previewPage]struct{}
	generation uint64
	log        logrus.FieldLogger
}

// previewPage is one connected browser tab.
type previewPage struct {
	conn *websocket.Conn
	out  chan ReloadMessage
}

func NewReloadHub(log logrus.FieldLogger) *ReloadHub {
	return &ReloadHub{
		pages: make(map[*previewPage]struct{}),
		log:   log,
	}
}

// OnFileChange implements FileWatcherSubscriber. Input changes are left to the
// regenerator; the artifacts it writes arrive here as their own changes.
func (h *ReloadHub) OnFileChange(change FileChange) {
	if !change.Kind.IsArtifact() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.generation++
	msg := ReloadMessage{
		Type:       MessageReload,
		Generation: h.generation,
		Artifact:   change.Kind,
		File:       change.Path,
		Deleted:    change.Type == FileChangeDeleted,
	}

	var stalled []*previewPage
	for page := range h.pages {
		select {
		case page.out <- msg:
		default:
			stalled = append(stalled, page)
		}
	}
	for _, page := range stalled {
		h.dropLocked(page)
	}
	if len(stalled) > 0 {
		h.log.WithField("pages", len(stalled)).Debug("dropped stalled preview pages")
	}
}

// join registers page and queues its hello, which carries the current
// generation. The queue is empty here, so the send cannot block.
func (h *ReloadHub) join(page *previewPage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pages[page] = struct{}{}
	page.out <- ReloadMessage{Type: MessageHello, Generation: h.generation}
}

func (h *ReloadHub) leave(page *previewPage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(page)
}

// dropLocked closes page's queue, which ends its writer. Safe to repeat.
func (h *ReloadHub) dropLocked(page *previewPage) {
	if _, ok := h.pages[page]; !ok {
		return
	}
	delete(h.pages, page)
	close(page.out)
}

// Generation returns the number of artifact changes seen so far.
func (h *ReloadHub) Generation() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.generation
}

// PageCount returns the number of connected preview pages.
func (h *ReloadHub) PageCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pages)
}

// ServeWS upgrades a preview page's connection and keeps it subscribed until
// the page goes away.
func (h *ReloadHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	page := &previewPage{conn: conn, out: make(chan ReloadMessage, pageQueueSize)}
	h.join(page)

	go page.write()
	go page.read(h)
}

// read discards anything the page sends and leaves the hub once the
// connection drops.
func (p *previewPage) read(h *ReloadHub) {
	defer h.leave(p)

	p.conn.SetReadLimit(512)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).Debug("preview page read error")
			}
			return
		}
	}
}

// write sends queued messages, one frame each, and pings between them. It owns
// the connection and closes it when the queue is closed.
func (p *previewPage) write() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-p.out:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
