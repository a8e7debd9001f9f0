// Package livereload tells open pages to reload when the content document
// changes on disk.
package livereload

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/knadh/koanf/providers/file"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/logging"
)

// Path is where pages connect.
const Path = "/ws/reload"

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is sent to every connected page.
type Message struct {
	Type string `json:"type"`
}

// Hub tracks connected pages.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	log     logrus.FieldLogger
}

// NewHub returns an empty Hub.
func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{}), log: logging.Or(log)}
}

// ServeHTTP upgrades the request and holds the connection until the page
// goes away. Anything the page sends is ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("livereload: websocket upgrade")
		return
	}

	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	defer h.remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("livereload: websocket read")
			}
			return
		}
	}
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Len returns the number of connected pages.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends msg to every page and drops the ones that fail. It returns
// how many pages received it.
func (h *Hub) Broadcast(msg Message) int {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.WithError(err).Error("livereload: encoding message")
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	sent := 0
	for conn := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.WithError(err).Debug("livereload: dropping client")
			delete(h.clients, conn)
			conn.Close()
			continue
		}
		sent++
	}
	return sent
}

// Reload asks every page to reload.
func (h *Hub) Reload() int {
	return h.Broadcast(Message{Type: "reload"})
}

// Close disconnects every page.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.clients, conn)
	}
}

// Watch reloads every page whenever the content document at path changes
// and still parses. A document that no longer parses is logged and the
// pages are left alone. Call the returned function to stop watching.
func Watch(path string, h *Hub, log logrus.FieldLogger) (stop func() error, err error) {
	log = logging.Or(log)
	f := file.Provider(path)

	err = f.Watch(func(event interface{}, err error) {
		if err != nil {
			log.WithError(err).Warn("livereload: watch")
			return
		}
		data, err := f.ReadBytes()
		if err != nil {
			log.WithError(err).Warn("livereload: reading changed content")
			return
		}
		if _, err := content.Parse(data); err != nil {
			log.WithError(err).Warn("livereload: changed content does not parse, not reloading")
			return
		}
		n := h.Reload()
		log.WithFields(logrus.Fields{"file": path, "pages": n}).Info("Content changed, reloading pages")
	})
	if err != nil {
		return nil, err
	}
	return f.Unwatch, nil
}

// RegisterRoutes mounts the websocket endpoint at Path.
func (h *Hub) RegisterRoutes(r chi.Router) {
	r.Get(Path, h.ServeHTTP)
}
