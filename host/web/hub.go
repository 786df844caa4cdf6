// Package web mirrors ring frames into a browser over a websocket, so
// a simulated floor can be watched as actual circles of light instead
// of terminal glyphs.
package web

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

//go:embed viewer.html
var viewerHTML []byte

// Frame is one device's visible state as sent to viewers.
type Frame struct {
	Device  string   `json:"device"`
	Routine string   `json:"routine"`
	Mode    int      `json:"mode"`
	Token   string   `json:"token,omitempty"`
	Pixels  []string `json:"pixels"`
}

// Hub serves the viewer page and fans frames out to every connected
// socket. Broadcast must be called from one goroutine at a time; the
// simulator's tick loop satisfies that by construction.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves the viewer page at / and the frame socket at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveViewer)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

// Serve blocks serving the viewer on addr.
func (h *Hub) Serve(addr string) error {
	return http.ListenAndServe(addr, h.Handler())
}

func (h *Hub) serveViewer(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(viewerHTML)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	go h.readPump(conn)
}

// readPump drains the socket so pings are answered and closure is
// noticed. Viewers never send anything we care about.
func (h *Hub) readPump(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// Clients reports how many viewers are connected.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends the frame set to every viewer. A connection that
// fails to take the write is dropped.
func (h *Hub) Broadcast(frames []Frame) {
	data, err := json.Marshal(frames)
	if err != nil {
		return
	}
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for c := range h.clients {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(c)
		}
	}
}
