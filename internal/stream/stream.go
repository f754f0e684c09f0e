// Package stream pushes simulation frames to WebSocket clients (e.g. an external debug viewer).
package stream

import (
	"net/http"
	"sync"
	"time"

	"celestial-sim/internal/physics"

	"github.com/gorilla/websocket"
)

const (
	writeWait   = 2 * time.Second
	sendBacklog = 4
)

// Frame is one published snapshot. Trajectories are set only when a prediction was made for
// this frame, keyed by body name.
type Frame struct {
	Tick         uint64                  `json:"tick"`
	Elapsed      float64                 `json:"elapsed"`
	Bodies       []physics.State         `json:"bodies"`
	Trajectories map[string][][3]float64 `json:"trajectories,omitempty"`
}

// NewFrame builds a frame from the world's current state and optional trajectories (in the
// world's body order).
func NewFrame(w *physics.World, trajectories []physics.Trajectory) Frame {
	tick, elapsed := w.Ticks()
	f := Frame{Tick: tick, Elapsed: elapsed, Bodies: w.States()}
	if len(trajectories) > 0 {
		f.Trajectories = make(map[string][][3]float64, len(trajectories))
		for i, tr := range trajectories {
			if i >= len(f.Bodies) {
				break
			}
			pts := make([][3]float64, len(tr))
			for j, p := range tr {
				pts[j] = p
			}
			f.Trajectories[f.Bodies[i].Name] = pts
		}
	}
	return f
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local debug viewers only
	},
}

type client struct {
	conn *websocket.Conn
	send chan Frame
}

// Hub fans frames out to connected clients. Slow clients drop frames rather than block the
// simulation.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*client]struct{}
	last     *Frame
	OnChange func(clients int) // optional; called after a client connects or leaves
}

// NewHub returns a hub with no clients.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues f for every client without blocking. The latest frame is also sent to
// clients that connect later.
func (h *Hub) Publish(f Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &f
	for c := range h.clients {
		select {
		case c.send <- f:
		default:
		}
	}
}

// ServeHTTP upgrades the request and streams frames until the client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn, send: make(chan Frame, sendBacklog)}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- *h.last
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.changed(n)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Drain reads so close frames and pings are handled.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.writeLoop(c, done)

	h.mu.Lock()
	delete(h.clients, c)
	n = len(h.clients)
	h.mu.Unlock()
	h.changed(n)
	conn.Close()
}

func (h *Hub) writeLoop(c *client, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case f := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(f); err != nil {
				return
			}
		}
	}
}

func (h *Hub) changed(n int) {
	if h.OnChange != nil {
		h.OnChange(n)
	}
}
