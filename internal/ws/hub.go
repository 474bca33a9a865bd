package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"fleetmap.opentransit.org/internal/cluster"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks connected websocket clients and pushes catalog snapshots to
// them whenever the cluster catalog is rebuilt. Clients that fail a write
// are dropped; there is no per-client queue.
type Hub struct {
	logger  *slog.Logger
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// HandleStream upgrades the request to a websocket connection, sends the
// most recent catalog so the map can render without waiting for the next
// rebuild, and then registers the client. The seed is written before the
// connection becomes visible to Broadcast: gorilla connections allow only
// one concurrent writer, and Broadcast writes under the hub lock.
func (h *Hub) HandleStream(w http.ResponseWriter, r *http.Request, snapshot cluster.Catalog, ok bool) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	if ok {
		if err := writeCatalog(conn, snapshot); err != nil {
			conn.Close()
			return
		}
	}

	h.add(conn)
	go h.readPump(conn)
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// ClientCount reports the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends the catalog to every connected client. Writes happen
// under the hub lock, so a stalled client can delay the rebuild loop; the
// connection is closed and dropped on the first failed write.
func (h *Hub) Broadcast(c cluster.Catalog) {
	data, err := json.Marshal(c)
	if err != nil {
		h.logger.Error("failed to marshal catalog for broadcast", "error", err)
		return
	}
	h.mu.Lock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
	h.mu.Unlock()
}

// readPump drains inbound frames so pings and close frames are processed,
// and unregisters the client when the connection drops.
func (h *Hub) readPump(c *websocket.Conn) {
	defer func() {
		h.remove(c)
		_ = c.Close()
	}()
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func writeCatalog(c *websocket.Conn, snapshot cluster.Catalog) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}
