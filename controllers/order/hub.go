package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/revista-gateway/middleware"
	"github.com/junaidrashid-git/revista-gateway/models"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 5 * time.Second

// Hub fans placed orders out to websocket listeners. A listener follows
// one session, or every session when its session id is empty.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

// OrderEvent is the websocket message for a placed order.
type OrderEvent struct {
	Type      string       `json:"type"`
	SessionID string       `json:"session_id"`
	Order     models.Order `json:"order"`
}

// Broadcast sends order to the listeners of sessionID and to the
// listeners of every session.
func (h *Hub) Broadcast(sessionID string, order models.Order) {
	data, err := json.Marshal(OrderEvent{Type: "order_placed", SessionID: sessionID, Order: order})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, sid := range h.clients {
		if sid != "" && sid != sessionID {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Msg("⚠️ Dropping websocket client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// Listeners returns the number of connected websocket clients.
func (h *Hub) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) serve(c *gin.Context, sessionID string) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = sessionID
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// GET /orders/ws
func OrderWebSocketHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.serve(c, middleware.CurrentSession(c).ID)
	}
}

// GET /admin/orders/ws
func AdminOrderWebSocketHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.serve(c, "")
	}
}
