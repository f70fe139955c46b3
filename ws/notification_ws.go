package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/kellyworkos00-droid/fairm/entity"
	"github.com/kellyworkos00-droid/fairm/utils"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	broadcastQueue = 256
	clientQueue    = 16
)

// NotificationHub fans stored notifications out to each user's open sockets.
// The hub never writes to a socket itself; every client has its own writer.
type NotificationHub struct {
	clients    map[uint]map[*client]bool // userID -> clients
	broadcast  chan Delivery
	register   chan *client
	unregister chan *client
	stopped    chan struct{}
	mu         sync.Mutex
	log        *zap.Logger
}

// client is one socket held by one user. send is closed by the hub only.
type client struct {
	conn   *websocket.Conn
	userID uint
	send   chan entity.Notification
}

type Delivery struct {
	UserID       uint
	Notification entity.Notification
}

func NewNotificationHub(log *zap.Logger) *NotificationHub {
	return &NotificationHub{
		clients:    make(map[uint]map[*client]bool),
		broadcast:  make(chan Delivery, broadcastQueue),
		register:   make(chan *client),
		unregister: make(chan *client),
		stopped:    make(chan struct{}),
		log:        log,
	}
}

// Run serves register/unregister/broadcast until done is closed.
func (h *NotificationHub) Run(done <-chan struct{}) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[*client]bool)
			}
			h.clients[c.userID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			h.drop(c)
			h.mu.Unlock()

		case d := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients[d.UserID] {
				select {
				case c.send <- d.Notification:
				default:
					// writer is stuck; cut the client loose
					h.log.Debug("ws client too slow, dropping", zap.Uint("user_id", d.UserID))
					h.drop(c)
				}
			}
			h.mu.Unlock()

		case <-done:
			close(h.stopped)
			h.closeAll()
			return
		}
	}
}

// drop must be called with mu held.
func (h *NotificationHub) drop(c *client) {
	if _, ok := h.clients[c.userID][c]; !ok {
		return
	}
	delete(h.clients[c.userID], c)
	if len(h.clients[c.userID]) == 0 {
		delete(h.clients, c.userID)
	}
	close(c.send)
}

func (h *NotificationHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for c := range conns {
			h.drop(c)
		}
	}
}

// Push queues n for userID without blocking the caller. When the queue is
// full the push is dropped; the notification is still stored.
func (h *NotificationHub) Push(userID uint, n entity.Notification) {
	select {
	case h.broadcast <- Delivery{UserID: userID, Notification: n}:
	default:
		h.log.Warn("notification queue full, dropping push", zap.Uint("user_id", userID))
	}
}

// Connected reports how many sockets userID currently holds.
func (h *NotificationHub) Connected(userID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades GET /ws/notifications; WSAuthMiddleware runs first.
func (h *NotificationHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Debug("ws upgrade failed", zap.Error(err))
		return
	}

	cl := &client{conn: conn, userID: userID, send: make(chan entity.Notification, clientQueue)}
	select {
	case h.register <- cl:
	case <-h.stopped:
		conn.Close()
		return
	}

	go h.writeLoop(cl)
	go h.readLoop(cl)
}

// writeLoop owns all writes to the socket and closes it once send is closed.
func (h *NotificationHub) writeLoop(c *client) {
	defer c.conn.Close()
	for n := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(n); err != nil {
			h.log.Debug("ws write failed", zap.Uint("user_id", c.userID), zap.Error(err))
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
}

// readLoop only watches for the client going away; clients do not send anything.
func (h *NotificationHub) readLoop(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.stopped:
		}
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
