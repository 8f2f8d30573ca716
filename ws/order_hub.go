package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// OrderHub pushes order events to connected buyers and owners.
type OrderHub struct {
	clients    map[*websocket.Conn]Subscription
	broadcast  chan services.OrderEvent
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
}

// Subscription is one authenticated connection.
type Subscription struct {
	Conn   *websocket.Conn
	UserID uint
	Role   string
}

func NewOrderHub() *OrderHub {
	return &OrderHub{
		clients:    make(map[*websocket.Conn]Subscription),
		broadcast:  make(chan services.OrderEvent, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
	}
}

// Wants reports whether sub should receive evt: every owner hears about new
// orders; status changes go to the buyer and the accepting owner.
func (sub Subscription) Wants(evt services.OrderEvent) bool {
	switch evt.Type {
	case services.EventOrderPlaced:
		return sub.Role == entity.RoleOwner || sub.UserID == evt.BuyerID
	case services.EventOrderStatus:
		return sub.UserID == evt.BuyerID || (evt.OwnerID != 0 && sub.UserID == evt.OwnerID)
	}
	return false
}

func (h *OrderHub) Run() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.clients[sub.Conn] = sub
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.Conn]; ok {
				delete(h.clients, sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case evt := <-h.broadcast:
			h.mu.Lock()
			for conn, sub := range h.clients {
				if !sub.Wants(evt) {
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(evt); err != nil {
					log.Printf("ws write error (user %d): %v", sub.UserID, err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()

		case <-ping.C:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishOrderEvent queues evt for delivery; events are dropped when the queue is full.
func (h *OrderHub) PublishOrderEvent(evt services.OrderEvent) {
	select {
	case h.broadcast <- evt:
	default:
		log.Printf("ws: dropping %s event for order %d, queue full", evt.Type, evt.OrderID)
	}
}

// Clients returns the number of live connections.
func (h *OrderHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades GET /ws/orders; userId and role come from WSAuthMiddleware.
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	sub := Subscription{Conn: conn, UserID: userID, Role: role}
	h.register <- sub

	go h.listen(sub)
}

// listen drains client frames so pongs and close frames are processed.
func (h *OrderHub) listen(sub Subscription) {
	defer func() { h.unregister <- sub }()

	sub.Conn.SetReadLimit(512)
	sub.Conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.Conn.SetPongHandler(func(string) error {
		return sub.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error (user %d): %v", sub.UserID, err)
			}
			return
		}
	}
}
