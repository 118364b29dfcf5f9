package web

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event names carried by Message.
const (
	EventFrame  = "frame"
	EventClosed = "closed"
)

// Message is one websocket payload.
type Message struct {
	GameID string `json:"game_id"`
	Event  string `json:"event"`
	Data   any    `json:"data,omitempty"`
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

type envelope struct {
	gameID string
	data   []byte
}

// Hub fans committed frames out to the websocket clients watching a game.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	games      map[string]map[*client]bool
	broadcast  chan envelope
	register   chan *client
	unregister chan *client
	closeGame  chan string
	done       chan struct{}
	running    atomic.Bool
	logger     *log.Logger
}

// NewHub creates a hub. Events sent before Run starts are dropped.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		games:      make(map[string]map[*client]bool),
		broadcast:  make(chan envelope),
		register:   make(chan *client),
		unregister: make(chan *client),
		closeGame:  make(chan string),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes hub events until ctx is cancelled, then disconnects every
// client.
func (h *Hub) Run(ctx context.Context) {
	h.running.Store(true)
	defer func() {
		for id := range h.games {
			h.dropGame(id)
		}
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case env := <-h.broadcast:
			h.deliver(env)

		case id := <-h.closeGame:
			h.dropGame(id)
		}
	}
}

// Broadcast sends an event to every client of a game. It drops the message
// when the hub is not running.
func (h *Hub) Broadcast(gameID, event string, data any) {
	if !h.running.Load() {
		return
	}
	payload, err := json.Marshal(Message{GameID: gameID, Event: event, Data: data})
	if err != nil {
		h.logger.Error("cannot marshal websocket message", "game", gameID, "error", err)
		return
	}

	select {
	case h.broadcast <- envelope{gameID: gameID, data: payload}:
	case <-h.done:
	}
}

// CloseGame disconnects every client of a game.
func (h *Hub) CloseGame(gameID string) {
	if !h.running.Load() {
		return
	}
	select {
	case h.closeGame <- gameID:
	case <-h.done:
	}
}

// ServeWS upgrades the request and subscribes the connection to gameID.
// initial, if not nil, is the first message the client receives.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, gameID string, initial any) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "game", gameID, "error", err)
		return
	}

	c := &client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		gameID: gameID,
	}

	if initial != nil {
		if payload, err := json.Marshal(Message{GameID: gameID, Event: EventFrame, Data: initial}); err == nil {
			c.send <- payload
		}
	}

	// Register before the write pump starts so the first message a client
	// reads is ordered before every later broadcast.
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// clients counts the watchers of gameID. Only the Run goroutine may call it.
func (h *Hub) clients(gameID string) int {
	return len(h.games[gameID])
}

func (h *Hub) registerClient(c *client) {
	if h.games[c.gameID] == nil {
		h.games[c.gameID] = make(map[*client]bool)
	}
	h.games[c.gameID][c] = true
	h.logger.Debug("websocket client registered", "game", c.gameID, "clients", h.clients(c.gameID))
}

func (h *Hub) unregisterClient(c *client) {
	clients, ok := h.games[c.gameID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(h.games, c.gameID)
	}
	h.logger.Debug("websocket client unregistered", "game", c.gameID, "clients", len(clients))
}

func (h *Hub) deliver(env envelope) {
	for c := range h.games[env.gameID] {
		select {
		case c.send <- env.data:
		default:
			// Slow client
			h.unregisterClient(c)
		}
	}
}

func (h *Hub) dropGame(gameID string) {
	for c := range h.games[gameID] {
		h.unregisterClient(c)
	}
}

// readPump discards client messages and keeps the read deadline fresh.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", "game", c.gameID, "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages and pings until the hub closes send.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // Deadline errors surface on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				//nolint:errcheck // Best-effort close frame
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // Deadline errors surface on the next write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
