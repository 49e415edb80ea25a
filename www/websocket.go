package www

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	ws "github.com/gorilla/websocket"
)

// Keepalive and flow control for browser connections.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	clientBufferSize = 256
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Client is one dashboard connection, identified by its user agent.
type Client struct {
	logger *slog.Logger
	hub    *Hub
	conn   *ws.Conn
	out    chan []byte
	name   string
}

func NewClient(hub *Hub, w http.ResponseWriter, r *http.Request, name string) (*Client, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		logger: hub.logger.With(slog.String("client", name)),
		hub:    hub,
		conn:   conn,
		out:    make(chan []byte, clientBufferSize),
		name:   name,
	}, nil
}

// write sends one frame, bounded by the write deadline.
func (c *Client) write(messageType int, payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, payload)
}

// WritePump pushes queued frames and keepalive pings to the browser
// until the connection dies or the hub closes the channel.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.hub.Unregister <- c
		c.conn.Close()
	}()

	for {
		select {
		case frame, open := <-c.out:
			if !open {
				if err := c.write(ws.CloseMessage, []byte{}); err != nil {
					c.logger.Warn("web socket close failed", slog.Any("error", err))
				}
				return
			}
			if err := c.write(ws.TextMessage, frame); err != nil {
				c.logger.Warn("web socket write failed", slog.Any("error", err))
				return
			}

		case <-ticker.C:
			if err := c.write(ws.PingMessage, nil); err != nil {
				c.logger.Warn("web socket ping failed", slog.Any("error", err))
				return
			}
		}
	}
}

// Hub tracks the connected dashboard clients and fans broadcast frames
// out to them. The most recent frame is retained and replayed to a
// client right after it registers, so a fresh page shows the current
// prices without waiting for the next tick.
type Hub struct {
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	mutex     sync.Mutex
	clients   map[*Client]bool
	lastFrame []byte
	logger    *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.add(client)
		case client := <-h.Unregister:
			h.remove(client)
		case frame := <-h.Broadcast:
			h.fanOut(frame)
		}
	}
}

func (h *Hub) add(client *Client) {
	h.logger.Debug("registering client", "clientName", client.name)

	h.mutex.Lock()
	h.clients[client] = true
	replay := h.lastFrame
	h.mutex.Unlock()

	if replay != nil {
		h.deliver(client, replay)
	}
}

func (h *Hub) remove(client *Client) {
	h.logger.Debug("unregistering client", "clientName", client.name)

	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.out)
	}
}

func (h *Hub) fanOut(frame []byte) {
	h.mutex.Lock()
	h.lastFrame = frame
	recipients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		recipients = append(recipients, client)
	}
	h.mutex.Unlock()

	for _, client := range recipients {
		h.deliver(client, frame)
	}
}

// deliver drops the frame when the client cannot keep up, the next
// broadcast carries fresher data anyway.
func (h *Hub) deliver(client *Client, frame []byte) {
	select {
	case client.out <- frame:
	default:
		h.logger.Warn("client send buffer full, dropping frame", "clientName", client.name)
	}
}
