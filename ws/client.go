package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// writeWait: tek bir WS yazmasının maksimum süresi.
	writeWait = 10 * time.Second

	// pongWait: client'tan heartbeat gelmezse bağlantı bu süre sonunda kapanır.
	// Client 30sn'de bir heartbeat gönderir; 3 kaçırma toleransı.
	pongWait = 90 * time.Second

	// maxMessageSize: client'tan gelen mesajlar sadece heartbeat'tir.
	maxMessageSize = 1024

	sendBufferSize = 64
)

// Client, tek bir admin WebSocket bağlantısı.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	adminID string
	send    chan []byte
	mu      sync.Mutex // conn.WriteMessage çağrılarını korur
	logger  *zap.Logger
}

// ReadPump, client'tan gelen mesajları okur. Bağlantı kapanana kadar bloklar.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("unexpected close", zap.Error(err))
			}
			return
		}

		var event Event
		if err := json.Unmarshal(raw, &event); err != nil {
			c.logger.Debug("invalid message", zap.Error(err))
			continue
		}

		switch event.Op {
		case OpHeartbeat:
			if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
				return
			}
			c.sendEvent(Event{Op: OpHeartbeatAck})
		default:
			c.logger.Debug("unknown op", zap.String("op", event.Op))
		}
	}
}

// sendEvent, tek bir client'a event gönderir (broadcast değil).
// Hub'ın read lock'u altında çalışır: client Hub'dan çıkarılmışsa send channel'ı
// kapalıdır ve yazılmaz.
func (c *Client) sendEvent(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		c.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()

	if !c.hub.clients[c.adminID][c] {
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping connection")
		go c.hub.Unregister(c)
	}
}

// WritePump, send channel'ındaki mesajları WebSocket bağlantısına yazar.
// Channel kapanınca (Hub client'ı çıkardı) close frame gönderir ve döner.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.writeMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.writeMessage(websocket.CloseMessage, nil)
}

// writeMessage, gorilla/websocket conn'a aynı anda birden fazla yazma
// yapılamadığı için mutex altında yazar.
func (c *Client) writeMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(messageType, data)
}
