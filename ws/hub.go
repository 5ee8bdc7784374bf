package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// EventPublisher, service katmanının WebSocket event'leri broadcast etmek için
// kullandığı interface. Service testlerinde sahte bir publisher kullanılabilir.
type EventPublisher interface {
	BroadcastToAll(event Event)
	ConnectionCount() int
}

// Hub, tüm WebSocket bağlantılarını yöneten merkezi yapıdır (Observer pattern).
//
// Hub.Run() goroutine'i register/unregister channel'larından okur; broadcast
// ise doğrudan çağıran goroutine'de, RLock altında yapılır.
type Hub struct {
	// clients: adminID → Client set (bir admin'in birden fazla sekmesi olabilir).
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	closeOnce  sync.Once

	seq    atomic.Int64
	logger *zap.Logger
}

// NewHub, yeni bir Hub oluşturur.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.Named("ws"),
	}
}

// Run, Hub'ın ana event loop'udur. main.go'da `go hub.Run()` ile başlatılır,
// Shutdown çağrılınca döner.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.done:
			return
		}
	}
}

// Register, client'ı Hub'a ekler. Hub kapanmışsa false döner.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister, client'ı Hub'dan çıkarır. Hub kapanmışsa bloklamaz.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.adminID]; !ok {
		h.clients[client.adminID] = make(map[*Client]bool)
	}
	h.clients[client.adminID][client] = true

	h.logger.Debug("client connected",
		zap.String("admin_id", client.adminID),
		zap.Int("connections", len(h.clients[client.adminID])),
	)
}

// removeClient, client'ı çıkarır ve send channel'ını kapatır.
// Client map'te yoksa (zaten çıkarılmış veya Shutdown sonrası) hiçbir şey yapmaz;
// böylece send channel'ı iki kez kapatılmaz.
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.adminID]
	if !ok {
		return
	}
	if _, exists := clients[client]; !exists {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.adminID)
	}

	h.logger.Debug("client disconnected",
		zap.String("admin_id", client.adminID),
		zap.Int("remaining", len(clients)),
	)
}

// BroadcastToAll, tüm bağlı client'lara event gönderir.
// Buffer'ı dolu (yavaş) client'lar kapatılır.
func (h *Hub) BroadcastToAll(event Event) {
	event.Seq = h.seq.Add(1)

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal broadcast event", zap.String("op", event.Op), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				go h.Unregister(client)
			}
		}
	}
}

// ConnectionCount, açık bağlantı sayısını döner (health endpoint'i için).
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, clients := range h.clients {
		n += len(clients)
	}
	return n
}

// Shutdown, tüm client bağlantılarını kapatır ve Run loop'unu durdurur (graceful shutdown).
func (h *Hub) Shutdown() {
	h.closeOnce.Do(func() {
		close(h.done)

		h.mu.Lock()
		defer h.mu.Unlock()

		for _, clients := range h.clients {
			for client := range clients {
				close(client.send)
			}
		}
		h.clients = make(map[string]map[*Client]bool)
		h.logger.Info("hub shut down, all connections closed")
	})
}
