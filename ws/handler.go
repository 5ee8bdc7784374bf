package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/akinalp/sitekit/models"
)

// TokenValidator, WebSocket handler'ın JWT doğrulaması için kullandığı interface.
//
// services paketi ws.EventPublisher'ı kullandığı için ws paketi services'i
// import edemez (döngü). Sadece ValidateAccessToken gerektiğinden küçük bir
// interface yeterli; authService bunu implicit olarak karşılar.
type TokenValidator interface {
	ValidateAccessToken(tokenString string) (*models.TokenClaims, error)
}

// RevisionSource, bağlantı kurulduğunda OpReady ile gönderilecek revizyonları sağlar.
type RevisionSource interface {
	Revisions(ctx context.Context) (map[string]int64, error)
}

// Handler, WebSocket bağlantı isteklerini işleyen HTTP handler'ı.
type Handler struct {
	hub            *Hub
	tokenValidator TokenValidator
	revisions      RevisionSource
	upgrader       websocket.Upgrader
	logger         *zap.Logger
}

// NewHandler, yeni bir WebSocket handler oluşturur.
// allowedOrigins boşsa sadece aynı origin'den gelen bağlantılar kabul edilir
// (gorilla'nın varsayılan kontrolü).
func NewHandler(hub *Hub, tokenValidator TokenValidator, revisions RevisionSource, allowedOrigins []string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	if len(allowedOrigins) > 0 {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(allowedOrigins, origin)
		}
	}

	return &Handler{
		hub:            hub,
		tokenValidator: tokenValidator,
		revisions:      revisions,
		upgrader:       upgrader,
		logger:         logger.Named("ws"),
	}
}

// HandleConnection, HTTP bağlantısını WebSocket'e yükseltir ve client'ı Hub'a kaydeder.
//
// Tarayıcı WebSocket bağlantısında Authorization header gönderemediği için
// token query parameter'ı olarak gelir: ws://server/ws?token=JWT_TOKEN
func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokenValidator.ValidateAccessToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", zap.String("admin_id", claims.AdminID), zap.Error(err))
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		adminID: claims.AdminID,
		send:    make(chan []byte, sendBufferSize),
		logger:  h.logger.With(zap.String("admin_id", claims.AdminID)),
	}

	// Ready event'i kayıttan önce buffer'a konur: ilk mesaj her zaman odur
	// ve kayıttan sonra gelen broadcast'ler onun arkasına sıralanır.
	ready := ReadyData{AdminID: claims.AdminID}
	if h.revisions != nil {
		revs, err := h.revisions.Revisions(r.Context())
		if err != nil {
			h.logger.Warn("failed to load revisions for ready event", zap.Error(err))
		}
		ready.Revisions = revs
	}
	if data, err := json.Marshal(Event{Op: OpReady, Data: ready}); err == nil {
		client.send <- data
	}

	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	client.ReadPump() // bağlantı kapanana kadar bloklar
}
