package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
)

type stubValidator struct{}

func (stubValidator) ValidateAccessToken(token string) (*models.TokenClaims, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return &models.TokenClaims{AdminID: "a1"}, nil
}

type stubRevisions map[string]int64

func (s stubRevisions) Revisions(context.Context) (map[string]int64, error) {
	return s, nil
}

func startServer(t *testing.T) (*Hub, string) {
	t.Helper()

	hub := NewHub(nil)
	go hub.Run()

	h := NewHandler(hub, stubValidator{}, stubRevisions{"services": 3, "faqs": 1}, nil, nil)
	srv := httptest.NewServer(http.HandlerFunc(h.HandleConnection))
	t.Cleanup(func() {
		hub.Shutdown()
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

type rawEvent struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"d"`
	Seq  int64           `json:"seq"`
}

func readEvent(t *testing.T, conn *websocket.Conn) rawEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev rawEvent
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHandler_RejectsInvalidToken(t *testing.T) {
	_, url := startServer(t)

	for _, q := range []string{"", "?token=forged"} {
		_, resp, err := websocket.DefaultDialer.Dial(url+q, nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	}
}

func TestHandler_ReadyThenBroadcast(t *testing.T) {
	hub, url := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	defer conn.Close()

	ready := readEvent(t, conn)
	assert.Equal(t, OpReady, ready.Op)
	var data ReadyData
	require.NoError(t, json.Unmarshal(ready.Data, &data))
	assert.Equal(t, "a1", data.AdminID)
	assert.Equal(t, map[string]int64{"services": 3, "faqs": 1}, data.Revisions)

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.BroadcastToAll(Event{Op: OpCollectionReorder, Data: models.CollectionEvent{
		Collection: models.CollectionFAQs, Revision: 2,
	}})

	ev := readEvent(t, conn)
	assert.Equal(t, OpCollectionReorder, ev.Op)
	assert.Equal(t, int64(1), ev.Seq)
	var payload models.CollectionEvent
	require.NoError(t, json.Unmarshal(ev.Data, &payload))
	assert.Equal(t, models.CollectionFAQs, payload.Collection)
	assert.Equal(t, int64(2), payload.Revision)
}

func TestHandler_HeartbeatAck(t *testing.T) {
	hub, url := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	defer conn.Close()

	readEvent(t, conn) // ready
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(Event{Op: OpHeartbeat}))
	assert.Equal(t, OpHeartbeatAck, readEvent(t, conn).Op)
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub, url := startServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	readEvent(t, conn)
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// Bağlantı yokken broadcast bloklamaz
	hub.BroadcastToAll(Event{Op: OpCollectionReset})
}
