package reorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akinalp/sitekit/models"
)

// Syncer, tamamlanmış bir sıralamayı kalıcı hale getiren istemci.
//
// Her zaman TAM sıra gönderilir (delta değil) — aynı son sırayı retry ile
// tekrar göndermek aynı sonucu üretir (idempotent).
// baseRevision, istemcinin bildiği son koleksiyon revizyonudur; sunucu daha
// yeni bir revizyon görmüşse isteği reddeder (stale write koruması).
type Syncer interface {
	Sync(ctx context.Context, kind models.CollectionKind, baseRevision int64, items []models.OrderUpdate) (int64, error)
}

// SyncError, sunucunun başarısız yanıtını taşır.
type SyncError struct {
	Status  int
	Message string
}

func (e *SyncError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("reorder sync failed: HTTP %d", e.Status)
	}
	return fmt.Sprintf("reorder sync failed: HTTP %d: %s", e.Status, e.Message)
}

// NeedsRefresh, sunucu daha yeni bir revizyon bildiği için isteği reddettiyse true döner.
// Bu durumda istemci koleksiyonu GET ile yeniden yükleyip tekrar denemelidir.
func (e *SyncError) NeedsRefresh() bool {
	return e.Status == http.StatusConflict
}

// TokenSource, admin access token'ını döner (ör. refresh sonrası güncel token).
type TokenSource func() string

// HTTPSyncer, POST /api/{collection}/reorder endpoint'ine konuşan Syncer.
type HTTPSyncer struct {
	baseURL string
	client  *http.Client
	token   TokenSource
}

// NewHTTPSyncer, yeni bir HTTPSyncer oluşturur.
// client nil ise 15sn timeout'lu bir client kullanılır (sunucunun WriteTimeout'u ile aynı).
func NewHTTPSyncer(baseURL string, client *http.Client, token TokenSource) *HTTPSyncer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPSyncer{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		token:   token,
	}
}

// syncResponse, APIResponse zarfının Syncer'ın ihtiyaç duyduğu kısmı.
type syncResponse struct {
	Success bool                    `json:"success"`
	Data    *models.CollectionOrder `json:"data,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// Sync, tam sırayı gönderir ve sunucunun atadığı yeni revizyonu döner.
// Ağ hatası, 2xx olmayan status veya success=false başarısızlık sayılır.
func (s *HTTPSyncer) Sync(ctx context.Context, kind models.CollectionKind, baseRevision int64, items []models.OrderUpdate) (int64, error) {
	body, err := json.Marshal(models.ReorderRequest{
		Items:    items,
		Revision: &baseRevision,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to encode reorder request: %w", err)
	}

	url := fmt.Sprintf("%s/api/%s/reorder", s.baseURL, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build reorder request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != nil {
		if tok := s.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send reorder request: %w", err)
	}
	defer resp.Body.Close()

	var out syncResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &SyncError{Status: resp.StatusCode, Message: out.Error}
	}
	if decodeErr != nil {
		return 0, fmt.Errorf("failed to decode reorder response: %w", decodeErr)
	}
	if !out.Success {
		return 0, &SyncError{Status: resp.StatusCode, Message: out.Error}
	}
	if out.Data == nil {
		return baseRevision, nil
	}
	return out.Data.Revision, nil
}
