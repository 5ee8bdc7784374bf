package reorder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
)

func TestHTTPSyncer_SendsFullOrderWithRevision(t *testing.T) {
	var got models.ReorderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/faqs/reorder", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"collection":"faqs","revision":8,"items":[]}}`))
	}))
	defer srv.Close()

	s := NewHTTPSyncer(srv.URL+"/", srv.Client(), func() string { return "tok-1" })
	items := []models.OrderUpdate{{ID: "b", DisplayOrder: 1}, {ID: "a", DisplayOrder: 2}}

	rev, err := s.Sync(context.Background(), models.CollectionFAQs, 7, items)
	require.NoError(t, err)
	assert.Equal(t, int64(8), rev)

	assert.Equal(t, items, got.Items)
	require.NotNil(t, got.Revision)
	assert.Equal(t, int64(7), *got.Revision)
}

func TestHTTPSyncer_ConflictNeedsRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":"conflict: collection services is at revision 4"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPSyncer(srv.URL, nil, nil).Sync(context.Background(), models.CollectionServices, 1, nil)

	var syncErr *SyncError
	require.True(t, errors.As(err, &syncErr))
	assert.Equal(t, http.StatusConflict, syncErr.Status)
	assert.True(t, syncErr.NeedsRefresh())
	assert.Contains(t, syncErr.Error(), "revision 4")
}

func TestHTTPSyncer_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"success":false,"error":"internal server error"}`},
		{"bad request", http.StatusBadRequest, `{"success":false,"error":"bad request: duplicate item id: a"}`},
		{"success false on 200", http.StatusOK, `{"success":false,"error":"nope"}`},
		{"non json error", http.StatusBadGateway, `<html>bad gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewHTTPSyncer(srv.URL, nil, nil).Sync(context.Background(), models.CollectionFAQs, 0, nil)

			var syncErr *SyncError
			require.True(t, errors.As(err, &syncErr))
			assert.Equal(t, tt.status, syncErr.Status)
			assert.False(t, syncErr.NeedsRefresh())
		})
	}
}

func TestHTTPSyncer_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSyncer(url, nil, nil).Sync(context.Background(), models.CollectionFAQs, 0, nil)
	require.Error(t, err)

	var syncErr *SyncError
	assert.False(t, errors.As(err, &syncErr))
}
