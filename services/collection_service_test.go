package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg"
	"github.com/akinalp/sitekit/testutil"
	"github.com/akinalp/sitekit/ws"
)

func serviceIDs(view *models.CollectionView[models.Service]) []string {
	ids := make([]string, len(view.Items))
	for i, s := range view.Items {
		ids[i] = s.ID
	}
	return ids
}

func TestCollectionService_ReorderBroadcastsAndInvalidatesCache(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()
	ids := testutil.SeedServices(t, f.db, 3)

	before, err := f.collections.ListServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids, serviceIDs(before))
	assert.Equal(t, int64(0), before.Revision)

	view, err := f.collections.Reorder(ctx, models.CollectionServices, &models.ReorderRequest{
		Items:    fullOrder(ids[2], ids[1], ids[0]),
		Revision: int64Ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.Revision)
	assert.Equal(t, fullOrder(ids[2], ids[1], ids[0]), view.Items)

	// Cache temizlenmiş olmalı: yeni sıra hemen görünür
	after, err := f.collections.ListServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, serviceIDs(after))
	assert.Equal(t, int64(1), after.Revision)

	events := f.publisher.collectionEvents()
	require.Len(t, events, 1)
	assert.Equal(t, models.CollectionServices, events[0].Collection)
	assert.Equal(t, int64(1), events[0].Revision)
	assert.False(t, events[0].Reset)
	assert.Equal(t, []string{ws.OpCollectionReorder}, f.publisher.ops())
}

func TestCollectionService_ReorderRejectsInvalidPayload(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	ids := testutil.SeedFAQs(t, f.db, 3)

	// Yapısal hata (boşluk) → service katmanında reddedilir
	_, err := f.collections.Reorder(ctx, models.CollectionFAQs, &models.ReorderRequest{
		Items: []models.OrderUpdate{{ID: ids[0], DisplayOrder: 1}, {ID: ids[1], DisplayOrder: 3}},
	})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))

	// Eksik item → repository transaction'ında reddedilir
	_, err = f.collections.Reorder(ctx, models.CollectionFAQs, &models.ReorderRequest{
		Items: fullOrder(ids[1], ids[0]),
	})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))

	assert.Empty(t, f.publisher.ops())
	assert.Equal(t, ids, testutil.OrderOf(t, f.db, "faqs"))
}

func TestCollectionService_StaleRevisionConflicts(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	ids := testutil.SeedFAQs(t, f.db, 2)

	_, err := f.collections.Reorder(ctx, models.CollectionFAQs, &models.ReorderRequest{
		Items: fullOrder(ids[1], ids[0]), Revision: int64Ptr(0),
	})
	require.NoError(t, err)

	// İkinci sekme hâlâ revizyon 0'ı biliyor
	_, err = f.collections.Reorder(ctx, models.CollectionFAQs, &models.ReorderRequest{
		Items: fullOrder(ids[0], ids[1]), Revision: int64Ptr(0),
	})
	assert.True(t, errors.Is(err, pkg.ErrConflict))
	assert.Equal(t, []string{ids[1], ids[0]}, testutil.OrderOf(t, f.db, "faqs"))
}

func TestCollectionService_UnknownCollection(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.collections.Reorder(context.Background(), models.CollectionKind("admins"), &models.ReorderRequest{
		Items: fullOrder("x"),
	})
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestCollectionService_ConcurrentReordersSerialize(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	ids := testutil.SeedServices(t, f.db, 4)

	orders := [][]string{
		{ids[3], ids[2], ids[1], ids[0]},
		{ids[1], ids[0], ids[3], ids[2]},
		{ids[0], ids[3], ids[1], ids[2]},
	}

	errs := make(chan error, len(orders))
	for _, order := range orders {
		go func() {
			_, err := f.collections.Reorder(ctx, models.CollectionServices, &models.ReorderRequest{
				Items: fullOrder(order...),
			})
			errs <- err
		}()
	}
	for range orders {
		require.NoError(t, <-errs)
	}

	rev, err := f.collections.Revisions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rev["services"])
	assert.Equal(t, int64(0), rev["faqs"])

	// Son sıra gönderilen tam sıralardan biri olmalı — karışık bir sıra değil
	assert.Contains(t, orders, testutil.OrderOf(t, f.db, "services"))
	assert.Equal(t, []int{1, 2, 3, 4}, testutil.PositionsOf(t, f.db, "services"))
}

func TestCollectionService_ListFAQs(t *testing.T) {
	f := newFixture(t, time.Minute)
	ctx := context.Background()
	testutil.SeedFAQs(t, f.db, 5)

	view, err := f.collections.ListFAQs(ctx, models.FAQQuery{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	assert.Equal(t, "Question 2?", view.Items[0].Question)

	view, err = f.collections.ListFAQs(ctx, models.FAQQuery{Search: "question 4"})
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 4, view.Items[0].DisplayOrder)

	_, err = f.collections.ListFAQs(ctx, models.FAQQuery{Limit: -1})
	assert.True(t, errors.Is(err, pkg.ErrBadRequest))
}

func TestNewReorderSettings(t *testing.T) {
	s, err := NewReorderSettings(0, 0, "", "")
	require.NoError(t, err)
	assert.Equal(t, 100.0, s.RowTolerance)
	assert.Equal(t, 250.0, s.ProximityThreshold)
	assert.Equal(t, map[string]string{"services": "swap", "faqs": "insert"}, s.Policies)

	s, err = NewReorderSettings(60, 180, "insert", "SWAP")
	require.NoError(t, err)
	assert.Equal(t, 60.0, s.RowTolerance)
	assert.Equal(t, map[string]string{"services": "insert", "faqs": "swap"}, s.Policies)

	_, err = NewReorderSettings(0, 0, "shuffle", "")
	assert.Error(t, err)
}
