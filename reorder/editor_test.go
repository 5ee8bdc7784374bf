package reorder

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
)

type syncCall struct {
	base  int64
	order []string
}

// fakeSyncer, çağrıları kaydeder. gate nil değilse her çağrı gate kapanana kadar bekler.
type fakeSyncer struct {
	mu    sync.Mutex
	calls []syncCall
	gate  chan struct{}
	err   error
}

func (f *fakeSyncer) Sync(ctx context.Context, kind models.CollectionKind, base int64, items []models.OrderUpdate) (int64, error) {
	if f.gate != nil {
		<-f.gate
	}

	order := make([]string, len(items))
	for _, it := range items {
		order[it.DisplayOrder-1] = it.ID
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, syncCall{base: base, order: order})
	if f.err != nil {
		return 0, f.err
	}
	return base + 1, nil
}

func (f *fakeSyncer) recorded() []syncCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]syncCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func newTestEditor(t *testing.T, kind models.CollectionKind, syncer Syncer) *Editor {
	t.Helper()
	c := newTestCollection(t, kind, "a", "b", "c", "d", "e")
	return NewEditor(context.Background(), c, 0, EditorConfig{Syncer: syncer})
}

func dragTo(t *testing.T, e *Editor, id string, p Point) []string {
	t.Helper()
	require.NoError(t, e.Grasp(id))
	_, _, err := e.Move(p, gridLayout())
	require.NoError(t, err)
	order, err := e.Drop(p, gridLayout())
	require.NoError(t, err)
	return order
}

func TestEditor_DropAppliesAndSyncs(t *testing.T) {
	syncer := &fakeSyncer{}
	e := newTestEditor(t, models.CollectionFAQs, syncer)

	// a → b'nin arkasına (insert)
	order := dragTo(t, e, "a", Point{X: 200, Y: 40})
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, order)
	assert.Equal(t, StateIdle, e.State())

	e.Wait()
	assert.False(t, e.Busy())
	assert.NoError(t, e.Err())
	assert.Equal(t, int64(1), e.Revision())

	calls := syncer.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(0), calls[0].base)
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, calls[0].order)
}

func TestEditor_FailedSyncKeepsOptimisticOrder(t *testing.T) {
	syncer := &fakeSyncer{err: &SyncError{Status: 500, Message: "internal server error"}}
	e := newTestEditor(t, models.CollectionServices, syncer)

	// a ↔ b (swap)
	order := dragTo(t, e, "a", Point{X: 130, Y: 40})
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, order)

	e.Wait()
	require.Error(t, e.Err())
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, e.Order())
	assert.Equal(t, int64(0), e.Revision())

	e.DismissErr()
	assert.NoError(t, e.Err())
}

func TestEditor_CoalescesDropsWhileBusy(t *testing.T) {
	syncer := &fakeSyncer{gate: make(chan struct{})}
	e := newTestEditor(t, models.CollectionFAQs, syncer)

	dragTo(t, e, "a", Point{X: 200, Y: 40}) // b a c d e
	assert.True(t, e.Busy())

	dragTo(t, e, "c", Point{X: 10, Y: 40})  // a'nın önüne
	dragTo(t, e, "e", Point{X: 300, Y: 40}) // c'nin arkasına
	final := e.Order()

	close(syncer.gate)
	e.Wait()

	calls := syncer.recorded()
	require.Len(t, calls, 2, "intermediate orders must be coalesced")
	assert.Equal(t, int64(0), calls[0].base)
	assert.Equal(t, int64(1), calls[1].base)
	assert.Equal(t, final, calls[1].order)
	assert.Equal(t, int64(2), e.Revision())
	assert.False(t, e.Busy())
}

func TestEditor_ResetDiscardsStaleSyncResult(t *testing.T) {
	syncer := &fakeSyncer{gate: make(chan struct{}), err: errors.New("network down")}
	e := newTestEditor(t, models.CollectionFAQs, syncer)

	dragTo(t, e, "a", Point{X: 200, Y: 40})

	require.NoError(t, e.Reset([]Item{{ID: "x", Position: 1}, {ID: "y", Position: 2}}, 10))
	assert.Equal(t, []string{"x", "y"}, e.Order())

	close(syncer.gate)
	e.Wait()

	assert.NoError(t, e.Err())
	assert.Equal(t, int64(10), e.Revision())
}

func TestEditor_GraspValidation(t *testing.T) {
	e := newTestEditor(t, models.CollectionFAQs, nil)

	assert.True(t, errors.Is(e.Grasp("add-new"), ErrAnchorItem))
	assert.True(t, errors.Is(e.Grasp("zzz"), ErrUnknownItem))

	require.NoError(t, e.Grasp("a"))
	assert.True(t, errors.Is(e.Grasp("b"), ErrGestureActive))

	e.Leave()
	_, ok := e.Claimed()
	assert.False(t, ok)
}

func TestEditor_DropWithoutTargetAppends(t *testing.T) {
	e := newTestEditor(t, models.CollectionServices, nil)

	require.NoError(t, e.Grasp("b"))
	order, err := e.Drop(Point{X: 5000, Y: 5000}, gridLayout())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "d", "e", "b"}, order)
	assert.False(t, e.Busy())

	items := e.Items()
	assert.Equal(t, "add-new", items[len(items)-1].ID)
}

func TestEditor_SwapInSmallWrappedGrid(t *testing.T) {
	c := newTestCollection(t, models.CollectionServices, "a", "b", "c")
	e := NewEditor(context.Background(), c, 0, EditorConfig{})

	// a, b'nin gövdesine bırakılır: a ↔ b
	require.NoError(t, e.Grasp("a"))
	target, ok, err := e.Move(Point{X: 170, Y: 40}, smallGrid())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b", target.ID)

	order, err := e.Drop(Point{X: 170, Y: 50}, smallGrid())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, order)
}
