package reorder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_FullGesture(t *testing.T) {
	s := NewSession(NewResolver(0, 0))
	assert.Equal(t, StateIdle, s.State())

	require.NoError(t, s.Grasp("a"))
	assert.Equal(t, StateGrasped, s.State())
	assert.Equal(t, "a", s.Item())

	target, ok, err := s.Move(Point{X: 130, Y: 40}, gridLayout())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Target{ID: "b", Side: SideBefore}, target)
	assert.Equal(t, StateTargeting, s.State())

	d, err := s.Drop(Point{X: 130, Y: 40}, gridLayout())
	require.NoError(t, err)
	assert.Equal(t, Drop{Item: "a", Target: Target{ID: "b", Side: SideBefore}, HasTarget: true}, d)
	assert.Equal(t, StateReleased, s.State())

	require.NoError(t, s.Finish())
	assert.Equal(t, StateIdle, s.State())
	assert.Empty(t, s.Item())
}

func TestSession_RejectsOverlappingGesture(t *testing.T) {
	s := NewSession(NewResolver(0, 0))
	require.NoError(t, s.Grasp("a"))

	err := s.Grasp("b")
	assert.True(t, errors.Is(err, ErrGestureActive))

	_, err = s.Drop(Point{}, nil)
	require.NoError(t, err)

	// Released'da da yeni gesture başlatılamaz
	err = s.Grasp("b")
	assert.True(t, errors.Is(err, ErrGestureActive))
}

func TestSession_ClaimIsSticky(t *testing.T) {
	s := NewSession(NewResolver(0, 0))
	require.NoError(t, s.Grasp("a"))

	_, _, err := s.Move(Point{X: 130, Y: 40}, gridLayout())
	require.NoError(t, err)

	// Hiçbir adaya yakın olmayan nokta → claim korunur
	target, ok, err := s.Move(Point{X: 2000, Y: 2000}, gridLayout())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", target.ID)

	// Başka adayın üstü → claim geçer
	target, ok, err = s.Move(Point{X: 180, Y: 150}, gridLayout())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Target{ID: "e", Side: SideAfter}, target)

	// Surface'ten çıkış → claim temizlenir
	s.Leave()
	_, ok = s.Claimed()
	assert.False(t, ok)
}

func TestSession_QuickDropResolvesAtDropPoint(t *testing.T) {
	s := NewSession(NewResolver(0, 0))
	require.NoError(t, s.Grasp("a"))

	// Hiç Move gelmeden drop
	d, err := s.Drop(Point{X: 200, Y: 40}, gridLayout())
	require.NoError(t, err)
	assert.True(t, d.HasTarget)
	assert.True(t, d.Quick)
	assert.Equal(t, Target{ID: "b", Side: SideAfter}, d.Target)
}

func TestSession_DropWithoutTarget(t *testing.T) {
	s := NewSession(NewResolver(0, 0))
	require.NoError(t, s.Grasp("a"))

	d, err := s.Drop(Point{X: 2000, Y: 2000}, gridLayout())
	require.NoError(t, err)
	assert.False(t, d.HasTarget)
	assert.False(t, d.Quick)
}

func TestSession_NoGesture(t *testing.T) {
	s := NewSession(NewResolver(0, 0))

	_, _, err := s.Move(Point{}, nil)
	assert.True(t, errors.Is(err, ErrNoGesture))

	_, err = s.Drop(Point{}, nil)
	assert.True(t, errors.Is(err, ErrNoGesture))

	assert.True(t, errors.Is(s.Finish(), ErrNoGesture))
	assert.Error(t, s.Grasp(""))
}

func TestSession_Cancel(t *testing.T) {
	s := NewSession(NewResolver(0, 0))
	require.NoError(t, s.Grasp("a"))
	_, _, err := s.Move(Point{X: 130, Y: 40}, gridLayout())
	require.NoError(t, err)

	s.Cancel()
	assert.Equal(t, StateIdle, s.State())
	_, ok := s.Claimed()
	assert.False(t, ok)
	require.NoError(t, s.Grasp("b"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "targeting", StateTargeting.String())
	assert.Equal(t, "state(9)", State(9).String())
}

func TestSession_QuickDropMatchesHoveredDrop(t *testing.T) {
	points := []Point{
		{X: 130, Y: 40}, {X: 200, Y: 40}, {X: 290, Y: 10},
		{X: 20, Y: 150}, {X: 180, Y: 150}, {X: 2000, Y: 2000},
	}

	for _, layout := range [][]Box{gridLayout(), smallGrid()} {
		for _, p := range points {
			hovered := NewSession(NewResolver(0, 0))
			require.NoError(t, hovered.Grasp("a"))
			_, _, err := hovered.Move(p, layout)
			require.NoError(t, err)
			want, err := hovered.Drop(p, layout)
			require.NoError(t, err)

			quick := NewSession(NewResolver(0, 0))
			require.NoError(t, quick.Grasp("a"))
			got, err := quick.Drop(p, layout)
			require.NoError(t, err)

			assert.Equal(t, want.HasTarget, got.HasTarget, "point %+v", p)
			assert.Equal(t, want.Target, got.Target, "point %+v", p)
			assert.False(t, want.Quick)
			assert.Equal(t, got.HasTarget, got.Quick)
		}
	}
}
