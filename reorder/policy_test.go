package reorder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
)

func dropOn(item, target string, side Side) Drop {
	return Drop{Item: item, Target: Target{ID: target, Side: side}, HasTarget: true}
}

func TestSwapPolicy(t *testing.T) {
	order := []string{"a", "b", "c", "d"}

	next, err := SwapPolicy{}.Apply(order, dropOn("a", "c", SideBefore))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a", "d"}, next)

	// Side swap için önemsiz
	next, err = SwapPolicy{}.Apply(order, dropOn("a", "c", SideAfter))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a", "d"}, next)

	// Girdi slice'ı değişmez
	assert.Equal(t, []string{"a", "b", "c", "d"}, order)
}

func TestInsertPolicy(t *testing.T) {
	order := []string{"a", "b", "c", "d"}

	tests := []struct {
		name string
		drop Drop
		want []string
	}{
		{"before later target", dropOn("a", "c", SideBefore), []string{"b", "a", "c", "d"}},
		{"after later target", dropOn("a", "c", SideAfter), []string{"b", "c", "a", "d"}},
		{"before earlier target", dropOn("d", "a", SideBefore), []string{"d", "a", "b", "c"}},
		{"after earlier target", dropOn("d", "a", SideAfter), []string{"a", "d", "b", "c"}},
		{"onto itself", dropOn("b", "b", SideAfter), []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := InsertPolicy{}.Apply(order, tt.drop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestPolicies_NoTargetMovesToEnd(t *testing.T) {
	order := []string{"a", "b", "c"}

	for _, p := range []Policy{SwapPolicy{}, InsertPolicy{}} {
		next, err := p.Apply(order, Drop{Item: "a"})
		require.NoError(t, err, p.Name())
		assert.Equal(t, []string{"b", "c", "a"}, next, p.Name())
	}
}

func TestPolicies_UnknownItem(t *testing.T) {
	order := []string{"a", "b"}

	for _, p := range []Policy{SwapPolicy{}, InsertPolicy{}} {
		_, err := p.Apply(order, dropOn("x", "a", SideBefore))
		assert.True(t, errors.Is(err, ErrUnknownItem), p.Name())

		_, err = p.Apply(order, dropOn("a", "x", SideBefore))
		assert.True(t, errors.Is(err, ErrUnknownItem), p.Name())
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy(" Swap ")
	require.NoError(t, err)
	assert.Equal(t, PolicySwap, p.Name())

	p, err = ParsePolicy("insert")
	require.NoError(t, err)
	assert.Equal(t, PolicyInsert, p.Name())

	_, err = ParsePolicy("shuffle")
	assert.Error(t, err)
}

func TestDefaultPolicy(t *testing.T) {
	assert.Equal(t, PolicySwap, DefaultPolicy(models.CollectionServices).Name())
	assert.Equal(t, PolicyInsert, DefaultPolicy(models.CollectionFAQs).Name())
}

func TestSwapPolicy_SwapBackRestoresOrder(t *testing.T) {
	order := []string{"a", "b", "c", "d", "e", "f"}

	for i := range order {
		for j := range order {
			swapped, err := SwapPolicy{}.Apply(order, dropOn(order[i], order[j], SideBefore))
			require.NoError(t, err)
			assert.Equal(t, order[i], swapped[j])
			assert.Equal(t, order[j], swapped[i])

			restored, err := SwapPolicy{}.Apply(swapped, dropOn(order[i], order[j], SideAfter))
			require.NoError(t, err)
			assert.Equal(t, order, restored, "swap %d<->%d", i, j)
		}
	}
}

func TestInsertPolicy_ShiftsBetweenAndStaysDense(t *testing.T) {
	order := []string{"a", "b", "c", "d", "e", "f"}

	for i := range order {
		for j := range order {
			if i == j {
				continue
			}

			// İleri taşıma hedefin arkasına, geri taşıma hedefin önüne bırakılır;
			// her iki durumda item j indeksine oturur.
			side := SideAfter
			if i > j {
				side = SideBefore
			}
			next, err := InsertPolicy{}.Apply(order, dropOn(order[i], order[j], side))
			require.NoError(t, err)

			require.Len(t, next, len(order))
			assert.ElementsMatch(t, order, next)
			assert.Equal(t, order[i], next[j], "move %d -> %d", i, j)

			for k := range order {
				switch {
				case i < j && k > i && k <= j:
					assert.Equal(t, order[k], next[k-1], "move %d -> %d: item %d shifts back", i, j, k)
				case i > j && k >= j && k < i:
					assert.Equal(t, order[k], next[k+1], "move %d -> %d: item %d shifts forward", i, j, k)
				case k != i && (k < min(i, j) || k > max(i, j)):
					assert.Equal(t, order[k], next[k], "move %d -> %d: item %d stays", i, j, k)
				}
			}

			c := newTestCollection(t, models.CollectionFAQs, order...)
			require.NoError(t, c.setOrder(next))
			for pos, u := range c.Updates() {
				assert.Equal(t, next[pos], u.ID)
				assert.Equal(t, pos+1, u.DisplayOrder)
			}
		}
	}
}
