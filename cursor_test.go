package efgsupport

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/efgsupport/game"
	"github.com/timpalpant/efgsupport/internal/gametest"
	"github.com/timpalpant/efgsupport/support"
)

type position struct {
	pl, iset, action int
}

func walk(t *testing.T, s *support.Support) []position {
	c, ok := NewActionCursor(s)
	require.True(t, ok)

	var result []position
	for {
		result = append(result, position{c.PlayerIndex(), c.InfosetIndex(), c.ActionIndex()})
		if !c.Advance() {
			return result
		}
	}
}

func TestCursorOrder(t *testing.T) {
	g := gametest.ChanceFirst()
	full := support.Full(g)
	expected := []position{
		{0, 0, 0}, {0, 0, 1},
		{0, 1, 0}, {0, 1, 1},
		{1, 0, 0}, {1, 0, 1},
	}
	assert.Equal(t, expected, walk(t, full))

	left := g.Player(0).Infoset(0)
	col := g.Player(1).Infoset(0)
	s := full.Without(left.Action(0), left.Action(1), col.Action(0))
	assert.Equal(t, []position{{0, 1, 0}, {0, 1, 1}, {1, 0, 1}}, walk(t, s))
}

func TestCursorSkipsPlayersWithoutInfosets(t *testing.T) {
	g := game.New("idle", "Idle", "Mover", "Bystander")
	is := g.Root().AppendMove(g.Player(1), 3)
	for i := 0; i < is.NumActions(); i++ {
		g.Root().Child(i).SetPayoffs(0, float64(i), 0)
	}

	assert.Equal(t, []position{{1, 0, 0}, {1, 0, 1}, {1, 0, 2}}, walk(t, support.Full(g)))
}

func TestCursorWithNoActions(t *testing.T) {
	g := gametest.SingleInfoset(2)
	is := g.Player(0).Infoset(0)
	c, ok := NewActionCursor(support.Full(g).Without(is.Action(0), is.Action(1)))
	assert.False(t, ok)
	assert.Equal(t, "cursor(none)", fmt.Sprintf("%v", c))
	assert.Equal(t, "cursor(none)", ActionCursor{}.String())
}

func TestCursorAccessors(t *testing.T) {
	g := gametest.Simultaneous([2][2]float64{}, [2][2]float64{})
	s := support.Full(g)
	row := g.Player(0).Infoset(0)
	col := g.Player(1).Infoset(0)

	c, ok := NewActionCursor(s)
	require.True(t, ok)
	assert.Equal(t, row.Action(0), c.Action())
	assert.Equal(t, row, c.Infoset())
	assert.Equal(t, g.Player(0), c.Player())
	assert.False(t, c.IsLast())

	start := c
	require.True(t, c.Advance())
	assert.False(t, c.Equal(start))
	assert.Equal(t, row.Action(0), start.Action(), "copies advance independently")
	assert.Equal(t, "cursor(0,0,1)", c.String())

	require.True(t, c.Advance())
	require.True(t, c.Advance())
	assert.Equal(t, col.Action(1), c.Action())
	assert.True(t, c.IsLast())
	assert.False(t, c.Advance())
	assert.Equal(t, col.Action(1), c.Action(), "a failed Advance leaves the cursor in place")

	other, _ := NewActionCursor(s)
	assert.True(t, other.Equal(start))
	clone, _ := NewActionCursor(s.Clone())
	assert.False(t, clone.Equal(start), "cursors over different supports differ")
}

func TestIsSubsequentTo(t *testing.T) {
	g := gametest.ChanceFirst()
	s := support.Full(g)
	left := g.Player(0).Infoset(0)
	right := g.Player(0).Infoset(1)
	col := g.Player(1).Infoset(0)
	deal := g.Chance().Infoset(0)

	c, ok := NewActionCursor(s)
	require.True(t, ok)
	for c.Action() != right.Action(0) {
		require.True(t, c.Advance())
	}

	testCases := []struct {
		action   *game.Action
		expected bool
	}{
		{deal.Action(1), true},
		{left.Action(0), true},
		{left.Action(1), true},
		{right.Action(0), false},
		{right.Action(1), false},
		{col.Action(0), false},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, c.IsSubsequentTo(tc.action), "%v", tc.action)
	}
}

func TestActionIndexIsGameNumber(t *testing.T) {
	g := gametest.SingleInfoset(3)
	is := g.Player(0).Infoset(0)
	s := support.Full(g).Without(is.Action(0))

	c, ok := NewActionCursor(s)
	require.True(t, ok)
	assert.Equal(t, 1, c.ActionIndex())
	assert.True(t, c.IsSubsequentTo(is.Action(0)))
	assert.False(t, c.IsSubsequentTo(is.Action(1)))
}
