package efgsupport

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/timpalpant/efgsupport/dominance"
	"github.com/timpalpant/efgsupport/internal/gametest"
	"github.com/timpalpant/efgsupport/support"
)

func TestStableBucketOrder(t *testing.T) {
	testCases := []struct {
		sizes    []int
		expected []int
	}{
		{nil, nil},
		{[]int{4}, []int{0}},
		{[]int{3, 1, 3, 2, 1}, []int{1, 4, 3, 0, 2}},
		{[]int{2, 2, 2}, []int{0, 1, 2}},
		{[]int{0, -1, 5, -1}, []int{1, 3, 0, 2}},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, stableBucketOrder(tc.sizes), "%v", tc.sizes)
	}
}

func TestSortBySize(t *testing.T) {
	g := gametest.ChanceFirst()
	supports := AllInequivalentSubsupports(support.Full(g))
	sorted := SortBySize(supports)
	assert.Len(t, sorted, len(supports))

	expected := make([]*support.Support, len(supports))
	copy(expected, supports)
	sort.SliceStable(expected, func(i, j int) bool {
		return expected[i].NumDegreesOfFreedom() < expected[j].NumDegreesOfFreedom()
	})

	assert.Equal(t, keys(expected), keys(sorted))
	assert.Equal(t, 0, sorted[0].NumDegreesOfFreedom())
	assert.Equal(t, 3, sorted[len(sorted)-1].NumDegreesOfFreedom())
}

func TestFilterWeaklyDominated(t *testing.T) {
	o := dominance.Payoff{}

	t.Run("prisoners dilemma", func(t *testing.T) {
		full := support.Full(prisonersDilemma())
		result := FilterWeaklyDominated(AllInequivalentSubsupports(full), full, o)
		assert.Equal(t, []string{"Row:R{D} Col:C{R}"}, keys(result))
	})

	t.Run("inactive alternatives", func(t *testing.T) {
		// Up weakly dominates Down. A support playing only Down is
		// rejected even though Up is not in it.
		u1 := [2][2]float64{{1, 1}, {1, 0}}
		g := gametest.Simultaneous(u1, zeros)
		full := support.Full(g)
		up := g.Player(0).Infoset(0).Action(0)
		down := g.Player(0).Infoset(0).Action(1)

		onlyDown := full.Without(up)
		onlyUp := full.Without(down)
		result := FilterWeaklyDominated([]*support.Support{full, onlyDown, onlyUp}, full, o)
		assert.Equal(t, keys([]*support.Support{onlyUp}), keys(result))
	})

	t.Run("alternatives that break well-formedness are ignored", func(t *testing.T) {
		// Restoring In would reach an incumbent with no actions.
		g := gametest.Entry()
		full := support.Full(g)
		entrant := g.Player(0).Infoset(0)
		incumbent := g.Player(1).Infoset(0)

		out := full.Without(entrant.Action(1), incumbent.Action(0), incumbent.Action(1))
		assert.Equal(t, keys([]*support.Support{out}),
			keys(FilterWeaklyDominated([]*support.Support{out}, full, o)))
	})

	t.Run("no domination", func(t *testing.T) {
		full := support.Full(matchingPennies())
		supports := []*support.Support{full}
		assert.Equal(t, keys(supports), keys(FilterWeaklyDominated(supports, full, support.NoDomination{})))
	})
}
