package efgsupport

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/efgsupport/dominance"
	"github.com/timpalpant/efgsupport/game"
	"github.com/timpalpant/efgsupport/internal/gametest"
	"github.com/timpalpant/efgsupport/support"
)

var zeros = [2][2]float64{}

func keys(supports []*support.Support) []string {
	result := make([]string, len(supports))
	for i, s := range supports {
		result[i] = s.String()
	}

	return result
}

func isWellFormed(s *support.Support) bool {
	return support.NewActiveSupport(s, support.NoDomination{}).HasActiveActionsAtActiveInfosetsAndNoOthers()
}

// bruteForceWellFormed filters every subsupport down to the well-formed
// ones. It is the reference for the inequivalent enumeration.
func bruteForceWellFormed(s *support.Support) []*support.Support {
	var result []*support.Support
	for _, sub := range AllSubsupports(s) {
		if isWellFormed(sub) {
			result = append(result, sub)
		}
	}

	return result
}

func testGames() map[string]*game.Game {
	return map[string]*game.Game{
		"single infoset": gametest.SingleInfoset(3),
		"simultaneous":   gametest.Simultaneous(zeros, zeros),
		"entry":          gametest.Entry(),
		"two subgames":   gametest.TwoSubgames(),
		"chance first":   gametest.ChanceFirst(),
		"absent-minded":  gametest.AbsentMinded(),
	}
}

func TestAllSubsupportsOfSingleInfoset(t *testing.T) {
	for n := 1; n <= 5; n++ {
		t.Run(fmt.Sprintf("%d actions", n), func(t *testing.T) {
			g := gametest.SingleInfoset(n)
			result := AllSubsupports(support.Full(g))
			assert.Len(t, result, 1<<uint(n))

			seen := make(map[string]bool)
			for _, s := range keys(result) {
				assert.False(t, seen[s], "duplicate support %s", s)
				seen[s] = true
			}
		})
	}
}

func TestAllSubsupportsOfEmptySupport(t *testing.T) {
	g := gametest.SingleInfoset(2)
	is := g.Player(0).Infoset(0)
	empty := support.Full(g).Without(is.Action(0), is.Action(1))

	result := AllSubsupports(empty)
	require.Len(t, result, 1)
	assert.True(t, result[0].Equal(empty))
	assert.Empty(t, AllInequivalentSubsupports(empty))
}

func TestSimultaneousCounts(t *testing.T) {
	full := support.Full(gametest.Simultaneous(zeros, zeros))
	assert.Len(t, AllSubsupports(full), 16)
	assert.Len(t, AllInequivalentSubsupports(full), 9)
	for _, strong := range []bool{false, true} {
		for _, conditional := range []bool{false, true} {
			assert.Len(t, AllUndominatedSubsupports(full, support.NoDomination{}, strong, conditional), 9)
			assert.Len(t, AllUndominatedSubsupports(full, dominance.Payoff{}, strong, conditional), 9)
		}
	}

	// Row's Down is strictly worse than Up whatever Col does.
	u1 := [2][2]float64{{2, 2}, {1, 1}}
	full = support.Full(gametest.Simultaneous(u1, zeros))
	result := AllUndominatedSubsupports(full, dominance.Payoff{}, true, false)
	assert.Equal(t, []string{
		"Row:R{U} Col:C{L,R}",
		"Row:R{U} Col:C{R}",
		"Row:R{U} Col:C{L}",
	}, keys(result))
}

// fixedDomination reports a single action as strongly dominated
// wherever it is asked about, whatever the payoffs.
type fixedDomination struct {
	dominated *game.Action
}

func (o fixedDomination) IsDominated(s *support.Support, a *game.Action, strong, conditional bool) bool {
	return a == o.dominated
}

func (o fixedDomination) Dominates(s *support.Support, a, b *game.Action, strong, conditional bool) bool {
	return b == o.dominated && a != b
}

func TestUndominatedWithFixedOracle(t *testing.T) {
	g := gametest.Simultaneous(zeros, zeros)
	down := g.Player(0).Infoset(0).Action(1)
	o := fixedDomination{dominated: down}

	for _, conditional := range []bool{false, true} {
		t.Run(fmt.Sprintf("conditional=%v", conditional), func(t *testing.T) {
			result := AllUndominatedSubsupports(support.Full(g), o, true, conditional)
			assert.Equal(t, []string{
				"Row:R{U} Col:C{L,R}",
				"Row:R{U} Col:C{R}",
				"Row:R{U} Col:C{L}",
			}, keys(result))
		})
	}
}

func TestInequivalentMatchesBruteForce(t *testing.T) {
	expectedCounts := map[string]int{
		"single infoset": 7,
		"simultaneous":   9,
		"entry":          7,
		"two subgames":   15,
		"chance first":   27,
		"absent-minded":  7,
	}

	for name, g := range testGames() {
		t.Run(name, func(t *testing.T) {
			full := support.Full(g)
			result := AllInequivalentSubsupports(full)
			assert.Len(t, result, expectedCounts[name])
			assert.ElementsMatch(t, keys(bruteForceWellFormed(full)), keys(result))
		})
	}
}

// Removing the leader's x is rejected once the cursor is past I1 and
// I1 still has actions, but removing y from the same frame is not: the
// loop must go on to y rather than abandon the frame.
func TestRejectedBranchDoesNotEndLoop(t *testing.T) {
	g := gametest.TwoSubgames()
	i2 := g.Player(0).Infoset(1)
	y := g.Player(1).Infoset(0).Action(1)
	full := support.Full(g)

	want := full.Without(i2.Action(0), i2.Action(1), y).String()
	assert.Contains(t, keys(AllInequivalentSubsupports(full)), want)
}

func TestUndominatedResultsHaveNoDominatedActions(t *testing.T) {
	games := testGames()
	games["prisoners dilemma"] = prisonersDilemma()
	games["matching pennies"] = matchingPennies()

	for name, g := range games {
		for _, strong := range []bool{false, true} {
			for _, conditional := range []bool{false, true} {
				t.Run(fmt.Sprintf("%s/strong=%v/conditional=%v", name, strong, conditional), func(t *testing.T) {
					o := dominance.Payoff{}
					full := support.Full(g)
					inequivalent := keys(AllInequivalentSubsupports(full))
					for _, s := range AllUndominatedSubsupports(full, o, strong, conditional) {
						assert.True(t, isWellFormed(s), "%v", s)
						assert.Contains(t, inequivalent, s.String())
						forEachActiveAction(s, func(a *game.Action) {
							assert.False(t, o.IsDominated(s, a, strong, conditional), "%v in %v", a, s)
						})
					}
				})
			}
		}
	}
}

func forEachActiveAction(s *support.Support, f func(a *game.Action)) {
	g := s.Game()
	for pl := 0; pl < g.NumPlayers(); pl++ {
		for iset := 0; iset < g.Player(pl).NumInfosets(); iset++ {
			for _, a := range s.Actions(g.Player(pl).Infoset(iset)) {
				f(a)
			}
		}
	}
}

func TestSearchRestoresActiveSupport(t *testing.T) {
	variants := []variant{
		allSubsupports,
		inequivalentSubsupports,
		possibleNashSubsupports,
		undominatedSubsupports(false, true),
	}

	for name, g := range testGames() {
		for _, v := range variants {
			t.Run(name+"/"+v.name, func(t *testing.T) {
				base := support.Full(g)
				e := &enumerator{
					variant: v,
					base:    base,
					sact:    support.NewActiveSupport(base, dominance.Payoff{}),
				}

				c, ok := NewActionCursor(base)
				require.True(t, ok)
				e.search(c)

				assert.NotEmpty(t, e.results)
				assert.True(t, e.sact.Equal(support.NewActiveSupport(base, dominance.Payoff{})))
			})
		}
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	o := dominance.Payoff{}
	for name, g := range testGames() {
		t.Run(name, func(t *testing.T) {
			full := support.Full(g)
			for _, workers := range []int{2, 3, 8} {
				assert.Equal(t, keys(AllSubsupports(full)),
					keys(AllSubsupports(full, WithWorkers(workers))))
				assert.Equal(t, keys(AllInequivalentSubsupports(full)),
					keys(AllInequivalentSubsupports(full, WithWorkers(workers))))
				assert.Equal(t, keys(AllUndominatedSubsupports(full, o, false, false)),
					keys(AllUndominatedSubsupports(full, o, false, false, WithWorkers(workers))))
				assert.Equal(t, keys(PossibleNashSubsupports(full, o)),
					keys(PossibleNashSubsupports(full, o, WithWorkers(workers))))
			}
		})
	}
}

func TestWithLimit(t *testing.T) {
	full := support.Full(gametest.TwoSubgames())
	all := keys(AllInequivalentSubsupports(full))
	require.Len(t, all, 15)

	for _, limit := range []int{1, 4, 15, 20} {
		t.Run(fmt.Sprintf("limit=%d", limit), func(t *testing.T) {
			n := limit
			if n > len(all) {
				n = len(all)
			}

			assert.Equal(t, all[:n], keys(AllInequivalentSubsupports(full, WithLimit(limit))))
			assert.Equal(t, all[:n], keys(AllInequivalentSubsupports(full, WithLimit(limit), WithWorkers(4))))
		})
	}

	// Non-positive values leave the option unset.
	assert.Equal(t, all, keys(AllInequivalentSubsupports(full, WithLimit(0), WithWorkers(-1))))
}

func prisonersDilemma() *game.Game {
	// Up and Left cooperate; Down and Right defect.
	u1 := [2][2]float64{{3, 0}, {5, 1}}
	u2 := [2][2]float64{{3, 5}, {0, 1}}
	return gametest.Simultaneous(u1, u2)
}

func matchingPennies() *game.Game {
	u1 := [2][2]float64{{1, -1}, {-1, 1}}
	u2 := [2][2]float64{{-1, 1}, {1, -1}}
	return gametest.Simultaneous(u1, u2)
}

func TestPossibleNashSubsupports(t *testing.T) {
	o := dominance.Payoff{}

	t.Run("prisoners dilemma", func(t *testing.T) {
		result := PossibleNashSubsupports(support.Full(prisonersDilemma()), o)
		assert.Equal(t, []string{"Row:R{D} Col:C{R}"}, keys(result))
	})

	t.Run("matching pennies", func(t *testing.T) {
		full := support.Full(matchingPennies())
		result := PossibleNashSubsupports(full, o)
		require.Len(t, result, 1)
		assert.True(t, result[0].Equal(full))
		assert.Equal(t, 2, result[0].NumDegreesOfFreedom())
	})

	for name, g := range testGames() {
		t.Run(name, func(t *testing.T) {
			full := support.Full(g)
			result := PossibleNashSubsupports(full, o)
			assert.NotEmpty(t, result)
			for i, s := range result {
				assert.True(t, isWellFormed(s), "%v", s)
				assert.False(t, hasWeaklyDominatedAction(s, full, o), "%v", s)
				if i > 0 {
					assert.LessOrEqual(t, result[i-1].NumDegreesOfFreedom(), s.NumDegreesOfFreedom())
				}
			}
		})
	}
}

const absentMindedGame = `
title = "Absent-minded driver"
players = ["Driver"]

[root]
player = "Driver"
infoset = "x"
actions = ["exit", "continue"]

[[root.children]]
payoffs = [0]

[[root.children]]
player = "Driver"
infoset = "x"
actions = ["exit", "continue"]

[[root.children.children]]
payoffs = [4]

[[root.children.children]]
payoffs = [1]
`

// An infoset with a member below another member is reached twice along
// one path when an action is restored.
func TestAbsentMindedGameFromFile(t *testing.T) {
	g, err := game.Decode(strings.NewReader(absentMindedGame))
	require.NoError(t, err)

	full := support.Full(g)
	result := AllInequivalentSubsupports(full)
	assert.ElementsMatch(t, []string{"Driver:x{exit}", "Driver:x{continue}", "Driver:x{exit,continue}"}, keys(result))
	assert.Len(t, AllSubsupports(full), 4)
	assert.Equal(t, []string{"Driver:x{continue}"}, keys(PossibleNashSubsupports(full, dominance.Payoff{})))
}
