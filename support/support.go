// Package support implements supports of extensive-form games: the
// subset of each player infoset's actions considered active, plus an
// ActiveSupport that tracks which nodes and infosets remain reachable
// as actions are removed and restored.
package support

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/timpalpant/efgsupport/game"
)

// Support records, for every player infoset of a game, which of its
// actions are active. Chance actions are always active.
//
// A *Support handed out by this package is never modified afterwards;
// derive new supports with Clone, With and Without.
type Support struct {
	game *game.Game
	// active[a.ID()] is whether action a is in the support.
	active []bool
	// counts[is.ID()] is the number of active actions at infoset is.
	counts []int
}

// Full returns the support containing every action of the game.
func Full(g *game.Game) *Support {
	s := &Support{
		game:   g,
		active: make([]bool, g.NumActions()),
		counts: make([]int, g.NumInfosets()),
	}

	for i := range s.active {
		s.active[i] = true
	}
	for i := range s.counts {
		s.counts[i] = g.Infoset(i).NumActions()
	}

	return s
}

func (s *Support) Game() *game.Game { return s.game }

// Clone returns a deep copy of the support.
func (s *Support) Clone() *Support {
	return &Support{
		game:   s.game,
		active: slices.Clone(s.active),
		counts: slices.Clone(s.counts),
	}
}

// Without returns a copy of the support with the given actions removed.
// Actions that are already inactive are ignored.
func (s *Support) Without(actions ...*game.Action) *Support {
	result := s.Clone()
	for _, a := range actions {
		if result.active[a.ID()] {
			result.remove(a)
		}
	}

	return result
}

// With returns a copy of the support with the given actions added.
// Actions that are already active are ignored.
func (s *Support) With(actions ...*game.Action) *Support {
	result := s.Clone()
	for _, a := range actions {
		if !result.active[a.ID()] {
			result.add(a)
		}
	}

	return result
}

// ActionIsActive returns whether the action is in the support.
func (s *Support) ActionIsActive(a *game.Action) bool {
	return s.active[a.ID()]
}

// Contains is a synonym for ActionIsActive.
func (s *Support) Contains(a *game.Action) bool {
	return s.ActionIsActive(a)
}

// ActionIsActiveAt returns whether the action'th action of the infoset'th
// infoset of the player'th player is in the support. All indices are 0-based.
func (s *Support) ActionIsActiveAt(player, infoset, action int) bool {
	is := s.game.Player(player).Infoset(infoset)
	return s.active[is.Action(action).ID()]
}

// NumActions returns the number of active actions at the infoset.
func (s *Support) NumActions(is *game.Infoset) int {
	return s.counts[is.ID()]
}

// Actions returns the active actions at the infoset, in order.
func (s *Support) Actions(is *game.Infoset) []*game.Action {
	result := make([]*game.Action, 0, s.counts[is.ID()])
	for i := 0; i < is.NumActions(); i++ {
		if a := is.Action(i); s.active[a.ID()] {
			result = append(result, a)
		}
	}

	return result
}

// Equal returns whether both supports are over the same game and
// contain the same actions.
func (s *Support) Equal(other *Support) bool {
	return s.game == other.game && slices.Equal(s.active, other.active)
}

// ReachableInfosets returns the player infosets with at least one member
// reachable from the root using only actions in the support, in the
// depth-first order they are first reached.
func (s *Support) ReachableInfosets() []*game.Infoset {
	var result []*game.Infoset
	seen := make([]bool, s.game.NumInfosets())
	var walk func(n *game.Node)
	walk = func(n *game.Node) {
		if n.IsTerminal() {
			return
		}

		is := n.Infoset()
		if !is.IsChance() && !seen[is.ID()] {
			seen[is.ID()] = true
			result = append(result, is)
		}

		for i := 0; i < n.NumChildren(); i++ {
			if s.active[is.Action(i).ID()] {
				walk(n.Child(i))
			}
		}
	}

	walk(s.game.Root())
	return result
}

// NumDegreesOfFreedom returns the number of free choices the support
// leaves open: the sum, over reachable player infosets, of the number
// of active actions less one.
func (s *Support) NumDegreesOfFreedom() int {
	total := 0
	for _, is := range s.ReachableInfosets() {
		total += s.counts[is.ID()] - 1
	}

	return total
}

// String implements fmt.Stringer.
func (s *Support) String() string {
	var parts []string
	for pl := 0; pl < s.game.NumPlayers(); pl++ {
		player := s.game.Player(pl)
		for iset := 0; iset < player.NumInfosets(); iset++ {
			is := player.Infoset(iset)
			labels := make([]string, 0, s.counts[is.ID()])
			for _, a := range s.Actions(is) {
				labels = append(labels, a.Label())
			}

			parts = append(parts, fmt.Sprintf("%v{%s}", is, strings.Join(labels, ",")))
		}
	}

	return strings.Join(parts, " ")
}

func (s *Support) add(a *game.Action) {
	if s.active[a.ID()] {
		panic(fmt.Errorf("action %v is already in the support", a))
	}

	s.active[a.ID()] = true
	s.counts[a.Infoset().ID()]++
}

func (s *Support) remove(a *game.Action) {
	if a.Infoset().IsChance() {
		panic(fmt.Errorf("cannot remove chance action %v", a))
	}
	if !s.active[a.ID()] {
		panic(fmt.Errorf("action %v is not in the support", a))
	}

	s.active[a.ID()] = false
	s.counts[a.Infoset().ID()]--
}
