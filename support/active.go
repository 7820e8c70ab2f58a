package support

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/timpalpant/efgsupport/game"
)

// ActiveSupport is a mutable Support together with the set of nodes and
// infosets that remain reachable under it. A nonterminal node is active
// iff every action on its path from the root is in the support; an
// infoset is active iff at least one of its members is.
//
// Derived state is updated incrementally: AddAction exactly undoes the
// preceding RemoveAction of the same action.
type ActiveSupport struct {
	support *Support
	oracle  Oracle
	// nodeActive[n.ID()] is whether nonterminal node n is reachable.
	nodeActive []bool
	// activeMembers[is.ID()] is the number of reachable members of is.
	activeMembers []int
}

// NewActiveSupport creates an ActiveSupport over a private copy of s,
// answering domination queries with o.
func NewActiveSupport(s *Support, o Oracle) *ActiveSupport {
	g := s.Game()
	as := &ActiveSupport{
		support:       s.Clone(),
		oracle:        o,
		nodeActive:    make([]bool, g.NumNodes()),
		activeMembers: make([]int, g.NumInfosets()),
	}

	as.activate(g.Root())
	return as
}

// Clone returns an independent copy, sharing only the game and oracle.
func (as *ActiveSupport) Clone() *ActiveSupport {
	return &ActiveSupport{
		support:       as.support.Clone(),
		oracle:        as.oracle,
		nodeActive:    slices.Clone(as.nodeActive),
		activeMembers: slices.Clone(as.activeMembers),
	}
}

func (as *ActiveSupport) Game() *game.Game { return as.support.game }

// Snapshot returns an immutable copy of the current support.
func (as *ActiveSupport) Snapshot() *Support {
	return as.support.Clone()
}

func (as *ActiveSupport) ActionIsActive(a *game.Action) bool {
	return as.support.ActionIsActive(a)
}

func (as *ActiveSupport) ActionIsActiveAt(player, infoset, action int) bool {
	return as.support.ActionIsActiveAt(player, infoset, action)
}

func (as *ActiveSupport) NumActions(is *game.Infoset) int {
	return as.support.NumActions(is)
}

func (as *ActiveSupport) Actions(is *game.Infoset) []*game.Action {
	return as.support.Actions(is)
}

func (as *ActiveSupport) InfosetIsActive(is *game.Infoset) bool {
	return as.activeMembers[is.ID()] > 0
}

func (as *ActiveSupport) NodeIsActive(n *game.Node) bool {
	return as.nodeActive[n.ID()]
}

// RemoveAction removes an active player action from the support.
func (as *ActiveSupport) RemoveAction(a *game.Action) {
	as.RemoveActionReturningDeletedInfosets(a, nil)
}

// RemoveActionReturningDeletedInfosets removes an active player action,
// appending to deleted every player infoset that became inactive as a
// result, and returns the extended slice.
func (as *ActiveSupport) RemoveActionReturningDeletedInfosets(a *game.Action, deleted []*game.Infoset) []*game.Infoset {
	if a.Infoset().IsChance() {
		panic(fmt.Errorf("cannot remove chance action %v", a))
	}
	if !as.support.ActionIsActive(a) {
		panic(fmt.Errorf("cannot remove inactive action %v", a))
	}

	is := a.Infoset()
	for i := 0; i < is.NumMembers(); i++ {
		if member := is.Member(i); as.nodeActive[member.ID()] {
			deleted = as.deactivate(member.ChildFor(a), deleted)
		}
	}

	as.support.remove(a)
	return deleted
}

// AddAction restores an inactive action to the support.
func (as *ActiveSupport) AddAction(a *game.Action) {
	as.support.add(a)

	is := a.Infoset()
	for i := 0; i < is.NumMembers(); i++ {
		member := is.Member(i)
		if !as.nodeActive[member.ID()] {
			continue
		}

		// A member below another member of the same infoset has already
		// been reached through a.
		if child := member.ChildFor(a); !as.nodeActive[child.ID()] {
			as.activate(child)
		}
	}
}

// HasActiveActionsAtActiveInfosets returns whether every active player
// infoset has at least one active action.
func (as *ActiveSupport) HasActiveActionsAtActiveInfosets() bool {
	g := as.Game()
	for pl := 0; pl < g.NumPlayers(); pl++ {
		player := g.Player(pl)
		for iset := 0; iset < player.NumInfosets(); iset++ {
			is := player.Infoset(iset)
			if as.InfosetIsActive(is) && as.support.NumActions(is) == 0 {
				return false
			}
		}
	}

	return true
}

// HasActiveActionsAtActiveInfosetsAndNoOthers returns whether the support
// is well formed: every active player infoset has at least one active
// action and no inactive infoset has any.
func (as *ActiveSupport) HasActiveActionsAtActiveInfosetsAndNoOthers() bool {
	g := as.Game()
	for pl := 0; pl < g.NumPlayers(); pl++ {
		player := g.Player(pl)
		for iset := 0; iset < player.NumInfosets(); iset++ {
			is := player.Infoset(iset)
			if as.InfosetIsActive(is) != (as.support.NumActions(is) > 0) {
				return false
			}
		}
	}

	return true
}

// IsDominated asks the oracle whether a is dominated at the current support.
func (as *ActiveSupport) IsDominated(a *game.Action, strong, conditional bool) bool {
	return as.oracle.IsDominated(as.support, a, strong, conditional)
}

// Dominates asks the oracle whether a dominates b at the current support.
func (as *ActiveSupport) Dominates(a, b *game.Action, strong, conditional bool) bool {
	return as.oracle.Dominates(as.support, a, b, strong, conditional)
}

// Equal returns whether both have the same support and derived state.
func (as *ActiveSupport) Equal(other *ActiveSupport) bool {
	return as.support.Equal(other.support) &&
		slices.Equal(as.nodeActive, other.nodeActive) &&
		slices.Equal(as.activeMembers, other.activeMembers)
}

// Consistent recomputes the derived state from scratch and returns
// whether it matches the incrementally maintained state.
func (as *ActiveSupport) Consistent() bool {
	return as.Equal(NewActiveSupport(as.support, as.oracle))
}

// activate marks n and everything reachable below it through active
// actions as active. n must currently be inactive.
func (as *ActiveSupport) activate(n *game.Node) {
	if n.IsTerminal() {
		return
	}

	if as.nodeActive[n.ID()] {
		panic(fmt.Errorf("%v is already active", n))
	}

	as.nodeActive[n.ID()] = true
	is := n.Infoset()
	as.activeMembers[is.ID()]++
	for i := 0; i < n.NumChildren(); i++ {
		if as.support.ActionIsActive(is.Action(i)) {
			as.activate(n.Child(i))
		}
	}
}

// deactivate marks n and its active descendants inactive, appending each
// player infoset that loses its last active member.
func (as *ActiveSupport) deactivate(n *game.Node, deleted []*game.Infoset) []*game.Infoset {
	if n.IsTerminal() || !as.nodeActive[n.ID()] {
		return deleted
	}

	as.nodeActive[n.ID()] = false
	is := n.Infoset()
	as.activeMembers[is.ID()]--
	if as.activeMembers[is.ID()] == 0 && !is.IsChance() {
		deleted = append(deleted, is)
	}

	for i := 0; i < n.NumChildren(); i++ {
		deleted = as.deactivate(n.Child(i), deleted)
	}

	return deleted
}
