// Package dominance implements a payoff-based support.Oracle for
// extensive-form games.
package dominance

import (
	"fmt"

	"github.com/timpalpant/efgsupport/game"
	"github.com/timpalpant/efgsupport/support"
)

const defaultTolerance = 1e-9

// Payoff decides domination between two actions at the same infoset by
// comparing the owning player's expected payoff after each of them,
// against every contingency: every choice of one active action at each
// other player infoset that has any.
//
// Unconditional comparisons use the expected payoff from the root.
// Conditional comparisons use the expected payoff from each member of
// the infoset reachable under the support, compared member by member.
// Strong domination requires a strictly better payoff in every
// comparison; weak domination requires no worse payoffs everywhere and a
// strictly better one somewhere.
type Payoff struct {
	// Payoff differences within Tolerance are treated as ties.
	// Zero means 1e-9.
	Tolerance float64
}

var _ support.Oracle = Payoff{}

// IsDominated implements support.Oracle.
func (p Payoff) IsDominated(s *support.Support, a *game.Action, strong, conditional bool) bool {
	for _, b := range s.Actions(a.Infoset()) {
		if b != a && p.Dominates(s, b, a, strong, conditional) {
			return true
		}
	}

	return false
}

// Dominates implements support.Oracle.
func (p Payoff) Dominates(s *support.Support, a, b *game.Action, strong, conditional bool) bool {
	is := a.Infoset()
	if b.Infoset() != is {
		panic(fmt.Errorf("cannot compare %v and %v at different infosets", a, b))
	}
	if a == b || is.IsChance() {
		return false
	}

	var starts []*game.Node
	if conditional {
		starts = reachableMembers(s, is)
	} else {
		starts = []*game.Node{s.Game().Root()}
	}

	if len(starts) == 0 {
		return false
	}

	tol := p.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}

	c := newContingencies(s, is)
	strictSomewhere := false
	for {
		for _, n := range starts {
			c.choice[is.ID()] = a.Number()
			va := c.value(n)
			c.choice[is.ID()] = b.Number()
			vb := c.value(n)

			switch {
			case va > vb+tol:
				strictSomewhere = true
			case strong:
				return false
			case va < vb-tol:
				return false
			}
		}

		if !c.next() {
			break
		}
	}

	return strictSomewhere
}

// contingencies iterates over pure choices at every player infoset
// other than the one being compared, restricted to the support.
type contingencies struct {
	player int
	// choice[is.ID()] is the action number chosen at is, or -1 if none.
	choice []int
	// free are the infosets being iterated over, with their options.
	free    []*game.Infoset
	options [][]int
	cursor  []int
}

func newContingencies(s *support.Support, fixed *game.Infoset) *contingencies {
	g := s.Game()
	c := &contingencies{
		player: fixed.Player().Number(),
		choice: make([]int, g.NumInfosets()),
	}

	for i := range c.choice {
		c.choice[i] = -1
	}

	for pl := 0; pl < g.NumPlayers(); pl++ {
		player := g.Player(pl)
		for iset := 0; iset < player.NumInfosets(); iset++ {
			is := player.Infoset(iset)
			if is == fixed {
				continue
			}

			actions := s.Actions(is)
			if len(actions) == 0 {
				continue
			}

			options := make([]int, len(actions))
			for i, a := range actions {
				options[i] = a.Number()
			}

			c.free = append(c.free, is)
			c.options = append(c.options, options)
			c.choice[is.ID()] = options[0]
		}
	}

	c.cursor = make([]int, len(c.free))
	return c
}

// next advances to the following contingency, returning false once all
// have been visited.
func (c *contingencies) next() bool {
	for i := len(c.free) - 1; i >= 0; i-- {
		c.cursor[i]++
		if c.cursor[i] < len(c.options[i]) {
			c.choice[c.free[i].ID()] = c.options[i][c.cursor[i]]
			return true
		}

		c.cursor[i] = 0
		c.choice[c.free[i].ID()] = c.options[i][0]
	}

	return false
}

// value returns the compared player's expected payoff below n under the
// current contingency. Subtrees behind an infoset with no choice are
// worth zero.
func (c *contingencies) value(n *game.Node) float64 {
	if n.IsTerminal() {
		return n.Payoff(c.player)
	}

	is := n.Infoset()
	if is.IsChance() {
		total := 0.0
		for i := 0; i < n.NumChildren(); i++ {
			total += is.Action(i).Probability() * c.value(n.Child(i))
		}

		return total
	}

	choice := c.choice[is.ID()]
	if choice < 0 {
		return 0
	}

	return c.value(n.Child(choice))
}

// reachableMembers returns the members of is reachable from the root
// using only actions in the support.
func reachableMembers(s *support.Support, is *game.Infoset) []*game.Node {
	var result []*game.Node
	for i := 0; i < is.NumMembers(); i++ {
		if member := is.Member(i); isReachable(s, member) {
			result = append(result, member)
		}
	}

	return result
}

func isReachable(s *support.Support, n *game.Node) bool {
	for ; !n.IsRoot(); n = n.Parent() {
		if !s.ActionIsActive(n.PriorAction()) {
			return false
		}
	}

	return true
}
