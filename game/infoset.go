package game

import (
	"fmt"
)

// Infoset is a set of decision nodes that its owning player cannot
// distinguish between. Every member node offers the same actions.
type Infoset struct {
	player  *Player
	id      int
	number  int
	label   string
	actions []*Action
	members []*Node
}

func (is *Infoset) Player() *Player { return is.player }
func (is *Infoset) Game() *Game     { return is.player.game }

// ID is the game-wide index of the infoset.
func (is *Infoset) ID() int { return is.id }

// Number is the 0-based index of the infoset within its player.
func (is *Infoset) Number() int { return is.number }

func (is *Infoset) IsChance() bool { return is.player.IsChance() }

func (is *Infoset) Label() string { return is.label }

func (is *Infoset) SetLabel(label string) *Infoset {
	is.label = label
	return is
}

func (is *Infoset) NumActions() int { return len(is.actions) }

// Action returns the i'th (0-based) action at the infoset.
func (is *Infoset) Action(i int) *Action { return is.actions[i] }

func (is *Infoset) NumMembers() int { return len(is.members) }

// Member returns the i'th node belonging to the infoset, in the order
// the nodes were added.
func (is *Infoset) Member(i int) *Node { return is.members[i] }

// Precedes reports whether the infoset comes strictly before other in
// canonical (player, infoset) order. Chance infosets precede all others.
func (is *Infoset) Precedes(other *Infoset) bool {
	if is.player.number != other.player.number {
		return is.player.number < other.player.number
	}

	return is.number < other.number
}

// String implements fmt.Stringer.
func (is *Infoset) String() string {
	if is.label != "" {
		return fmt.Sprintf("%v:%s", is.player, is.label)
	}

	return fmt.Sprintf("%v:%d", is.player, is.number+1)
}

// Action is a move available at an infoset.
type Action struct {
	infoset     *Infoset
	id          int
	number      int
	label       string
	probability float64
}

func (a *Action) Infoset() *Infoset { return a.infoset }

// ID is the game-wide index of the action.
func (a *Action) ID() int { return a.id }

// Number is the 0-based index of the action within its infoset.
func (a *Action) Number() int { return a.number }

func (a *Action) Label() string { return a.label }

func (a *Action) SetLabel(label string) *Action {
	a.label = label
	return a
}

// Probability returns the probability of a chance action.
// It is zero for player actions.
func (a *Action) Probability() float64 { return a.probability }

// SetProbability sets the probability of a chance action.
// SetProbability panics if the action belongs to a player.
func (a *Action) SetProbability(p float64) *Action {
	if !a.infoset.IsChance() {
		panic(fmt.Errorf("cannot set probability of player action %v", a))
	}

	a.probability = p
	return a
}

// Precedes reports whether a comes strictly before other in canonical
// (player, infoset, action) order.
func (a *Action) Precedes(other *Action) bool {
	if a.infoset != other.infoset {
		return a.infoset.Precedes(other.infoset)
	}

	return a.number < other.number
}

// String implements fmt.Stringer.
func (a *Action) String() string {
	return fmt.Sprintf("%v:%s", a.infoset, a.label)
}
