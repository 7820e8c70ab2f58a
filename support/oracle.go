package support

import (
	"github.com/timpalpant/efgsupport/game"
)

// Oracle decides whether actions dominate one another within a support.
//
// strong selects strict domination over weak; conditional restricts the
// comparison to the nodes of the infoset that the support can reach.
// Implementations must not retain or modify the support.
type Oracle interface {
	// IsDominated returns whether some other active action at a's infoset
	// dominates a.
	IsDominated(s *Support, a *game.Action, strong, conditional bool) bool
	// Dominates returns whether a dominates b. Both must belong to the
	// same infoset.
	Dominates(s *Support, a, b *game.Action, strong, conditional bool) bool
}

// NoDomination is an Oracle under which no action is ever dominated.
type NoDomination struct{}

func (NoDomination) IsDominated(*Support, *game.Action, bool, bool) bool {
	return false
}

func (NoDomination) Dominates(*Support, *game.Action, *game.Action, bool, bool) bool {
	return false
}
