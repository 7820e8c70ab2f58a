package efgsupport

import (
	"github.com/timpalpant/efgsupport/game"
	"github.com/timpalpant/efgsupport/support"
)

// DeletionsViolateCommitments returns whether deactivating the given
// infosets undoes a decision the search has already committed to. An
// infoset behind the cursor must not lose reachability while it still
// has active actions, and at the cursor's own infoset no action before
// the cursor may still be active.
func (c ActionCursor) DeletionsViolateCommitments(s *support.ActiveSupport, deactivated []*game.Infoset) bool {
	for _, is := range deactivated {
		pl := is.Player().Number()
		if pl < c.pl || (pl == c.pl && is.Number() < c.iset) {
			if s.NumActions(is) > 0 {
				return true
			}
		}

		if pl == c.pl && is.Number() == c.iset {
			for i := 0; i < c.ActionIndex(); i++ {
				if s.ActionIsActive(is.Action(i)) {
					return true
				}
			}
		}
	}

	return false
}

// InfosetGuaranteedActive returns whether some member of the infoset is
// reached along a path whose every action is active and already behind
// the cursor, so no later deletion can make the infoset unreachable.
func (c ActionCursor) InfosetGuaranteedActive(s *support.ActiveSupport, is *game.Infoset) bool {
	for i := 0; i < is.NumMembers(); i++ {
		for n := is.Member(i); ; n = n.Parent() {
			if n.IsRoot() {
				return true
			}

			prior := n.PriorAction()
			if !s.ActionIsActive(prior) || !c.IsSubsequentTo(prior) {
				break
			}
		}
	}

	return false
}
