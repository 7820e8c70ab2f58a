package efgsupport

import (
	"github.com/timpalpant/efgsupport/game"
	"github.com/timpalpant/efgsupport/support"
)

// FilterWeaklyDominated returns the supports, in order, in which no
// active action is weakly dominated (conditionally or unconditionally)
// by another action at its infoset. Inactive alternatives count too,
// whenever adding them leaves the support well formed. Actions are
// visited in the canonical order of base.
func FilterWeaklyDominated(supports []*support.Support, base *support.Support, o support.Oracle) []*support.Support {
	result := make([]*support.Support, 0, len(supports))
	for _, s := range supports {
		if !hasWeaklyDominatedAction(s, base, o) {
			result = append(result, s)
		}
	}

	return result
}

func hasWeaklyDominatedAction(s, base *support.Support, o support.Oracle) bool {
	c, ok := NewActionCursor(base)
	if !ok {
		return false
	}

	current := support.NewActiveSupport(s, o)
	for {
		if a := c.Action(); current.ActionIsActive(a) && isWeaklyDominated(current, a) {
			return true
		}

		if !c.Advance() {
			return false
		}
	}
}

func isWeaklyDominated(current *support.ActiveSupport, a *game.Action) bool {
	is := a.Infoset()
	for i := 0; i < is.NumActions(); i++ {
		other := is.Action(i)
		if other == a {
			continue
		}

		if current.ActionIsActive(other) {
			if weaklyDominates(current, other, a) {
				return true
			}
			continue
		}

		current.AddAction(other)
		dominated := current.HasActiveActionsAtActiveInfosetsAndNoOthers() &&
			weaklyDominates(current, other, a)
		current.RemoveAction(other)
		if dominated {
			return true
		}
	}

	return false
}

func weaklyDominates(s *support.ActiveSupport, a, b *game.Action) bool {
	return s.Dominates(a, b, false, true) || s.Dominates(a, b, false, false)
}

// SortBySize returns the supports ordered by ascending degrees of
// freedom. Supports of equal size keep their relative order.
func SortBySize(supports []*support.Support) []*support.Support {
	sizes := make([]int, len(supports))
	for i, s := range supports {
		sizes[i] = s.NumDegreesOfFreedom()
	}

	result := make([]*support.Support, len(supports))
	for i, j := range stableBucketOrder(sizes) {
		result[i] = supports[j]
	}

	return result
}

// stableBucketOrder returns the permutation that sorts sizes ascending,
// keeping equal sizes in input order, using one counting pass.
func stableBucketOrder(sizes []int) []int {
	if len(sizes) == 0 {
		return nil
	}

	lo, hi := sizes[0], sizes[0]
	for _, size := range sizes {
		if size < lo {
			lo = size
		}
		if size > hi {
			hi = size
		}
	}

	// starts[k] is the first output slot for size lo+k.
	starts := make([]int, hi-lo+2)
	for _, size := range sizes {
		starts[size-lo+1]++
	}
	for k := 1; k < len(starts); k++ {
		starts[k] += starts[k-1]
	}

	order := make([]int, len(sizes))
	for i, size := range sizes {
		order[starts[size-lo]] = i
		starts[size-lo]++
	}

	return order
}
