// Package efgsupport enumerates supports of extensive-form games: subsets
// of each player's actions that are consistent and free of (some notion
// of) dominated actions, as candidates for equilibrium computation.
//
// All four enumerations share one backtracking search that walks the
// actions of the starting support in canonical order, removing one
// action at a time and restoring it on the way back out. Each support
// is produced at most once: removals that would retroactively change a
// decision already passed by the cursor are rejected.
package efgsupport

import (
	"expvar"
	"sync"
	"time"

	"github.com/golang/glog"

	"github.com/timpalpant/efgsupport/game"
	"github.com/timpalpant/efgsupport/support"
)

var (
	supportsVisited  = expvar.NewInt("supports/visited")
	supportsAccepted = expvar.NewInt("supports/accepted")
	guardRejections  = expvar.NewInt("supports/guard_rejections")
)

// AllSubsupports returns every subsupport of s, including s itself and
// the empty support.
func AllSubsupports(s *support.Support, opts ...Option) []*support.Support {
	return run(allSubsupports, s, support.NoDomination{}, opts)
}

// AllInequivalentSubsupports returns one well-formed subsupport of s for
// each class of path-equivalent subsupports: those that agree on every
// infoset reachable under either.
func AllInequivalentSubsupports(s *support.Support, opts ...Option) []*support.Support {
	return run(inequivalentSubsupports, s, support.NoDomination{}, opts)
}

// AllUndominatedSubsupports returns the well-formed subsupports of s in
// which no active action is dominated, in the sense selected by strong
// and conditional, by another active action.
func AllUndominatedSubsupports(s *support.Support, o support.Oracle, strong, conditional bool, opts ...Option) []*support.Support {
	return run(undominatedSubsupports(strong, conditional), s, o, opts)
}

// PossibleNashSubsupports returns the well-formed subsupports of s that
// could be the support of a Nash equilibrium: no active action is weakly
// dominated, either by an active action or by an inactive one whose
// addition keeps the support well formed. The result is sorted by
// ascending degrees of freedom.
func PossibleNashSubsupports(s *support.Support, o support.Oracle, opts ...Option) []*support.Support {
	candidates := run(possibleNashSubsupports, s, o, opts)
	result := FilterWeaklyDominated(candidates, s, o)
	glog.V(1).Infof("%d of %d candidate supports survive the weak domination filter",
		len(result), len(candidates))
	return SortBySize(result)
}

// variant parameterizes the shared search.
type variant struct {
	name string
	// guarded checks every single-action removal against the cursor.
	guarded bool
	// accept decides whether the support at a frame is recorded.
	accept func(sact *support.ActiveSupport) bool
	// scan, if set, runs at the start of every frame to find actions
	// that must be removed before branching.
	scan func(e *enumerator, c ActionCursor) scanResult
}

type scanResult struct {
	deletions []*game.Action
	// admissible is false if the support at this frame must not be
	// recorded even when accept holds.
	admissible bool
	// abort discards the whole frame.
	abort bool
}

func always(*support.ActiveSupport) bool { return true }

func wellFormed(sact *support.ActiveSupport) bool {
	return sact.HasActiveActionsAtActiveInfosetsAndNoOthers()
}

var (
	allSubsupports = variant{
		name:   "all subsupports",
		accept: always,
	}

	inequivalentSubsupports = variant{
		name:    "inequivalent subsupports",
		guarded: true,
		accept:  wellFormed,
	}

	possibleNashSubsupports = variant{
		name:    "possible Nash subsupports",
		guarded: true,
		accept:  wellFormed,
		scan:    scanPossibleNash,
	}
)

func undominatedSubsupports(strong, conditional bool) variant {
	return variant{
		name:    "undominated subsupports",
		guarded: true,
		accept:  wellFormed,
		scan: func(e *enumerator, c ActionCursor) scanResult {
			checkDomination := e.sact.HasActiveActionsAtActiveInfosets()
			deletions, abort := e.scanDeletions(c, func(a *game.Action) bool {
				if !e.sact.InfosetIsActive(a.Infoset()) {
					return true
				}

				return checkDomination && e.sact.IsDominated(a, strong, conditional)
			})

			return scanResult{deletions: deletions, admissible: true, abort: abort}
		},
	}
}

// scanPossibleNash removes actions at unreachable infosets, and strongly
// dominated actions whose infoset no later removal can make unreachable.
// Any other strongly dominated action only disqualifies this frame's
// support; its subsupports are still explored.
func scanPossibleNash(e *enumerator, c ActionCursor) scanResult {
	checkDomination := e.sact.HasActiveActionsAtActiveInfosets()
	admissible := true
	deletions, abort := e.scanDeletions(c, func(a *game.Action) bool {
		if !e.sact.InfosetIsActive(a.Infoset()) {
			return true
		}

		if checkDomination && (e.sact.IsDominated(a, true, true) || e.sact.IsDominated(a, true, false)) {
			admissible = false
			return c.InfosetGuaranteedActive(e.sact, a.Infoset())
		}

		return false
	})

	return scanResult{deletions: deletions, admissible: admissible, abort: abort}
}

type enumerator struct {
	variant variant
	// base is the starting support; every cursor walks it.
	base    *support.Support
	sact    *support.ActiveSupport
	results []*support.Support

	limit   int
	workers int
	// forked is set once the first candidate loop has been fanned out.
	forked bool
}

func run(v variant, s *support.Support, o support.Oracle, opts []Option) []*support.Support {
	base := s.Clone()
	e := &enumerator{
		variant: v,
		base:    base,
		sact:    support.NewActiveSupport(base, o),
	}

	for _, opt := range opts {
		opt(e)
	}

	start := time.Now()
	if c, ok := NewActionCursor(base); ok {
		e.search(c)
	} else if v.accept(e.sact) {
		// No player has an action to remove.
		e.record()
	}

	glog.V(1).Infof("Enumerated %d %s (took %v)", len(e.results), v.name, time.Since(start))
	return e.results
}

func (e *enumerator) full() bool {
	return e.limit > 0 && len(e.results) >= e.limit
}

func (e *enumerator) record() {
	snapshot := e.sact.Snapshot()
	e.results = append(e.results, snapshot)
	supportsAccepted.Add(1)
	glog.V(3).Infof("Accepted %s support: %v", e.variant.name, snapshot)
}

// search is one frame of the recursion. On return the active support is
// exactly as it was on entry.
func (e *enumerator) search(c ActionCursor) {
	supportsVisited.Add(1)
	if e.full() {
		return
	}

	admissible := true
	if e.variant.scan != nil {
		r := e.variant.scan(e, c)
		if r.abort {
			return
		}

		if len(r.deletions) > 0 {
			e.deleteThenSearch(c, r.deletions)
			freeActionSlice(r.deletions)
			return
		}

		freeActionSlice(r.deletions)
		admissible = r.admissible
	}

	if admissible && e.variant.accept(e.sact) {
		e.record()
		if e.full() {
			return
		}
	}

	if e.workers > 1 && !e.forked {
		e.fork(c)
		return
	}

	for next := c; !e.full(); {
		if a := next.Action(); e.sact.ActionIsActive(a) {
			e.branch(next, a)
		}

		if !next.Advance() {
			return
		}
	}
}

// branch removes a, the action at c, and searches below it unless the
// removal breaks a commitment.
func (e *enumerator) branch(c ActionCursor, a *game.Action) {
	deactivated := e.sact.RemoveActionReturningDeletedInfosets(a, allocInfosetSlice())
	defer e.sact.AddAction(a)

	violated := e.variant.guarded && c.DeletionsViolateCommitments(e.sact, deactivated)
	freeInfosetSlice(deactivated)
	if violated {
		guardRejections.Add(1)
		return
	}

	e.search(c)
}

// deleteThenSearch removes every action in deletions and searches again
// from the same cursor. The whole frame is abandoned if any removal
// breaks a commitment.
func (e *enumerator) deleteThenSearch(c ActionCursor, deletions []*game.Action) {
	deactivated := allocInfosetSlice()
	defer func() { freeInfosetSlice(deactivated) }()

	for _, a := range deletions {
		deactivated = e.sact.RemoveActionReturningDeletedInfosets(a, deactivated[:0])
		defer e.sact.AddAction(a)

		if c.DeletionsViolateCommitments(e.sact, deactivated) {
			guardRejections.Add(1)
			return
		}
	}

	e.search(c)
}

// scanDeletions walks every action of the base support and collects the
// active ones for which mustDelete holds. It reports abort as soon as
// one of them is already behind c.
func (e *enumerator) scanDeletions(c ActionCursor, mustDelete func(a *game.Action) bool) ([]*game.Action, bool) {
	scanner, ok := NewActionCursor(e.base)
	if !ok {
		return nil, false
	}

	deletions := allocActionSlice()
	for {
		if a := scanner.Action(); e.sact.ActionIsActive(a) && mustDelete(a) {
			if c.IsSubsequentTo(a) {
				freeActionSlice(deletions)
				return nil, true
			}

			deletions = append(deletions, a)
		}

		if !scanner.Advance() {
			return deletions, false
		}
	}
}

// fork runs each branch of the candidate loop at c on its own copy of
// the active support, then concatenates the results in branch order.
func (e *enumerator) fork(c ActionCursor) {
	var candidates []ActionCursor
	for next := c; ; {
		if e.sact.ActionIsActive(next.Action()) {
			candidates = append(candidates, next)
		}

		if !next.Advance() {
			break
		}
	}

	remaining := 0
	if e.limit > 0 {
		remaining = e.limit - len(e.results)
	}

	glog.V(1).Infof("Searching %d branches in %d workers", len(candidates), e.workers)
	children := make([]*enumerator, len(candidates))
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)
	for i, pos := range candidates {
		child := &enumerator{
			variant: e.variant,
			base:    e.base,
			sact:    e.sact.Clone(),
			limit:   remaining,
			workers: e.workers,
			forked:  true,
		}
		children[i] = child

		sem <- struct{}{}
		wg.Add(1)
		go func(child *enumerator, pos ActionCursor) {
			defer func() { <-sem }()
			defer wg.Done()
			child.branch(pos, pos.Action())
		}(child, pos)
	}

	wg.Wait()

	for _, child := range children {
		e.results = append(e.results, child.results...)
	}

	if e.limit > 0 && len(e.results) > e.limit {
		e.results = e.results[:e.limit]
	}
}
