package efgsupport

import (
	"sync"

	"github.com/timpalpant/efgsupport/game"
)

// Every search frame builds a list of forced deletions and every branch
// a list of deactivated infosets. Both are short-lived and returned to
// a pool once the frame is done with them.
var (
	actionSlices  slicePool[*game.Action]
	infosetSlices slicePool[*game.Infoset]
)

// slicePool recycles empty slices of T. The zero value is ready to use.
type slicePool[T any] struct {
	pool sync.Pool
}

func (p *slicePool[T]) get() []T {
	if s, ok := p.pool.Get().([]T); ok {
		return s
	}

	return nil
}

// put returns s to the pool. Slices that never grew are dropped.
func (p *slicePool[T]) put(s []T) {
	if cap(s) > 0 {
		p.pool.Put(s[:0])
	}
}

func allocActionSlice() []*game.Action   { return actionSlices.get() }
func freeActionSlice(s []*game.Action)   { actionSlices.put(s) }
func allocInfosetSlice() []*game.Infoset { return infosetSlices.get() }
func freeInfosetSlice(s []*game.Infoset) { infosetSlices.put(s) }
