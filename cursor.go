package efgsupport

import (
	"fmt"

	"github.com/timpalpant/efgsupport/game"
	"github.com/timpalpant/efgsupport/support"
)

// ActionCursor is a position in the canonical order over the actions of
// a support: players ascending, then infosets ascending, then actions
// ascending. Infosets without any action in the support are skipped.
//
// ActionCursor is a value: copies advance independently.
type ActionCursor struct {
	support *support.Support
	pl      int
	iset    int
	pos     int
	// actions are the support's actions at the current infoset.
	actions []*game.Action
}

// NewActionCursor returns a cursor at the first action of s, and false
// if no player infoset has any action in s. Players without infosets
// are skipped.
func NewActionCursor(s *support.Support) (ActionCursor, bool) {
	g := s.Game()
	for pl := 0; pl < g.NumPlayers(); pl++ {
		player := g.Player(pl)
		for iset := 0; iset < player.NumInfosets(); iset++ {
			if is := player.Infoset(iset); s.NumActions(is) > 0 {
				return ActionCursor{
					support: s,
					pl:      pl,
					iset:    iset,
					actions: s.Actions(is),
				}, true
			}
		}
	}

	return ActionCursor{}, false
}

// Advance moves to the next action in canonical order. It returns false,
// leaving the cursor in place, if the cursor is already at the last action.
func (c *ActionCursor) Advance() bool {
	if c.pos+1 < len(c.actions) {
		c.pos++
		return true
	}

	g := c.support.Game()
	iset := c.iset + 1
	for pl := c.pl; pl < g.NumPlayers(); pl++ {
		player := g.Player(pl)
		for ; iset < player.NumInfosets(); iset++ {
			if is := player.Infoset(iset); c.support.NumActions(is) > 0 {
				c.pl, c.iset, c.pos = pl, iset, 0
				c.actions = c.support.Actions(is)
				return true
			}
		}

		iset = 0
	}

	return false
}

// IsLast returns whether Advance would fail.
func (c ActionCursor) IsLast() bool {
	return !c.Advance()
}

func (c ActionCursor) Action() *game.Action { return c.actions[c.pos] }

func (c ActionCursor) Infoset() *game.Infoset { return c.Action().Infoset() }

func (c ActionCursor) Player() *game.Player { return c.Infoset().Player() }

func (c ActionCursor) PlayerIndex() int { return c.pl }

func (c ActionCursor) InfosetIndex() int { return c.iset }

// ActionIndex is the number of the current action within its infoset.
func (c ActionCursor) ActionIndex() int { return c.Action().Number() }

// IsSubsequentTo returns whether the cursor is strictly past a in
// canonical order. Chance actions precede every cursor position.
func (c ActionCursor) IsSubsequentTo(a *game.Action) bool {
	is := a.Infoset()
	if is.IsChance() {
		return true
	}

	if pl := is.Player().Number(); c.pl != pl {
		return c.pl > pl
	}
	if c.iset != is.Number() {
		return c.iset > is.Number()
	}

	return c.ActionIndex() > a.Number()
}

// Equal returns whether both cursors walk the same support and are at
// the same position.
func (c ActionCursor) Equal(other ActionCursor) bool {
	return c.support == other.support &&
		c.pl == other.pl &&
		c.iset == other.iset &&
		c.pos == other.pos
}

// String implements fmt.Stringer.
func (c ActionCursor) String() string {
	if len(c.actions) == 0 {
		return "cursor(none)"
	}

	return fmt.Sprintf("cursor(%d,%d,%d)", c.pl, c.iset, c.ActionIndex())
}
