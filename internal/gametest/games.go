// Package gametest builds small games shared by tests.
package gametest

import (
	"fmt"

	"github.com/timpalpant/efgsupport/game"
)

// SingleInfoset returns a one-player game with a single infoset of n
// actions, each leading to a terminal node worth its index.
func SingleInfoset(n int) *game.Game {
	g := game.New("single infoset", "Solo")
	is := g.Root().AppendMove(g.Player(0), n)
	for i := 0; i < n; i++ {
		g.Root().Child(i).SetPayoffs(float64(i))
		is.Action(i).SetLabel(fmt.Sprintf("a%d", i+1))
	}

	return g
}

// Simultaneous returns a 2x2 game in which Row moves first and Col
// moves without observing Row's choice. u1[i][j] and u2[i][j] are the
// payoffs when Row plays action i and Col plays action j.
func Simultaneous(u1, u2 [2][2]float64) *game.Game {
	g := game.New("2x2", "Row", "Col")
	row := g.Root().AppendMove(g.Player(0), 2).SetLabel("R")
	row.Action(0).SetLabel("U")
	row.Action(1).SetLabel("D")

	var col *game.Infoset
	for i := 0; i < 2; i++ {
		n := g.Root().Child(i)
		if col == nil {
			col = n.AppendMove(g.Player(1), 2).SetLabel("C")
			col.Action(0).SetLabel("L")
			col.Action(1).SetLabel("R")
		} else {
			n.AppendToInfoset(col)
		}

		for j := 0; j < 2; j++ {
			n.Child(j).SetPayoffs(u1[i][j], u2[i][j])
		}
	}

	return g
}

// Entry returns an entry-deterrence game: the Entrant stays Out or
// goes In, after which the Incumbent chooses to Fight or Accommodate.
func Entry() *game.Game {
	g := game.New("entry", "Entrant", "Incumbent")
	entrant := g.Root().AppendMove(g.Player(0), 2).SetLabel("E")
	entrant.Action(0).SetLabel("Out")
	entrant.Action(1).SetLabel("In")
	g.Root().Child(0).SetPayoffs(0, 2)

	in := g.Root().Child(1)
	incumbent := in.AppendMove(g.Player(1), 2).SetLabel("I")
	incumbent.Action(0).SetLabel("Fight")
	incumbent.Action(1).SetLabel("Accommodate")
	in.Child(0).SetPayoffs(-1, -1)
	in.Child(1).SetPayoffs(1, 1)
	return g
}

// TwoSubgames returns a game where the second player moves first,
// choosing x or y, and the first player then moves in one of two
// separate infosets, so the first player's infosets precede the move
// that decides which of them is reached.
func TwoSubgames() *game.Game {
	g := game.New("two subgames", "Follower", "Leader")
	leader := g.Root().AppendMove(g.Player(1), 2).SetLabel("J")
	leader.Action(0).SetLabel("x")
	leader.Action(1).SetLabel("y")

	for i, label := range []string{"I1", "I2"} {
		n := g.Root().Child(i)
		follower := n.AppendMove(g.Player(0), 2).SetLabel(label)
		follower.Action(0).SetLabel("l")
		follower.Action(1).SetLabel("r")
		n.Child(0).SetPayoffs(float64(i), 0)
		n.Child(1).SetPayoffs(0, float64(i))
	}

	return g
}

// ChanceFirst returns a game where chance picks Left or Right with
// probability 1/4 and 3/4, Row then moves knowing the outcome, and Col
// moves knowing neither. Up weakly dominates Down for Row: they tie
// against Left and Up is better against Right. Left strictly dominates
// Right for Col.
func ChanceFirst() *game.Game {
	g := game.New("chance first", "Row", "Col")
	deal := g.Root().AppendMove(g.Chance(), 2)
	deal.Action(0).SetLabel("Left").SetProbability(0.25)
	deal.Action(1).SetLabel("Right").SetProbability(0.75)

	var col *game.Infoset
	for i := 0; i < 2; i++ {
		n := g.Root().Child(i)
		row := n.AppendMove(g.Player(0), 2)
		row.Action(0).SetLabel("U")
		row.Action(1).SetLabel("D")
		for j := 0; j < 2; j++ {
			m := n.Child(j)
			if col == nil {
				col = m.AppendMove(g.Player(1), 2)
				col.Action(0).SetLabel("L")
				col.Action(1).SetLabel("R")
			} else {
				m.AppendToInfoset(col)
			}

			m.Child(0).SetPayoffs(float64(i), 1)
			m.Child(1).SetPayoffs(float64(i+1-j), -1)
		}
	}

	return g
}

// AbsentMinded returns a one-player game in which the Driver cannot tell
// the first exit from the second: both decision nodes of infoset X are
// on one path. Exiting first pays 0, exiting second pays 4, and
// continuing past both reaches a final choice Y paying 1 or 2.
func AbsentMinded() *game.Game {
	g := game.New("absent-minded driver", "Driver")
	x := g.Root().AppendMove(g.Player(0), 2).SetLabel("X")
	x.Action(0).SetLabel("exit")
	x.Action(1).SetLabel("continue")
	g.Root().Child(0).SetPayoffs(0)

	second := g.Root().Child(1)
	second.AppendToInfoset(x)
	second.Child(0).SetPayoffs(4)

	last := second.Child(1)
	y := last.AppendMove(g.Player(0), 2).SetLabel("Y")
	y.Action(0).SetLabel("a")
	y.Action(1).SetLabel("b")
	last.Child(0).SetPayoffs(1)
	last.Child(1).SetPayoffs(2)
	return g
}
