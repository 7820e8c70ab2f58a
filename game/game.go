// Package game implements a read-only extensive-form game tree: players,
// information sets, actions and nodes, along with a small builder API used
// to construct games in code, from TOML files, or from go-cfr game trees.
package game

import (
	"fmt"
)

// Game is an extensive-form game. Once built, a Game is never mutated by
// the support enumeration code, which only reads it.
type Game struct {
	title   string
	players []*Player
	chance  *Player
	root    *Node

	// Dense game-wide registries. Ids are indices into these slices.
	infosets []*Infoset
	actions  []*Action
	nodes    []*Node
}

// New creates a game with a single (terminal) root node and the given
// named players. Players are numbered in the order given, starting at 0.
func New(title string, playerLabels ...string) *Game {
	g := &Game{title: title}
	g.chance = &Player{game: g, number: ChancePlayer, label: "Chance"}
	for i, label := range playerLabels {
		g.players = append(g.players, &Player{game: g, number: i, label: label})
	}

	g.root = g.newNode(nil, nil)
	return g
}

func (g *Game) Title() string { return g.title }

// NumPlayers returns the number of (non-chance) players.
func (g *Game) NumPlayers() int { return len(g.players) }

// Player returns the i'th (0-based) player.
func (g *Game) Player(i int) *Player { return g.players[i] }

// Chance returns the chance player, which owns all chance infosets.
func (g *Game) Chance() *Player { return g.chance }

func (g *Game) Root() *Node { return g.root }

// NumInfosets returns the total number of infosets, chance included.
// Infoset ids range over [0, NumInfosets).
func (g *Game) NumInfosets() int { return len(g.infosets) }

// NumActions returns the total number of actions, chance included.
// Action ids range over [0, NumActions).
func (g *Game) NumActions() int { return len(g.actions) }

// NumNodes returns the total number of nodes in the tree.
// Node ids range over [0, NumNodes).
func (g *Game) NumNodes() int { return len(g.nodes) }

func (g *Game) Infoset(id int) *Infoset { return g.infosets[id] }
func (g *Game) Action(id int) *Action   { return g.actions[id] }
func (g *Game) Node(id int) *Node       { return g.nodes[id] }

// String implements fmt.Stringer.
func (g *Game) String() string {
	return fmt.Sprintf("%q: %d players, %d infosets, %d actions, %d nodes",
		g.title, len(g.players), len(g.infosets), len(g.actions), len(g.nodes))
}

func (g *Game) newNode(parent *Node, prior *Action) *Node {
	n := &Node{
		game:        g,
		id:          len(g.nodes),
		parent:      parent,
		priorAction: prior,
	}

	g.nodes = append(g.nodes, n)
	return n
}

func (g *Game) newInfoset(p *Player, nActions int) *Infoset {
	is := &Infoset{
		player: p,
		id:     len(g.infosets),
		number: len(p.infosets),
	}

	for i := 0; i < nActions; i++ {
		a := &Action{
			infoset: is,
			id:      len(g.actions),
			number:  i,
			label:   fmt.Sprintf("%d", i+1),
		}
		if p.IsChance() {
			a.probability = 1.0 / float64(nActions)
		}

		g.actions = append(g.actions, a)
		is.actions = append(is.actions, a)
	}

	p.infosets = append(p.infosets, is)
	g.infosets = append(g.infosets, is)
	return is
}

// ChancePlayer is the Number of the chance player.
const ChancePlayer = -1

// Player is a participant in the game, or the chance player.
type Player struct {
	game     *Game
	number   int
	label    string
	infosets []*Infoset
}

func (p *Player) Game() *Game { return p.game }

// Number returns the 0-based position of the player in the game,
// or ChancePlayer.
func (p *Player) Number() int { return p.number }

func (p *Player) IsChance() bool { return p.number == ChancePlayer }

func (p *Player) Label() string { return p.label }

func (p *Player) NumInfosets() int { return len(p.infosets) }

// Infoset returns the i'th (0-based) infoset belonging to the player.
func (p *Player) Infoset(i int) *Infoset { return p.infosets[i] }

// String implements fmt.Stringer.
func (p *Player) String() string {
	return p.label
}
