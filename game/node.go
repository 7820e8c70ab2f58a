package game

import (
	"fmt"
)

// Node is a position in the game tree. Decision and chance nodes belong
// to an infoset and have one child per action; terminal nodes carry
// a payoff for each player.
type Node struct {
	game        *Game
	id          int
	label       string
	parent      *Node
	priorAction *Action
	infoset     *Infoset
	children    []*Node
	payoffs     []float64
}

func (n *Node) Game() *Game { return n.game }

// ID is the game-wide index of the node.
func (n *Node) ID() int { return n.id }

func (n *Node) Label() string { return n.label }

func (n *Node) SetLabel(label string) *Node {
	n.label = label
	return n
}

func (n *Node) IsRoot() bool { return n.parent == nil }

func (n *Node) IsTerminal() bool { return len(n.children) == 0 }

// Parent returns the node's parent, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// PriorAction returns the action taken at the parent to reach this node,
// or nil for the root.
func (n *Node) PriorAction() *Action { return n.priorAction }

// Infoset returns the infoset the node belongs to, or nil if it is terminal.
func (n *Node) Infoset() *Infoset { return n.infoset }

// Player returns the player to move at the node, or nil if it is terminal.
func (n *Node) Player() *Player {
	if n.infoset == nil {
		return nil
	}

	return n.infoset.player
}

func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the node reached by taking the i'th action.
func (n *Node) Child(i int) *Node { return n.children[i] }

// ChildFor returns the node reached by taking the given action.
func (n *Node) ChildFor(a *Action) *Node {
	if a.infoset != n.infoset {
		panic(fmt.Errorf("action %v is not available at node %d", a, n.id))
	}

	return n.children[a.number]
}

// Payoff returns the payoff to the given player at a terminal node.
// Nodes with no payoffs set are worth zero to everyone.
func (n *Node) Payoff(player int) float64 {
	if player >= len(n.payoffs) {
		return 0
	}

	return n.payoffs[player]
}

// SetPayoffs sets the payoff vector of a terminal node, indexed by player.
func (n *Node) SetPayoffs(payoffs ...float64) *Node {
	if !n.IsTerminal() {
		panic(fmt.Errorf("cannot set payoffs on nonterminal node %d", n.id))
	}

	n.payoffs = append(n.payoffs[:0], payoffs...)
	return n
}

// AppendMove turns a terminal node into a decision (or chance) node for
// the given player, in a new infoset with nActions actions.
// It returns the new infoset.
func (n *Node) AppendMove(p *Player, nActions int) *Infoset {
	if p.game != n.game {
		panic(fmt.Errorf("player %v belongs to a different game", p))
	}
	if nActions <= 0 {
		panic(fmt.Errorf("a move must have at least one action, got %d", nActions))
	}
	if n.infoset != nil {
		panic(fmt.Errorf("node %d already has a move", n.id))
	}

	is := n.game.newInfoset(p, nActions)
	n.AppendToInfoset(is)
	return is
}

// AppendToInfoset turns a terminal node into a member of an existing infoset.
func (n *Node) AppendToInfoset(is *Infoset) {
	if !n.IsTerminal() || n.infoset != nil {
		panic(fmt.Errorf("node %d already has a move", n.id))
	}
	if is.Game() != n.game {
		panic(fmt.Errorf("infoset %v belongs to a different game", is))
	}

	n.infoset = is
	n.payoffs = nil
	is.members = append(is.members, n)
	for _, a := range is.actions {
		n.children = append(n.children, n.game.newNode(n, a))
	}
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	if n.label != "" {
		return n.label
	}

	return fmt.Sprintf("node %d", n.id)
}
