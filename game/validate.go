package game

import (
	"math"

	"github.com/pkg/errors"
)

const probabilityTolerance = 1e-9

// Visit calls visitor on every node of the subtree rooted at n, in
// depth-first preorder.
func Visit(n *Node, visitor func(node *Node)) {
	visitor(n)
	for _, child := range n.children {
		Visit(child, visitor)
	}
}

// CountTerminalNodes returns the number of leaves in the game tree.
func CountTerminalNodes(g *Game) int {
	total := 0
	Visit(g.root, func(node *Node) {
		if node.IsTerminal() {
			total++
		}
	})

	return total
}

// Validate checks that the game is well formed: chance probabilities at
// each chance infoset are non-negative and sum to one, terminal payoff
// vectors do not name more players than the game has, and every player
// has a non-empty label.
func (g *Game) Validate() error {
	for _, p := range g.players {
		if p.label == "" {
			return errors.Errorf("player %d has no label", p.number+1)
		}
	}

	for _, is := range g.chance.infosets {
		total := 0.0
		for _, a := range is.actions {
			if a.probability < 0 {
				return errors.Errorf("chance action %v has negative probability %v",
					a, a.probability)
			}
			total += a.probability
		}

		if math.Abs(total-1.0) > probabilityTolerance {
			return errors.Errorf("chance probabilities at %v sum to %v", is, total)
		}
	}

	var err error
	Visit(g.root, func(node *Node) {
		if err == nil && len(node.payoffs) > len(g.players) {
			err = errors.Errorf("%v has %d payoffs for %d players",
				node, len(node.payoffs), len(g.players))
		}
	})

	return errors.Wrapf(err, "invalid game %q", g.title)
}
