package game

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/timpalpant/go-cfr"
)

// FromGameTree builds a Game by walking every node of a go-cfr game tree.
// Player nodes of the same player whose InfoSet keys are equal become
// members of one infoset; each chance node gets its own chance infoset
// with the tree's child probabilities; terminal nodes take their payoffs
// from Utility. Children are built on entry to each node and freed once
// its subtree has been imported.
//
// The whole tree is materialized, so this is only suitable for games
// small enough to enumerate supports over anyway.
func FromGameTree(root cfr.GameTreeNode, title string, playerLabels ...string) (*Game, error) {
	g := New(title, playerLabels...)
	if err := importTree(g, cfrNode{root}); err != nil {
		return nil, errors.Wrapf(err, "error importing game tree %q", title)
	}

	glog.V(1).Infof("Imported %v", g)
	return g, nil
}

type nodeKind uint8

const (
	terminalKind nodeKind = iota
	chanceKind
	playerKind
)

// treeNode is the view of an external game tree needed to import it.
type treeNode interface {
	kind() nodeKind
	player() int
	infosetKey() string
	// open must be called before numChildren, child or childProbability.
	open()
	numChildren() int
	child(i int) treeNode
	childProbability(i int) float64
	utility(player int) float64
	close()
}

// cfrNode adapts cfr.GameTreeNode to treeNode.
type cfrNode struct {
	cfr.GameTreeNode
}

func (n cfrNode) kind() nodeKind {
	switch n.Type() {
	case cfr.TerminalNode:
		return terminalKind
	case cfr.ChanceNode:
		return chanceKind
	default:
		return playerKind
	}
}

func (n cfrNode) player() int { return n.Player() }

func (n cfrNode) infosetKey() string {
	return n.InfoSet(n.Player())
}

func (n cfrNode) open()                          { n.BuildChildren() }
func (n cfrNode) numChildren() int               { return n.NumChildren() }
func (n cfrNode) child(i int) treeNode           { return cfrNode{n.GetChild(i)} }
func (n cfrNode) childProbability(i int) float64 { return n.GetChildProbability(i) }
func (n cfrNode) utility(player int) float64     { return n.Utility(player) }
func (n cfrNode) close()                         { n.FreeChildren() }

func importTree(g *Game, root treeNode) error {
	imp := &treeImporter{
		game:     g,
		infosets: make([]map[string]*Infoset, g.NumPlayers()),
	}

	for i := range imp.infosets {
		imp.infosets[i] = make(map[string]*Infoset)
	}

	return imp.importNode(g.Root(), root)
}

type treeImporter struct {
	game *Game
	// For each player, infoset key => infoset.
	infosets []map[string]*Infoset
}

func (imp *treeImporter) importNode(n *Node, tn treeNode) error {
	kind := tn.kind()
	if kind != terminalKind {
		tn.open()
	}
	defer tn.close()

	switch kind {
	case terminalKind:
		payoffs := make([]float64, imp.game.NumPlayers())
		for p := range payoffs {
			payoffs[p] = tn.utility(p)
		}

		n.SetPayoffs(payoffs...)
		return nil
	case chanceKind:
		nChildren := tn.numChildren()
		if nChildren == 0 {
			return errors.Errorf("chance node %d has no children", n.ID())
		}

		is := imp.game.newInfoset(imp.game.Chance(), nChildren)
		for i, a := range is.actions {
			a.SetProbability(tn.childProbability(i))
		}

		n.AppendToInfoset(is)
	case playerKind:
		is, err := imp.playerInfoset(n, tn)
		if err != nil {
			return err
		}

		n.AppendToInfoset(is)
	}

	for i := 0; i < n.NumChildren(); i++ {
		if err := imp.importNode(n.Child(i), tn.child(i)); err != nil {
			return err
		}
	}

	return nil
}

func (imp *treeImporter) playerInfoset(n *Node, tn treeNode) (*Infoset, error) {
	player := tn.player()
	if player < 0 || player >= imp.game.NumPlayers() {
		return nil, errors.Errorf("node %d: player %d out of range for %d players",
			n.ID(), player, imp.game.NumPlayers())
	}

	nChildren := tn.numChildren()
	if nChildren == 0 {
		return nil, errors.Errorf("player node %d has no children", n.ID())
	}

	key := tn.infosetKey()
	if is, ok := imp.infosets[player][key]; ok {
		if is.NumActions() != nChildren {
			return nil, errors.Errorf("node %d has %d children but its infoset %v has %d actions",
				n.ID(), nChildren, is, is.NumActions())
		}

		return is, nil
	}

	is := imp.game.newInfoset(imp.game.Player(player), nChildren)
	imp.infosets[player][key] = is
	return is, nil
}
