package game

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// ChanceLabel is the player name used in game files for chance moves.
const ChanceLabel = "chance"

// file is the on-disk TOML representation of a game.
//
//	title = "Matching pennies"
//	players = ["Alice", "Bob"]
//
//	[root]
//	player = "Alice"
//	infoset = "a"
//	actions = ["H", "T"]
//
//	[[root.children]]
//	player = "Bob"
//	...
//
// Nodes that name the same player and infoset key are members of the
// same infoset and must list the same actions. Nodes without a player
// are terminal and may carry payoffs.
type file struct {
	Title   string    `toml:"title"`
	Players []string  `toml:"players"`
	Root    nodeEntry `toml:"root"`
}

type nodeEntry struct {
	Label         string      `toml:"label"`
	Player        string      `toml:"player"`
	Infoset       string      `toml:"infoset"`
	Actions       []string    `toml:"actions"`
	Probabilities []float64   `toml:"probabilities"`
	Payoffs       []float64   `toml:"payoffs"`
	Children      []nodeEntry `toml:"children"`
}

// Load reads and validates a game from the TOML file at path.
func Load(path string) (*Game, error) {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, errors.Wrapf(err, "error decoding game file %s", path)
	}

	g, err := build(f, md)
	if err != nil {
		return nil, errors.Wrapf(err, "error building game from %s", path)
	}

	glog.V(1).Infof("Loaded %v from %s", g, path)
	return g, nil
}

// Decode reads and validates a game in TOML format from r.
func Decode(r io.Reader) (*Game, error) {
	var f file
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding game")
	}

	return build(f, md)
}

func build(f file, md toml.MetaData) (*Game, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}

		return nil, errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	g := New(f.Title, f.Players...)
	b := &fileBuilder{
		game:     g,
		players:  make(map[string]*Player, len(f.Players)+1),
		infosets: make(map[*Player]map[string]*Infoset),
	}

	b.players[ChanceLabel] = g.Chance()
	for i, label := range f.Players {
		if _, ok := b.players[label]; ok {
			return nil, errors.Errorf("duplicate player %q", label)
		}
		b.players[label] = g.Player(i)
	}

	if err := b.buildNode(g.Root(), f.Root); err != nil {
		return nil, err
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

type fileBuilder struct {
	game     *Game
	players  map[string]*Player
	infosets map[*Player]map[string]*Infoset
}

func (b *fileBuilder) buildNode(n *Node, entry nodeEntry) error {
	n.SetLabel(entry.Label)
	if entry.Player == "" {
		if len(entry.Children) > 0 || len(entry.Actions) > 0 {
			return errors.Errorf("node %q has children but no player", entry.Label)
		}

		n.SetPayoffs(entry.Payoffs...)
		return nil
	}

	p, ok := b.players[entry.Player]
	if !ok {
		return errors.Errorf("node %q: unknown player %q", entry.Label, entry.Player)
	}
	if len(entry.Payoffs) > 0 {
		return errors.Errorf("node %q: only terminal nodes may have payoffs", entry.Label)
	}
	if len(entry.Actions) == 0 {
		return errors.Errorf("node %q: no actions", entry.Label)
	}
	if len(entry.Children) != len(entry.Actions) {
		return errors.Errorf("node %q: %d actions but %d children",
			entry.Label, len(entry.Actions), len(entry.Children))
	}

	is, err := b.infoset(p, entry)
	if err != nil {
		return errors.Wrapf(err, "node %q", entry.Label)
	}

	n.AppendToInfoset(is)
	for i, child := range entry.Children {
		if err := b.buildNode(n.Child(i), child); err != nil {
			return err
		}
	}

	return nil
}

// infoset returns the infoset a node entry belongs to, creating it the
// first time its key is seen. Chance nodes always get a fresh infoset.
func (b *fileBuilder) infoset(p *Player, entry nodeEntry) (*Infoset, error) {
	if p.IsChance() {
		if len(entry.Probabilities) != len(entry.Actions) {
			return nil, errors.Errorf("%d probabilities for %d chance actions",
				len(entry.Probabilities), len(entry.Actions))
		}

		is := b.game.newInfoset(p, len(entry.Actions)).SetLabel(entry.Infoset)
		for i, a := range is.actions {
			a.SetLabel(entry.Actions[i]).SetProbability(entry.Probabilities[i])
		}

		return is, nil
	}

	if len(entry.Probabilities) > 0 {
		return nil, errors.Errorf("player %v cannot have action probabilities", p)
	}

	byKey, ok := b.infosets[p]
	if !ok {
		byKey = make(map[string]*Infoset)
		b.infosets[p] = byKey
	}

	key := entry.Infoset
	if key == "" {
		// Unnamed infosets are singletons.
		is := b.game.newInfoset(p, len(entry.Actions))
		setActionLabels(is, entry.Actions)
		return is, nil
	}

	if is, ok := byKey[key]; ok {
		if is.NumActions() != len(entry.Actions) {
			return nil, errors.Errorf("infoset %q has %d actions, node lists %d",
				key, is.NumActions(), len(entry.Actions))
		}
		for i, label := range entry.Actions {
			if is.Action(i).Label() != label {
				return nil, errors.Errorf("infoset %q action %d is %q, node lists %q",
					key, i+1, is.Action(i).Label(), label)
			}
		}

		return is, nil
	}

	is := b.game.newInfoset(p, len(entry.Actions)).SetLabel(key)
	setActionLabels(is, entry.Actions)
	byKey[key] = is
	return is, nil
}

func setActionLabels(is *Infoset, labels []string) {
	for i, label := range labels {
		is.Action(i).SetLabel(label)
	}
}
