package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timpalpant/efgsupport/game"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <game.toml>",
		Short: "Describe the players, infosets and actions of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := game.Load(args[0])
			if err != nil {
				return err
			}

			printInfo(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

func printInfo(w io.Writer, g *game.Game) {
	fmt.Fprintf(w, "%v\n", g)
	fmt.Fprintf(w, "%d terminal nodes\n", game.CountTerminalNodes(g))
	for pl := 0; pl < g.NumPlayers(); pl++ {
		player := g.Player(pl)
		fmt.Fprintf(w, "Player %d (%v): %d infosets\n", pl+1, player, player.NumInfosets())
		for iset := 0; iset < player.NumInfosets(); iset++ {
			is := player.Infoset(iset)
			labels := make([]string, is.NumActions())
			for i := range labels {
				labels[i] = is.Action(i).Label()
			}

			fmt.Fprintf(w, "  %v: %d members, actions [%s]\n",
				is, is.NumMembers(), strings.Join(labels, ", "))
		}
	}
}
