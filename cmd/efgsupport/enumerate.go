package main

import (
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/timpalpant/efgsupport"
	"github.com/timpalpant/efgsupport/dominance"
	"github.com/timpalpant/efgsupport/game"
	"github.com/timpalpant/efgsupport/support"
)

var variants = []string{"all", "inequivalent", "undominated", "nash"}

type enumerateOptions struct {
	variant     string
	strong      bool
	conditional bool
	workers     int
	limit       int
}

func newEnumerateCmd() *cobra.Command {
	opts := enumerateOptions{}
	cmd := &cobra.Command{
		Use:   "enumerate <game.toml>",
		Short: "Enumerate the subsupports of a game",
		Long: `Enumerate the subsupports of the full support of a game.

Variants:
  all           every subset of the actions
  inequivalent  one well-formed support per path-equivalence class
  undominated   well-formed supports without dominated actions
                (see --strong and --conditional)
  nash          supports that may carry a Nash equilibrium, sorted by
                degrees of freedom`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range variants {
				if opts.variant == v {
					return nil
				}
			}

			return errors.Errorf("unknown variant %q, expected one of %v", opts.variant, variants)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := game.Load(args[0])
			if err != nil {
				return err
			}

			return enumerate(cmd.OutOrStdout(), g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.variant, "variant", "nash", "Which supports to enumerate")
	cmd.Flags().BoolVar(&opts.strong, "strong", false, "Undominated: eliminate strictly dominated actions only")
	cmd.Flags().BoolVar(&opts.conditional, "conditional", false, "Undominated: compare payoffs conditional on reaching the infoset")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "Number of goroutines to search with")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Stop after this many supports (0 for no limit)")
	return cmd
}

func enumerate(w io.Writer, g *game.Game, opts enumerateOptions) error {
	full := support.Full(g)
	oracle := dominance.Payoff{}
	searchOpts := []efgsupport.Option{
		efgsupport.WithWorkers(opts.workers),
		efgsupport.WithLimit(opts.limit),
	}

	glog.Infof("Enumerating %s supports of %v", opts.variant, g)
	start := time.Now()
	var result []*support.Support
	switch opts.variant {
	case "all":
		result = efgsupport.AllSubsupports(full, searchOpts...)
	case "inequivalent":
		result = efgsupport.AllInequivalentSubsupports(full, searchOpts...)
	case "undominated":
		result = efgsupport.AllUndominatedSubsupports(full, oracle, opts.strong, opts.conditional, searchOpts...)
	case "nash":
		result = efgsupport.PossibleNashSubsupports(full, oracle, searchOpts...)
	default:
		return errors.Errorf("unknown variant %q", opts.variant)
	}

	glog.Infof("Found %d supports (took %v)", len(result), time.Since(start))
	for i, s := range result {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%v\n", i+1, s.NumDegreesOfFreedom(), s); err != nil {
			return errors.Wrap(err, "error writing supports")
		}
	}

	return nil
}
