// Command efgsupport enumerates supports of extensive-form games
// described in TOML game files.
package main

import (
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var debugAddr string
	rootCmd := &cobra.Command{
		Use:   "efgsupport",
		Short: "Enumerate supports of extensive-form games",
		Long: `Enumerate the subsupports of an extensive-form game that are consistent
and free of dominated actions, as candidates for equilibrium computation.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// glog reads its settings from the Go flag set, which cobra
			// has already populated.
			flag.CommandLine.Parse(nil)
			if debugAddr != "" {
				go func() {
					glog.Infof("Serving debug endpoints on %s", debugAddr)
					if err := http.ListenAndServe(debugAddr, nil); err != nil {
						glog.Errorf("Debug server exited: %v", err)
					}
				}()
			}
		},
	}

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	rootCmd.PersistentFlags().StringVar(&debugAddr, "debug_addr", "",
		"Address to serve pprof and expvar endpoints on, e.g. localhost:4123")

	rootCmd.AddCommand(newEnumerateCmd())
	rootCmd.AddCommand(newInfoCmd())
	return rootCmd
}

func main() {
	defer glog.Flush()
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}
