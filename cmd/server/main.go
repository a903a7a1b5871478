// @title        Function-o-Meter API
// @version      1.0
// @description  Cognitive-function assessment: deterministic scenario sampling, scoring and type derivation.
// @license.name MIT
// @BasePath     /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "fometer",
		Short:         "Cognitive-function assessment server and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, cfgPath)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "Config file (yaml, json or toml)")
	pf.String("data-dir", "./data", "Directory holding the SQLite run store")
	pf.String("corpus-path", "", "Seed table replacing the embedded corpus")
	pf.String("log-level", "info", "debug, info, warn or error")
	addServeFlags(root)

	root.AddCommand(newServeCommand(&cfgPath))
	root.AddCommand(newSampleCommand(&cfgPath))
	root.AddCommand(newSimulateCommand(&cfgPath))
	root.AddCommand(newScenariosCommand(&cfgPath))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\n", version)
		},
	})

	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
