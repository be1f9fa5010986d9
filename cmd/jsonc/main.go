// Package main provides the jsonc command-line tool: one-shot compression of
// JSON payloads and the chunked ingest, act, extract cycle over files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build metadata, set with -ldflags "-X main.version=...".
var (
	version = "dev"     //nolint:gochecknoglobals // set by the linker
	commit  = "unknown" //nolint:gochecknoglobals // set by the linker
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "jsonc",
		Short: "Compress JSON arrays and run sort/filter actions over them",
		Long: `jsonc compresses JSON array payloads and runs declarative actions over them.

Commands:
  compress    Compress a payload with the configured codec
  decompress  Decompress a payload to JSON text
  run         Ingest compressed chunks, apply an action and stream the result`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.jsonc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress status output")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(compressCmd(a))
	rootCmd.AddCommand(decompressCmd(a))
	rootCmd.AddCommand(runCmd(a))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jsonc %s (commit: %s)\n", version, commit)
		},
	}
}
