package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "jbkvctl",
	Short: "Inspect and manipulate jbkv volume files",
	Long: `jbkvctl creates, inspects, and edits jbkv volume files: the
hierarchical key-value trees jbkv's codec package saves to disk.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
