package main

import (
	"fmt"

	"github.com/joshuapare/jbkv"
	"github.com/joshuapare/jbkv/codec"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newGetCmd())
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <path> <key>",
		Short: "Print one key's value from a volume file",
		Long: `get loads a volume file, walks path (a "/"-separated list of child
names), and prints the value stored for key at that node.

Example:
  jbkvctl get vol.jbkv a/b hello`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args[0], args[1], args[2])
		},
	}
}

func runGet(file, path, key string) error {
	root := jbkv.CreateVolume()
	printVerbose("loading %s\n", file)
	if err := codec.LoadFile(file, root); err != nil {
		return fmt.Errorf("load %s: %w", file, err)
	}

	node, err := findPath(root, splitPath(path))
	if err != nil {
		return err
	}

	value, ok := node.Open().Read(key)
	if !ok {
		return fmt.Errorf("no such key %q at %q", key, path)
	}
	printInfo("%s (%s)\n", value.String(), value.Kind())
	return nil
}
