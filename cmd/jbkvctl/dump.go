package main

import (
	"fmt"

	"github.com/joshuapare/jbkv"
	"github.com/joshuapare/jbkv/codec"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a volume file's full tree, depth first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := jbkv.CreateVolume()
			if err := codec.LoadFile(args[0], root); err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			dumpNode(root, "")
			return nil
		},
	}
}

func dumpNode(node jbkv.VolumeNode, indent string) {
	for _, kv := range node.Open().Enumerate() {
		printInfo("%s%s = %s (%s)\n", indent, kv.Key, kv.Value.String(), kv.Value.Kind())
	}
	for _, child := range node.Enumerate() {
		printInfo("%s%s/\n", indent, child.GetName())
		dumpNode(child, indent+"  ")
	}
}
