package main

import (
	"fmt"

	"github.com/joshuapare/jbkv"
	"github.com/joshuapare/jbkv/codec"
	"github.com/joshuapare/jbkv/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.AddCommand(newMountCmd())
}

func newMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount <file>...",
		Short: "Stack several volume files into one overlay and dump the merged tree",
		Long: `mount loads every file concurrently, then layers them into a single
storage overlay in the order given (the last file argument wins on
conflicting keys), and prints the merged tree.

Example:
  jbkvctl mount base.jbkv overrides.jbkv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMount(args)
		},
	}
}

// runMount loads each file into its own volume concurrently: the files are
// independent and I/O-bound, so there is no reason to serialize them.
func runMount(files []string) error {
	volumes := make([]jbkv.VolumeNode, len(files))

	var g errgroup.Group
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			v := jbkv.CreateVolume()
			if err := codec.LoadFile(file, v); err != nil {
				return fmt.Errorf("load %s: %w", file, err)
			}
			volumes[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	overlay := storage.MountStorageAll(volumes)
	defer overlay.Close()

	dumpStorageNode(overlay, "")
	return nil
}

func dumpStorageNode(node storage.StorageNode, indent string) {
	for _, kv := range node.Open().Enumerate() {
		printInfo("%s%s = %s (%s)\n", indent, kv.Key, kv.Value.String(), kv.Value.Kind())
	}
	for _, child := range node.Enumerate() {
		printInfo("%s%s/\n", indent, child.GetName())
		dumpStorageNode(child, indent+"  ")
	}
}
