package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joshuapare/jbkv"
	"github.com/joshuapare/jbkv/codec"
	"github.com/spf13/cobra"
)

var setType string

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setType, "type", "string",
		"value type: string, bool, int32, int64, uint32, uint64, float32, float64, blob (hex)")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <path> <key> <value>",
		Short: "Write one key's value into a volume file, creating path if needed",
		Long: `set loads a volume file (creating an empty one if it doesn't exist
yet), creates path if missing, writes value under key at that node, and
saves the file back.

Example:
  jbkvctl set vol.jbkv a/b hello world
  jbkvctl set vol.jbkv a/b count 42 --type int32`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args[0], args[1], args[2], args[3])
		},
	}
}

func runSet(file, path, key, raw string) error {
	root := jbkv.CreateVolume()
	if err := codec.LoadFile(file, root); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", file, err)
		}
		printVerbose("no existing volume at %s, starting fresh\n", file)
	}

	value, err := parseValue(setType, raw)
	if err != nil {
		return fmt.Errorf("parse value: %w", err)
	}

	node := createPath(root, splitPath(path))
	node.Open().Write(key, value)

	if err := codec.SaveFile(file, root); err != nil {
		return fmt.Errorf("save %s: %w", file, err)
	}
	printInfo("wrote %s:%s/%s\n", file, path, key)
	return nil
}
