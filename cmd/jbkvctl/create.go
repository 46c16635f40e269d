package main

import (
	"github.com/joshuapare/jbkv"
	"github.com/joshuapare/jbkv/codec"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCreateCmd())
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <file>",
		Short: "Create an empty volume file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := codec.SaveFile(args[0], jbkv.CreateVolume()); err != nil {
				return err
			}
			printInfo("created %s\n", args[0])
			return nil
		},
	}
}
