package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-scene/internal/scenefile"
)

func newValidateCommand(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a scene file without playing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := scenefile.Load(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d steps, last frame %d)\n",
				f.Name, len(f.Steps), f.LastFrame())
			return err
		},
	}
}
