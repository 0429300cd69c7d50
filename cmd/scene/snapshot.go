package main

import (
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-scene/internal/scenefile"
)

type snapshotOptions struct {
	*rootOptions
	Frames int
	All    bool
}

func newSnapshotCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &snapshotOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snapshot <file>",
		Short: "Play a scene offline and print the rendered frames as JSON",
		Long: `Play a scene file on a manual clock, one tick per frame, with no real-time
pacing. By default the scene runs until every scripted step has been applied
and only the last frame is printed.

Example:
  scene snapshot demo.yaml
  scene snapshot --frames 5 --all demo.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.Frames, "frames", "n", 0, "number of frames to play (0 plays until the last step)")
	cmd.Flags().BoolVar(&opts.All, "all", false, "print every frame instead of only the last")

	return cmd
}

func runSnapshot(cmd *cobra.Command, opts *snapshotOptions, path string) error {
	f, err := scenefile.Load(path)
	if err != nil {
		return err
	}
	p, err := scenefile.NewPlayer(f)
	if err != nil {
		return err
	}

	if opts.Frames <= 0 && !opts.All {
		out, err := p.Final()
		if err != nil {
			return err
		}
		return scenefile.WriteJSON(cmd.OutOrStdout(), out)
	}

	frames := opts.Frames
	if frames <= 0 {
		frames = max(1, int(f.LastFrame()))
	}
	out, err := p.Run(frames)
	if err != nil {
		return err
	}
	if opts.All {
		return scenefile.WriteJSON(cmd.OutOrStdout(), out)
	}
	return scenefile.WriteJSON(cmd.OutOrStdout(), out[len(out)-1])
}
