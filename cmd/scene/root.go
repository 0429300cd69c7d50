package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-scene/internal/debug"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	LogFile  string
	LogLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Play scene files through a double-buffered scene graph",
		Long: `scene builds actor trees from YAML scene files and plays them through a
stage: an event goroutine that applies scripted changes, an update goroutine
that evaluates the scene graph once per frame, and a frame clock that paces it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setupLogging()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return debug.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", "", "write JSON logs to this file instead of stderr")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "off", "log level (off|error|warning|info|debug|trace)")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newSnapshotCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func (o *rootOptions) setupLogging() error {
	level, err := debug.ParseLevel(o.LogLevel)
	if err != nil {
		return err
	}
	if o.LogFile != "" {
		return debug.Init(o.LogFile, level)
	}
	debug.SetLogger(debug.New(os.Stderr, level))
	return nil
}
