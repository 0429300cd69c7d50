package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	scene "github.com/grindlemire/go-scene"
	"github.com/grindlemire/go-scene/internal/debug"
	"github.com/grindlemire/go-scene/internal/scenefile"
)

// runOptions holds flags for the run command.
type runOptions struct {
	*rootOptions
	Frames      int
	FPS         int
	Final       bool
	MetricsAddr string
}

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Play a scene in real time",
		Long: `Play a scene file on a running stage. A ticker VSync source paces the
update goroutine and scripted steps are applied on the event goroutine as
wall-clock frames elapse. Every rendered frame is printed as JSON unless
--final is given.

Example:
  scene run demo.yaml
  scene run --fps 30 --frames 120 --metrics-addr :9090 demo.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.Frames, "frames", "n", 0, "frames to play before stopping (0 plays one past the last step)")
	cmd.Flags().IntVar(&opts.FPS, "fps", 0, "display refresh rate (defaults to the scene's fps, then 60)")
	cmd.Flags().BoolVar(&opts.Final, "final", false, "print only the last rendered frame")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running")

	return cmd
}

// frameWriter prints rendered frames. The renderer calls it from the update
// goroutine while the command reads it after Run returns.
type frameWriter struct {
	mu    sync.Mutex
	w     io.Writer
	final bool
	last  *scenefile.FrameOutput
	err   error
}

func (fw *frameWriter) RenderFrame(info scene.FrameInfo, nodes []scene.NodeSnapshot) {
	out := scenefile.NewFrameOutput(info, nodes)

	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.last = &out
	if !fw.final && fw.err == nil {
		fw.err = scenefile.WriteJSON(fw.w, out)
	}
}

func (fw *frameWriter) flush() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.err != nil || !fw.final || fw.last == nil {
		return fw.err
	}
	return scenefile.WriteJSON(fw.w, *fw.last)
}

func runLive(cmd *cobra.Command, opts *runOptions, path string) error {
	f, err := scenefile.Load(path)
	if err != nil {
		return err
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = f.Stage.FPS
	}
	if fps <= 0 {
		fps = 60
	}
	frames := opts.Frames
	if frames <= 0 {
		frames = int(f.LastFrame()) + 1
	}

	fw := &frameWriter{w: cmd.OutOrStdout(), final: opts.Final}
	vsync := scene.NewTickerVSync(fps)
	stageOpts := append(f.StageOptions(),
		scene.WithFrameRate(fps),
		scene.WithVSyncSource(vsync),
		scene.WithRenderer(fw),
	)

	var reg *prometheus.Registry
	if opts.MetricsAddr != "" {
		reg = prometheus.NewRegistry()
		stageOpts = append(stageOpts, scene.WithMetrics(reg))
	}

	s, err := scene.NewStage(stageOpts...)
	if err != nil {
		return fmt.Errorf("failed to create stage: %w", err)
	}
	sc, err := f.Build(s)
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	debug.Logger().Info().
		Str("scene", f.Name).
		Str("session", s.Session()).
		Int("fps", fps).
		Int("frames", frames).
		Log("playing scene")

	g, gctx := errgroup.WithContext(ctx)
	var applyErr error
	g.Go(func() error {
		scheduleSteps(gctx, s, sc, vsync.Interval(), frames, &applyErr)
		return nil
	})
	if reg != nil {
		g.Go(func() error {
			return serveMetrics(gctx, opts.MetricsAddr, reg)
		})
	}

	runErr := s.Run(ctx)
	cancel()
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return runErr
	}
	if applyErr != nil {
		return applyErr
	}
	return fw.flush()
}

// scheduleSteps counts wall-clock frames and applies the scripted steps for
// each on the event goroutine. The stage is stopped one frame after frames.
// applyErr is written on the event goroutine only.
func scheduleSteps(ctx context.Context, s *scene.Stage, sc *scenefile.Scene, interval time.Duration, frames int, applyErr *error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var n uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		n++
		frame := n
		ok := s.QueueEvent(func() {
			if err := sc.ApplyThrough(frame); err != nil {
				*applyErr = err
				s.Stop()
				return
			}
			if frame > uint64(frames) {
				s.Stop()
			}
		})
		if !ok {
			debug.Logger().Debug().Uint64("frame", frame).Log("step scheduling event dropped")
		}
	}
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	debug.Logger().Info().Str("addr", addr).Log("serving metrics")

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
