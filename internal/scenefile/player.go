package scenefile

import (
	"fmt"
	"time"

	scene "github.com/grindlemire/go-scene"
)

// Player plays a File offline: the caller's goroutine acts as both the
// event and the update goroutine and every Step is one tick on a manual
// clock.
type Player struct {
	Stage *scene.Stage
	Scene *Scene

	clock    *scene.ManualTime
	interval time.Duration
	last     FrameOutput
}

// NewPlayer builds f on a new stage. opts are applied after the file's own
// stage options.
func NewPlayer(f *File, opts ...scene.StageOption) (*Player, error) {
	p := &Player{clock: &scene.ManualTime{}}

	all := append(f.StageOptions(), opts...)
	all = append(all,
		scene.WithTimeSource(p.clock),
		scene.WithRenderer(scene.RendererFunc(func(info scene.FrameInfo, nodes []scene.NodeSnapshot) {
			p.last = NewFrameOutput(info, nodes)
		})),
	)
	s, err := scene.NewStage(all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage: %w", err)
	}

	sc, err := f.Build(s)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	p.Stage = s
	p.Scene = sc
	p.interval = s.MinimumFrameInterval()
	return p, nil
}

// Step applies the steps scripted for the next frame, runs one tick and
// returns the rendered frame.
func (p *Player) Step() (FrameOutput, error) {
	next := p.Stage.CommittedFrame() + 1
	if err := p.Scene.ApplyThrough(next); err != nil {
		return FrameOutput{}, err
	}
	p.clock.Advance(p.interval)
	p.Stage.Step()
	return p.last, nil
}

// Run steps frames times and returns every rendered frame.
func (p *Player) Run(frames int) ([]FrameOutput, error) {
	out := make([]FrameOutput, 0, frames)
	for i := 0; i < frames; i++ {
		f, err := p.Step()
		if err != nil {
			return out, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Final steps until every scripted step has been applied and returns the
// last frame. At least one frame is always rendered.
func (p *Player) Final() (FrameOutput, error) {
	f, err := p.Step()
	for err == nil && !p.Scene.Done() {
		f, err = p.Step()
	}
	return f, err
}
