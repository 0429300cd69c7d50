package scene

import (
	"io"
	"os"
	"testing"

	"github.com/joeycumines/logiface"

	"github.com/grindlemire/go-scene/internal/debug"
)

// TestMain routes the package logger to a discarded writer at trace level so
// every log statement is built during tests.
func TestMain(m *testing.M) {
	debug.SetLogger(debug.New(io.Discard, logiface.LevelTrace))
	code := m.Run()
	debug.SetLogger(nil)
	os.Exit(code)
}

// newTestStage returns a stage on a manual clock. Tests drive it with Step.
func newTestStage(t *testing.T, opts ...StageOption) (*Stage, *ManualTime) {
	t.Helper()
	clock := &ManualTime{}
	opts = append([]StageOption{WithTimeSource(clock)}, opts...)
	s, err := NewStage(opts...)
	if err != nil {
		t.Fatalf("NewStage: %v", err)
	}
	return s, clock
}
