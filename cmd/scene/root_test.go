package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testdata = filepath.Join("..", "..", "internal", "scenefile", "testdata")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"run", "snapshot", "validate", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestRootCommand_Flags(t *testing.T) {
	type tc struct {
		command []string
		flag    string
		def     string
	}

	tests := map[string]tc{
		"log level":    {command: nil, flag: "log-level", def: "off"},
		"log file":     {command: nil, flag: "log-file", def: ""},
		"run frames":   {command: []string{"run"}, flag: "frames", def: "0"},
		"run fps":      {command: []string{"run"}, flag: "fps", def: "0"},
		"run final":    {command: []string{"run"}, flag: "final", def: "false"},
		"run metrics":  {command: []string{"run"}, flag: "metrics-addr", def: ""},
		"snapshot all": {command: []string{"snapshot"}, flag: "all", def: "false"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := newRootCommand()
			if tt.command != nil {
				sub, _, err := cmd.Find(tt.command)
				require.NoError(t, err)
				cmd = sub
			}
			f := cmd.Flags().Lookup(tt.flag)
			if f == nil {
				f = cmd.PersistentFlags().Lookup(tt.flag)
			}
			require.NotNil(t, f)
			assert.Equal(t, tt.def, f.DefValue)
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scene version "+version)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", filepath.Join(testdata, "panel.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "panel: ok (3 steps, last frame 3)\n", out)

	_, err = execute(t, "validate", filepath.Join(testdata, "missing.yaml"))
	require.Error(t, err)
}

func TestSnapshotCommand_MatchesGolden(t *testing.T) {
	want, err := os.ReadFile(filepath.Join(testdata, "golden", "panel.golden"))
	require.NoError(t, err)

	out, err := execute(t, "snapshot", filepath.Join(testdata, "panel.yaml"))
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestSnapshotCommand_All(t *testing.T) {
	want, err := os.ReadFile(filepath.Join(testdata, "golden", "reparent.golden"))
	require.NoError(t, err)

	out, err := execute(t, "snapshot", "--all", filepath.Join(testdata, "reparent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, string(want), out)
}

func TestRootCommand_BadLogLevel(t *testing.T) {
	_, err := execute(t, "--log-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "loud"`)
}

func TestRunCommand_Final(t *testing.T) {
	out, err := execute(t, "run", "--fps", "120", "--frames", "8", "--final", filepath.Join(testdata, "panel.yaml"))
	require.NoError(t, err)

	assert.Contains(t, out, `"name": "label"`)
	assert.Contains(t, out, `"visible": false`)
	assert.Contains(t, out, `"drawMode": "OVERLAY"`)
}
