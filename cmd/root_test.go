package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/siteforge/siteforge/internal/pipeline"
)

// execute runs the CLI with args against a temp output directory and
// returns stdout. The cmd package keeps flag state in package variables,
// so these tests run sequentially.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SITEFORGE_PIPELINE_OUTPUT_DIR", filepath.Join(t.TempDir(), "output"))
	t.Setenv("SITEFORGE_LOGGING_DEVELOPMENT", "false")
	cfgFile, project = "", ""

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStatusCommand(t *testing.T) {
	out, err := execute(t, "status", "--project", "acme")
	require.NoError(t, err)

	var status pipeline.Status
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	require.Equal(t, "acme", status.ProjectName)
	require.Equal(t, "discovery", status.CurrentStage)
	require.Len(t, status.Stages, 5)
}

func TestRunRequiresURLForDiscovery(t *testing.T) {
	_, err := execute(t, "run", "--project", "acme")
	require.ErrorContains(t, err, "--url")
}

func TestAdvanceWithoutCheckpoint(t *testing.T) {
	_, err := execute(t, "advance", "--project", "acme")
	require.ErrorContains(t, err, "no checkpoint")
}

func TestModifyRejectsBadPair(t *testing.T) {
	_, err := execute(t, "modify", "discovery", "not-a-pair")
	require.ErrorContains(t, err, "path=value")
}

func TestRestartUnknownStage(t *testing.T) {
	_, err := execute(t, "restart", "deployment")
	require.ErrorIs(t, err, pipeline.ErrUnknownStage)
}

func TestParseValue(t *testing.T) {
	require.Equal(t, "plain text", parseValue("plain text"))
	require.Equal(t, 3.0, parseValue("3"))
	require.Equal(t, true, parseValue("true"))
	require.Equal(t, map[string]any{"a": 1.0}, parseValue(`{"a":1}`))
}
