package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leekokhow/azureml/pkg/structure/model"
)

const votingModel = `steps:
  - name: scaler
    estimator:
      type: MaxAbsScaler
      params: {copy: true}
  - name: ensemble
    estimator:
      weights: [0.3, 0.7]
      estimators:
        - name: a
          steps:
            - name: lgbm
              estimator: {type: LightGBMClassifier, params: {n_estimators: 100}}
        - name: b
          steps:
            - name: inner
              estimator:
                weights: [1]
                estimators:
                  - name: c
                    steps:
                      - name: sgd
                        estimator: {type: SGDClassifier}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func execute(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)

	return out.String(), err
}

func TestPrintCmd(t *testing.T) {
	path := writeFile(t, "model.yaml", votingModel)

	got, err := execute(t, context.Background(), "print", path)
	require.NoError(t, err)
	assert.Equal(t, "scaler\n{copy: true}\n\n"+
		"ensemble\n{estimators: [a, b], weights: [0.3, 0.7]}\n\n"+
		"a - lgbm\n{n_estimators: 100}\n\n"+
		"b - inner\n{estimators: [c], weights: [1]}\n\n"+
		"c - sgd\n{}\n\n", got)
}

func TestPrintCmdLineage(t *testing.T) {
	path := writeFile(t, "model.yaml", votingModel)

	got, err := execute(t, context.Background(), "print", "--lineage", "--prefix", "best - ", path)
	require.NoError(t, err)
	assert.Contains(t, got, "best - scaler\n")
	assert.Contains(t, got, "best - b - c - sgd\n")
}

func TestPrintCmdMaxDepth(t *testing.T) {
	path := writeFile(t, "model.yaml", votingModel)

	_, err := execute(t, context.Background(), "print", "--max-depth", "1", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum nesting depth exceeded")
}

func TestPrintCmdMultipleFiles(t *testing.T) {
	first := writeFile(t, "first.yaml", "steps:\n  - {name: scaler, estimator: {type: MaxAbsScaler}}\n")
	second := writeFile(t, "second.json", `{"steps": [{"name": "sgd", "estimator": {"params": {"alpha": 0.5}}}]}`)

	got, err := execute(t, context.Background(), "print", first, second)
	require.NoError(t, err)
	assert.Equal(t, "==> "+first+" <==\nscaler\n{}\n\n\n==> "+second+" <==\nsgd\n{alpha: 0.5}\n\n", got)
}

func TestPrintCmdErrors(t *testing.T) {
	malformed := writeFile(t, "model.yaml", "steps:\n  - name: odd\n    estimator: {}\n")

	_, err := execute(t, context.Background(), "print", malformed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `step "odd"`)

	_, err = execute(t, context.Background(), "print", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = execute(t, context.Background(), "print")
	require.Error(t, err)
}

func TestDrawCmd(t *testing.T) {
	path := writeFile(t, "model.yaml", votingModel)
	output := filepath.Join(t.TempDir(), "model.dot")

	got, err := execute(t, context.Background(), "draw", path, "-o", output, "--rankdir", "TB")
	require.NoError(t, err)
	assert.Empty(t, got)

	dot, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "strict digraph {")
	assert.Contains(t, string(dot), `rankdir="TB";`)
	assert.Contains(t, string(dot), `"model/ensemble/b/inner" -> "model/ensemble/b/inner/c"`)
}

func TestDrawCmdStdout(t *testing.T) {
	path := writeFile(t, "model.yaml", votingModel)

	got, err := execute(t, context.Background(), "draw", path)
	require.NoError(t, err)
	assert.Contains(t, got, `rankdir="LR";`)
}

func TestSummaryCmd(t *testing.T) {
	path := writeFile(t, "model.yaml", votingModel)

	got, err := execute(t, context.Background(), "summary", path)
	require.NoError(t, err)
	assert.Equal(t, "steps: 5 (plain 3, voting 2, stacking 0)\n"+
		"members: 3\n"+
		"max depth: 2\n"+
		"ensemble model/ensemble: voting, 2 members, total weight 1\n"+
		"ensemble model/ensemble/b/inner: voting, 1 members, total weight 1\n", got)

	got, err = execute(t, context.Background(), "summary", "--format", "yaml", path)
	require.NoError(t, err)
	assert.Contains(t, got, "steps: 5\n")

	_, err = execute(t, context.Background(), "summary", "--format", "xml", path)
	require.Error(t, err)
}

func TestWatchCmd(t *testing.T) {
	path := writeFile(t, "model.yaml", "steps:\n  - {name: scaler, estimator: {type: MaxAbsScaler}}\n")

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	got, err := execute(t, ctx, "watch", path)
	require.NoError(t, err)
	assert.Equal(t, "scaler\n{}\n\n", got)
}

func TestDrawCmdKeepsOutputOnError(t *testing.T) {
	path := writeFile(t, "model.yaml", votingModel)
	output := writeFile(t, "model.dot", "digraph previous {}\n")

	_, err := execute(t, context.Background(), "draw", path, "-o", output, "--max-depth", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum nesting depth exceeded")

	dot, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "digraph previous {}\n", string(dot))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestForEachHeaderError(t *testing.T) {
	pipes := []*model.Pipeline{model.MustPipeline(), model.MustPipeline()}

	err := forEach(failingWriter{}, []string{"a.yaml", "b.yaml"}, pipes, func(*model.Pipeline) error {
		return nil
	})
	require.ErrorIs(t, err, assert.AnError)
}
