package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchedge/internal/engine"
	"github.com/yourusername/matchedge/internal/models"
	"github.com/yourusername/matchedge/internal/testutil"
)

func writeInput(t *testing.T, dir, name string, in *models.MatchInput) string {
	t.Helper()
	data, err := json.Marshal(in)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func batchDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeInput(t, dir, "b_second.json", testutil.Input())

	first := testutil.Input()
	first.Match.ID = "m-first"
	first.PriceA, first.PriceB = 2.40, 1.60
	writeInput(t, dir, "a_first.json", first)

	invalid := testutil.Input()
	invalid.PriceA = 0.9
	writeInput(t, dir, "c_invalid.json", invalid)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "d_broken.json"), []byte(`{"match":`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))
	return dir
}

func TestInputFiles(t *testing.T) {
	dir := batchDir(t)

	paths, err := InputFiles(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	assert.Equal(t, []string{"a_first.json", "b_second.json", "c_invalid.json", "d_broken.json"}, names)

	_, err = InputFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestBatchRun(t *testing.T) {
	svc, _ := newTestService(t, engine.New(2, nil), NewEvaluationMemo(time.Minute, 10))
	runner := NewBatchRunner(svc, 3, 1000, 10, nil)

	results, summary, err := runner.Run(context.Background(), batchDir(t))
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "m-first", results[0].Evaluation.MatchID)
	assert.Equal(t, "m-2024-0610-01", results[1].Evaluation.MatchID)
	assert.ErrorIs(t, results[2].Err, models.ErrInvalidInput)
	assert.Error(t, results[3].Err)
	assert.True(t, strings.HasSuffix(results[3].Path, "d_broken.json"))

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 2, summary.Staked+summary.Rejected)
	assert.Equal(t, DocumentFailed, results[2].Status())
}

func TestBatchRunCancelled(t *testing.T) {
	svc, _ := newTestService(t, engine.New(1, nil), nil)
	runner := NewBatchRunner(svc, 1, 0.001, 1, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := runner.Run(ctx, batchDir(t))
	assert.Error(t, err)
}
