package scheduler

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/engine"
	"github.com/yourusername/matchedge/internal/logger"
	"github.com/yourusername/matchedge/internal/models"
	"github.com/yourusername/matchedge/internal/service"
	"github.com/yourusername/matchedge/internal/testutil"
)

func newService(t *testing.T) *service.EvaluationService {
	t.Helper()
	store, err := engine.NewProfileStore(config.DefaultProfile())
	require.NoError(t, err)
	return service.NewEvaluationService(engine.New(2, nil), store, service.NewEvaluationMemo(time.Minute, 10), nil)
}

func copyFile(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}

func TestSchedulerLifecycle(t *testing.T) {
	s := NewScheduler(logger.Discard())

	assert.Error(t, s.Start(), "no jobs scheduled")
	assert.Error(t, s.ScheduleSweep("not a schedule", nil))

	svc := newService(t)
	reloader := NewProfileReloader(filepath.Join(t.TempDir(), "profile.yaml"), svc, logger.Discard())
	require.NoError(t, s.ScheduleProfileReload("@every 1h", reloader))
	require.Len(t, s.Entries(), 1)
	assert.True(t, s.GetNextRun().IsZero())

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleProfileReload("@every 1h", reloader))
	assert.False(t, s.GetNextRun().IsZero())

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	require.NoError(t, s.Stop())
}

func TestProfileReloader(t *testing.T) {
	svc := newService(t)
	path := filepath.Join(t.TempDir(), "profile.yaml")
	reloader := NewProfileReloader(path, svc, logger.Discard())

	result, err := reloader.Reload()
	assert.Error(t, err, "missing file")
	assert.Equal(t, ReloadRejected, result)
	assert.Equal(t, "default", svc.Profile().Name)

	copyFile(t, "../config/testdata/override_profile.yaml", path)
	result, err = reloader.Reload()
	require.NoError(t, err)
	assert.Equal(t, ReloadSwapped, result)
	assert.Equal(t, "aggressive", svc.Profile().Name)
	assert.Equal(t, "2.1.0", svc.Profile().Version)

	result, err = reloader.Reload()
	require.NoError(t, err)
	assert.Equal(t, ReloadUnchanged, result)

	copyFile(t, "../config/testdata/invalid_weights_profile.yaml", path)
	result, err = reloader.Reload()
	assert.Error(t, err)
	assert.Equal(t, ReloadRejected, result)
	assert.Equal(t, "aggressive", svc.Profile().Name)
}

func TestSweeper(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "out")

	data, err := json.Marshal(testutil.Input())
	require.NoError(t, err)
	input := filepath.Join(inputDir, "match.json")
	require.NoError(t, os.WriteFile(input, data, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "broken.json"), []byte("{"), 0o644))

	runner := service.NewBatchRunner(newService(t), 2, 100, 10, logger.Discard())
	sweeper := NewSweeper(runner, inputDir, outputDir, logger.Discard())

	processed, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, processed)

	out, err := os.ReadFile(sweeper.OutputPath(input))
	require.NoError(t, err)
	var eval models.Evaluation
	require.NoError(t, json.Unmarshal(out, &eval))
	assert.Equal(t, "m-2024-0610-01", eval.MatchID)
	assert.NotEmpty(t, eval.ID)

	_, err = os.Stat(filepath.Join(outputDir, "broken.evaluation.json"))
	assert.True(t, os.IsNotExist(err))

	// nothing changed since the last pass
	processed, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)

	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(input, later, later))
	processed, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestSweeperMissingInputDirectory(t *testing.T) {
	runner := service.NewBatchRunner(newService(t), 1, 100, 1, logger.Discard())
	sweeper := NewSweeper(runner, filepath.Join(t.TempDir(), "missing"), t.TempDir(), logger.Discard())

	_, err := sweeper.Sweep(context.Background())
	assert.Error(t, err)
}
