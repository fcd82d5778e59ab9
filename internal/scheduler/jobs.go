package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/logger"
	"github.com/yourusername/matchedge/internal/metrics"
	"github.com/yourusername/matchedge/internal/service"
)

// Profile reload results used as metric labels
const (
	ReloadSwapped   = "swapped"
	ReloadUnchanged = "unchanged"
	ReloadRejected  = "rejected"
)

// ProfileReloader re-reads the profile file and swaps it in when its
// name or version changed. An invalid file leaves the current profile active.
type ProfileReloader struct {
	path    string
	service *service.EvaluationService
	audit   *logger.AuditLogger
}

// NewProfileReloader creates a new profile reloader
func NewProfileReloader(path string, svc *service.EvaluationService, log *logrus.Logger) *ProfileReloader {
	return &ProfileReloader{
		path:    path,
		service: svc,
		audit:   logger.NewAuditLogger(log),
	}
}

// Reload loads the profile file and returns the reload result
func (r *ProfileReloader) Reload() (string, error) {
	next, err := config.LoadAndValidateProfile(r.path)
	if err != nil {
		r.audit.LogProfileRejected(r.path, err)
		metrics.RecordProfileReload(ReloadRejected)
		return ReloadRejected, err
	}

	current := r.service.Profile()
	if current.Name == next.Name && current.Version == next.Version {
		metrics.RecordProfileReload(ReloadUnchanged)
		return ReloadUnchanged, nil
	}

	if err := r.service.SwapProfile(next, r.path); err != nil {
		metrics.RecordProfileReload(ReloadRejected)
		return ReloadRejected, err
	}
	metrics.RecordProfileReload(ReloadSwapped)
	return ReloadSwapped, nil
}

// Sweeper evaluates input documents that are new or modified since the
// previous sweep and writes one evaluation file per document
type Sweeper struct {
	runner    *service.BatchRunner
	inputDir  string
	outputDir string
	logger    *logrus.Entry
	mu        sync.Mutex
	seen      map[string]time.Time
}

// NewSweeper creates a new sweeper
func NewSweeper(runner *service.BatchRunner, inputDir, outputDir string, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		runner:    runner,
		inputDir:  inputDir,
		outputDir: outputDir,
		logger:    log.WithField("component", "sweeper"),
		seen:      make(map[string]time.Time),
	}
}

// OutputPath returns where the evaluation of an input document is written
func (s *Sweeper) OutputPath(inputPath string) string {
	name := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	return filepath.Join(s.outputDir, name+".evaluation.json")
}

// Sweep runs one pass and returns the number of documents evaluated.
// Documents that fail are logged and not retried until they change.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths, err := service.InputFiles(s.inputDir)
	if err != nil {
		return 0, err
	}

	pending := make([]string, 0, len(paths))
	modTimes := make(map[string]time.Time, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if last, ok := s.seen[path]; ok && !info.ModTime().After(last) {
			continue
		}
		pending = append(pending, path)
		modTimes[path] = info.ModTime()
	}
	if len(pending) == 0 {
		return 0, nil
	}

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	results, _, err := s.runner.RunFiles(ctx, pending)
	if err != nil {
		return 0, err
	}

	for _, result := range results {
		s.seen[result.Path] = modTimes[result.Path]
		if result.Err != nil {
			continue
		}
		if err := s.write(result); err != nil {
			s.logger.WithField("path", result.Path).WithError(err).Error("Failed to write evaluation")
		}
	}
	return len(results), nil
}

// write stores the evaluation through a temporary file so readers never see
// a partial document
func (s *Sweeper) write(result service.BatchResult) error {
	target := s.OutputPath(result.Path)
	tmp, err := os.CreateTemp(s.outputDir, ".evaluation-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := service.WriteEvaluation(tmp, result.Evaluation); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}
