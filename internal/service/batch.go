package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/yourusername/matchedge/internal/metrics"
	"github.com/yourusername/matchedge/internal/models"
)

// Batch document results used as metric labels
const (
	DocumentStaked   = "staked"
	DocumentRejected = "rejected"
	DocumentFailed   = "failed"
)

// BatchResult is the outcome of one document
type BatchResult struct {
	Path       string
	Evaluation *models.Evaluation
	Err        error
}

// Status returns the document result label
func (r BatchResult) Status() string {
	switch {
	case r.Err != nil:
		return DocumentFailed
	case r.Evaluation.Stake.IsStaked():
		return DocumentStaked
	default:
		return DocumentRejected
	}
}

// BatchSummary aggregates a batch run
type BatchSummary struct {
	Total    int
	Staked   int
	Rejected int
	Failed   int
	Duration time.Duration
}

// BatchRunner evaluates many input documents concurrently under a rate limit
type BatchRunner struct {
	service *EvaluationService
	workers int
	limiter *rate.Limiter
	logger  *logrus.Entry
}

// NewBatchRunner creates a new batch runner
func NewBatchRunner(service *EvaluationService, workers int, ratePerSecond float64, burst int, log *logrus.Logger) *BatchRunner {
	if workers <= 0 {
		workers = 1
	}
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BatchRunner{
		service: service,
		workers: workers,
		limiter: rate.NewLimiter(limit, burst),
		logger:  log.WithField("component", "batch"),
	}
}

// InputFiles lists the *.json documents directly under dir in name order
func InputFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Run evaluates every document in dir
func (b *BatchRunner) Run(ctx context.Context, dir string) ([]BatchResult, BatchSummary, error) {
	paths, err := InputFiles(dir)
	if err != nil {
		return nil, BatchSummary{}, err
	}
	return b.RunFiles(ctx, paths)
}

// RunFiles evaluates the given documents. A document that fails to decode or
// evaluate is reported in its result and does not stop the batch; only
// context cancellation does. Results keep the order of paths.
func (b *BatchRunner) RunFiles(ctx context.Context, paths []string) ([]BatchResult, BatchSummary, error) {
	start := time.Now()
	results := make([]BatchResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := b.limiter.Wait(gctx); err != nil {
				return err
			}
			results[i] = b.runOne(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, BatchSummary{}, fmt.Errorf("batch cancelled: %w", err)
	}

	summary := BatchSummary{Total: len(results), Duration: time.Since(start)}
	for _, r := range results {
		switch r.Status() {
		case DocumentStaked:
			summary.Staked++
		case DocumentRejected:
			summary.Rejected++
		case DocumentFailed:
			summary.Failed++
		}
	}
	metrics.RecordBatchDuration(summary.Duration.Seconds())

	b.logger.WithFields(logrus.Fields{
		"documents":   summary.Total,
		"staked":      summary.Staked,
		"rejected":    summary.Rejected,
		"failed":      summary.Failed,
		"duration_ms": summary.Duration.Milliseconds(),
	}).Info("Batch completed")

	return results, summary, nil
}

func (b *BatchRunner) runOne(ctx context.Context, path string) BatchResult {
	result := BatchResult{Path: path}

	in, err := ReadInputFile(path)
	if err == nil {
		result.Evaluation, err = b.service.Evaluate(ctx, in)
	}
	if err != nil {
		result.Err = err
		b.logger.WithField("path", path).WithError(err).Warn("Batch document failed")
	}

	metrics.RecordBatchDocument(result.Status())
	return result
}
