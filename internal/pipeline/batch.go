package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nao1215/lyricscan/internal/model"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency is used when no WithConcurrency option is given.
const defaultConcurrency = 4

// BatchProcessor analyses several lyric documents concurrently.
// It uses errgroup to bound the number of documents in flight.
//
// Design decision: batching lives outside Pipeline so a Pipeline stays a
// plain single-document sequence of steps.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each document.
	pipelineFactory func() *Pipeline

	concurrency int

	logger *slog.Logger

	// results stores completed reports in input order.
	results []*model.SongReport
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of documents analysed at once.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
// pipelineFactory is called once per document so no step state leaks between documents.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		concurrency:     defaultConcurrency,
		results:         make([]*model.SongReport, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch runs the pipeline over every input concurrently.
//
// The returned slice has one report per input in input order, including
// reports whose pipeline failed; failures are recorded on the report.
// Inputs not started before cancellation have no report (nil entry).
// The error is non-nil only when the batch was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, inputs []string) ([]*model.SongReport, error) {
	bp.logger.Debug("starting batch processing",
		"total_inputs", len(inputs),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	bp.results = make([]*model.SongReport, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report := bp.run(ctx, input)

			bp.mu.Lock()
			bp.results[i] = report
			bp.mu.Unlock()

			return nil
		})
	}

	err := g.Wait()

	bp.logger.Debug("batch processing complete",
		"total_inputs", len(inputs),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// ProcessBatchWithCallback runs the pipeline over every input and calls
// callback with each finished report and its input index, in completion order.
// The callback runs on the worker goroutine and must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	inputs []string,
	callback func(report *model.SongReport, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			callback(bp.run(ctx, input), i)
			return nil
		})
	}

	return g.Wait()
}

// run executes a fresh pipeline for one input. Errors stay on the report.
func (bp *BatchProcessor) run(ctx context.Context, input string) *model.SongReport {
	report := model.NewSongReport("", input, "")
	if err := bp.pipelineFactory().Execute(ctx, report); err != nil {
		bp.logger.Warn("analysis failed",
			"source", input,
			"error", err,
		)
		return report
	}

	bp.logger.Debug("analysis completed",
		"source", input,
		"song", report.Song,
	)
	return report
}
