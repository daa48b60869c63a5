// Package compare runs every similarity method over every unordered pair of a corpus.
package compare

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/essaysim/internal/domain"
	"github.com/kailas-cloud/essaysim/internal/domain/essay"
	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/domain/pair"
	"github.com/kailas-cloud/essaysim/internal/domain/result"
	"github.com/kailas-cloud/essaysim/internal/metrics"
	"github.com/kailas-cloud/essaysim/internal/scoring"
	"github.com/kailas-cloud/essaysim/internal/scoring/normalize"
)

const (
	// DefaultChunkSize is the number of tasks handed to a worker at once.
	DefaultChunkSize = 100
	// DefaultQueueMultiplier sizes the chunk queue relative to the worker count.
	DefaultQueueMultiplier = 2
)

// Service orchestrates pairwise comparisons over a bounded worker pool.
type Service struct {
	scorers         scoring.Registry
	logger          *zap.Logger
	workers         int
	chunkSize       int
	queueMultiplier int
	normalize       []method.Method
}

// New creates a compare service. Workers default to the number of CPUs;
// SMPC scores are min-max normalized.
func New(scorers scoring.Registry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		scorers:         scorers,
		logger:          logger,
		workers:         runtime.NumCPU(),
		chunkSize:       DefaultChunkSize,
		queueMultiplier: DefaultQueueMultiplier,
		normalize:       []method.Method{method.SMPC},
	}
}

// WithWorkers configures the number of workers.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

// WithChunkSize configures how many tasks a worker takes at once.
func (s *Service) WithChunkSize(n int) *Service {
	if n > 0 {
		s.chunkSize = n
	}
	return s
}

// WithQueueMultiplier configures the chunk queue capacity as a multiple of workers.
func (s *Service) WithQueueMultiplier(n int) *Service {
	if n > 0 {
		s.queueMultiplier = n
	}
	return s
}

// WithNormalize sets the methods whose corpus scores are min-max normalized.
// SMPC is always normalized.
func (s *Service) WithNormalize(methods ...method.Method) *Service {
	s.normalize = []method.Method{method.SMPC}
	for _, m := range methods {
		if !slices.Contains(s.normalize, m) {
			s.normalize = append(s.normalize, m)
		}
	}
	return s
}

// task is one (method, pair) comparison. a.ID() < b.ID().
type task struct {
	method method.Method
	a, b   essay.Essay
}

// Run compares every unordered pair of essays with every method and returns the
// normalized table. Individual comparison failures are recorded in the table;
// Run itself only fails on invalid input or cancellation.
func (s *Service) Run(ctx context.Context, essays []essay.Essay, methods []method.Method) (*result.Table, error) {
	if len(methods) == 0 {
		methods = method.All
	}
	if err := s.scorers.Require(methods); err != nil {
		return nil, fmt.Errorf("resolve scorers: %w", err)
	}
	corpus, err := sortCorpus(essays)
	if err != nil {
		return nil, err
	}

	total := pair.Count(len(corpus)) * len(methods)
	s.logger.Info("Comparing corpus",
		zap.Int("essays", len(corpus)),
		zap.Int("pairs", pair.Count(len(corpus))),
		zap.Int("tasks", total),
		zap.Int("workers", s.workers),
	)

	start := time.Now()
	table := result.NewTable(methods...)

	chunks := make(chan []task, s.workers*s.queueMultiplier)
	results := make(chan result.Result, s.workers*s.chunkSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(chunks)
		return s.produce(gctx, corpus, methods, chunks)
	})

	var pool sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		pool.Add(1)
		g.Go(func() error {
			defer pool.Done()
			return s.work(gctx, chunks, results)
		})
	}
	go func() {
		pool.Wait()
		close(results)
	}()

	for r := range results {
		if !table.Add(r) {
			s.logger.Warn("Duplicate comparison result dropped",
				zap.String("method", string(r.Method())),
				zap.String("pair", r.Key().String()),
			)
		}
	}

	err = g.Wait()
	for abandoned := range chunks {
		metrics.TasksInflight.Sub(float64(len(abandoned)))
	}
	if err != nil {
		return nil, fmt.Errorf("compare corpus: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compare corpus: %w", err)
	}

	for _, m := range methods {
		if slices.Contains(s.normalize, m) {
			normalize.Table(table, m)
		}
	}
	s.report(table, time.Since(start))
	return table, nil
}

// ComparePair scores a single pair with each method. Scores are raw, not normalized.
func (s *Service) ComparePair(ctx context.Context, a, b essay.Essay, methods []method.Method) ([]result.Result, error) {
	if len(methods) == 0 {
		methods = method.All
	}
	if err := s.scorers.Require(methods); err != nil {
		return nil, fmt.Errorf("resolve scorers: %w", err)
	}
	if a.ID() == b.ID() {
		return nil, fmt.Errorf("pair %q compared with itself: %w", a.ID(), domain.ErrInvalidCorpus)
	}
	if b.ID() < a.ID() {
		a, b = b, a
	}

	out := make([]result.Result, 0, len(methods))
	for _, m := range methods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, s.runTask(ctx, task{method: m, a: a, b: b}))
	}
	return out, nil
}

// sortCorpus returns the essays ordered by id, rejecting duplicates.
func sortCorpus(essays []essay.Essay) ([]essay.Essay, error) {
	corpus := slices.Clone(essays)
	slices.SortFunc(corpus, func(x, y essay.Essay) int { return strings.Compare(x.ID(), y.ID()) })
	for i := 1; i < len(corpus); i++ {
		if corpus[i].ID() == corpus[i-1].ID() {
			return nil, fmt.Errorf("duplicate essay id %q: %w", corpus[i].ID(), domain.ErrInvalidCorpus)
		}
	}
	return corpus, nil
}

// produce enumerates i<j pairs lazily and sends them in chunks.
func (s *Service) produce(ctx context.Context, corpus []essay.Essay, methods []method.Method, out chan<- []task) error {
	chunk := make([]task, 0, s.chunkSize)
	send := func() error {
		select {
		case out <- chunk:
			metrics.TasksInflight.Add(float64(len(chunk)))
			chunk = make([]task, 0, s.chunkSize)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for i := 0; i < len(corpus); i++ {
		for j := i + 1; j < len(corpus); j++ {
			for _, m := range methods {
				chunk = append(chunk, task{method: m, a: corpus[i], b: corpus[j]})
				if len(chunk) < s.chunkSize {
					continue
				}
				if err := send(); err != nil {
					return err
				}
			}
		}
	}
	if len(chunk) > 0 {
		return send()
	}
	return nil
}

// work scores chunks until the queue is drained or ctx is canceled.
func (s *Service) work(ctx context.Context, chunks <-chan []task, out chan<- result.Result) error {
	for {
		var chunk []task
		var ok bool
		select {
		case chunk, ok = <-chunks:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}

		for i, t := range chunk {
			if ctx.Err() != nil {
				metrics.TasksInflight.Sub(float64(len(chunk) - i))
				return ctx.Err()
			}
			r := s.runTask(ctx, t)
			metrics.TasksInflight.Dec()
			select {
			case out <- r:
			case <-ctx.Done():
				metrics.TasksInflight.Sub(float64(len(chunk) - i - 1))
				return ctx.Err()
			}
		}
	}
}

// runTask scores one pair. Malformed text, scorer errors and panics become a failed result.
func (s *Service) runTask(ctx context.Context, t task) (r result.Result) {
	key := pair.NewKey(t.a.ID(), t.b.ID())
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			r = result.NewError(t.method, key, time.Since(start),
				domain.NewTaskError(string(t.method), key.A(), key.B(), fmt.Errorf("%w: %v", domain.ErrTaskPanicked, p)))
		}
		observe(r)
	}()

	if !utf8.ValidString(t.a.Text()) || !utf8.ValidString(t.b.Text()) {
		return result.NewError(t.method, key, 0,
			domain.NewTaskError(string(t.method), key.A(), key.B(), domain.ErrMalformedText))
	}

	scorer, err := s.scorers.Lookup(t.method)
	if err != nil {
		return result.NewError(t.method, key, 0, domain.NewTaskError(string(t.method), key.A(), key.B(), err))
	}

	score, err := scorer.Score(ctx, t.a.Text(), t.b.Text())
	elapsed := time.Since(start)
	if err != nil {
		return result.NewError(t.method, key, elapsed, domain.NewTaskError(string(t.method), key.A(), key.B(), err))
	}
	return result.NewOK(t.method, key, score, elapsed)
}

func observe(r result.Result) {
	m := string(r.Method())
	metrics.ComparisonsTotal.WithLabelValues(m, string(r.Status())).Inc()
	metrics.ComparisonDuration.WithLabelValues(m).Observe(r.Elapsed().Seconds())
}

func (s *Service) report(table *result.Table, took time.Duration) {
	failures := table.Failures()
	failed := make(map[method.Method]int)
	for _, f := range failures {
		failed[f.Method()]++
		s.logger.Warn("Comparison failed",
			zap.String("method", string(f.Method())),
			zap.String("essay_a", f.Key().A()),
			zap.String("essay_b", f.Key().B()),
			zap.Error(f.Err()),
		)
	}
	for _, m := range table.Methods() {
		s.logger.Info("Method completed",
			zap.String("method", string(m)),
			zap.Int("results", table.Len(m)),
			zap.Int("failed", failed[m]),
			zap.Duration("scoring_time", table.Elapsed(m)),
		)
	}
	s.logger.Info("Corpus compared",
		zap.Int("failed", len(failures)),
		zap.Duration("duration", took),
	)
}
