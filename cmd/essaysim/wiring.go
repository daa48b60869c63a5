package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/essaysim/internal/config"
	dbValkey "github.com/kailas-cloud/essaysim/internal/db/valkey"
	"github.com/kailas-cloud/essaysim/internal/domain"
	"github.com/kailas-cloud/essaysim/internal/domain/method"
	"github.com/kailas-cloud/essaysim/internal/domain/result"
	"github.com/kailas-cloud/essaysim/internal/metrics"
	"github.com/kailas-cloud/essaysim/internal/repository/corpus"
	lexiconrepo "github.com/kailas-cloud/essaysim/internal/repository/lexicon"
	"github.com/kailas-cloud/essaysim/internal/repository/results"
	"github.com/kailas-cloud/essaysim/internal/scoring"
	"github.com/kailas-cloud/essaysim/internal/scoring/cosine"
	"github.com/kailas-cloud/essaysim/internal/scoring/fingerprint"
	"github.com/kailas-cloud/essaysim/internal/scoring/smpc"
	compareuc "github.com/kailas-cloud/essaysim/internal/usecase/compare"
	healthuc "github.com/kailas-cloud/essaysim/internal/usecase/health"
)

// app is the composition root shared by run and serve.
type app struct {
	cfg     config.Config
	methods []method.Method
	scorers scoring.Registry
	compare *compareuc.Service
	health  *healthuc.Service
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// sink persists a finished comparison table.
type sink interface {
	Write(ctx context.Context, table *result.Table) error
}

func buildApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	metrics.RegisterScoringMetrics()

	methods, err := cfg.Scoring.ParsedMethods()
	if err != nil {
		return nil, err
	}
	normalized, err := cfg.Scoring.NormalizedMethods()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, methods: methods}

	var pinger healthuc.LexiconPinger
	scorers := []scoring.Scorer{
		cosine.New(cosine.Config{Clean: cfg.Scoring.Cosine.Clean}),
		fingerprint.New(fingerprint.Config{Clean: cfg.Scoring.Fingerprint.Clean}),
	}
	if slices.Contains(methods, method.SMPC) {
		lex, store, err := buildLexicon(ctx, cfg.Lexicon, logger)
		if err != nil {
			return nil, err
		}
		if store != nil {
			a.closers = append(a.closers, store.Close)
			// Pass nil interface, not a typed nil pointer, for the static backend.
			pinger = store
		}

		res := smpc.Resources{Lexicon: lex}
		if res.FunctionWords, err = corpus.LoadWordlist(cfg.Wordlists.FunctionWords); err != nil {
			a.Close()
			return nil, fmt.Errorf("function words: %w", err)
		}
		if res.CoreVocab, err = corpus.LoadWordlist(cfg.Wordlists.CoreVocab); err != nil {
			a.Close()
			return nil, fmt.Errorf("core vocabulary: %w", err)
		}
		s, err := smpc.New(res)
		if err != nil {
			a.Close()
			return nil, err
		}
		scorers = append(scorers, s.WithProfileCache(cfg.Scoring.ProfileCacheSize))
		logger.Info("SMPC resources loaded",
			zap.Int("function_words", res.FunctionWords.Len()),
			zap.Int("core_vocab", res.CoreVocab.Len()),
			zap.String("lexicon_backend", cfg.Lexicon.Backend),
		)
	}
	a.scorers = scoring.NewRegistry(scorers...)

	a.compare = compareuc.New(a.scorers, logger).
		WithWorkers(cfg.Scoring.Workers).
		WithChunkSize(cfg.Scoring.ChunkSize).
		WithQueueMultiplier(cfg.Scoring.QueueMultiplier).
		WithNormalize(normalized...)
	a.health = healthuc.New(pinger, a.scorers, methods)
	return a, nil
}

// buildLexicon assembles the lookup chain: Static or Valkey Store -> Cached.
// The returned store is nil for the static backend.
func buildLexicon(ctx context.Context, cfg config.LexiconConfig, logger *zap.Logger) (domain.Lexicon, *dbValkey.Store, error) {
	var (
		lex   domain.Lexicon
		store *dbValkey.Store
	)
	switch cfg.Backend {
	case config.LexiconValkey:
		var err error
		store, err = connectValkey(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		lex = lexiconrepo.NewStore(store, cfg.KeyPrefix)
	default:
		static, err := lexiconrepo.LoadStatic(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load lexicon: %w", err)
		}
		logger.Info("Lexicon loaded", zap.String("path", cfg.Path), zap.Int("entries", static.Len()))
		lex = static
	}

	if cfg.CacheSize < 0 {
		return lex, store, nil
	}
	cached, err := lexiconrepo.NewCached(lex, cfg.CacheSize, metrics.LexiconCacheTotal)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, fmt.Errorf("lexicon cache: %w", err)
	}
	return cached, store, nil
}

func connectValkey(ctx context.Context, cfg config.LexiconConfig, logger *zap.Logger) (*dbValkey.Store, error) {
	store, err := dbValkey.NewStore(dbValkey.Config{Addrs: cfg.Addrs, Password: cfg.Password})
	if err != nil {
		return nil, fmt.Errorf("create lexicon store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("lexicon store not ready: %w", err)
	}
	logger.Info("Connected to lexicon store", zap.Strings("addrs", cfg.Addrs))
	return store, nil
}

func buildSink(cfg config.OutputConfig) sink {
	if cfg.Format == config.OutputSQLite {
		return results.NewSQLiteSink(cfg.Path)
	}
	return results.NewCSVSink(cfg.Path)
}
