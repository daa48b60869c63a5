package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/essaysim/internal/config"
	lexiconrepo "github.com/kailas-cloud/essaysim/internal/repository/lexicon"
)

func lexiconCommand() *cli.Command {
	return &cli.Command{
		Name:  "lexicon",
		Usage: "Manage the shared synonym lexicon",
		Subcommands: []*cli.Command{
			{
				Name:  "seed",
				Usage: "Write a word<TAB>synonym file into the Valkey lexicon",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Lexicon TSV (default: lexicon.path)"},
					&cli.IntFlag{Name: "batch-size", Value: lexiconrepo.DefaultSeedBatchSize, Usage: "Fields per HSET"},
				},
				Action: seedAction,
			},
		},
	}
}

func seedAction(c *cli.Context) error {
	cfg, env, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Lexicon.Backend != config.LexiconValkey {
		return fmt.Errorf("lexicon seed needs lexicon.backend %q, got %q", config.LexiconValkey, cfg.Lexicon.Backend)
	}
	path := c.String("file")
	if path == "" {
		path = cfg.Lexicon.Path
	}
	if path == "" {
		return fmt.Errorf("lexicon file is required (--file or lexicon.path)")
	}

	logger, err := newLogger(env, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	entries, err := lexiconrepo.ReadTSV(path)
	if err != nil {
		return err
	}

	store, err := connectValkey(c.Context, cfg.Lexicon, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := lexiconrepo.Seed(c.Context, store, cfg.Lexicon.KeyPrefix, entries, c.Int("batch-size"))
	if err != nil {
		return err
	}
	total, err := store.HLen(c.Context, lexiconrepo.Key(cfg.Lexicon.KeyPrefix))
	if err != nil {
		return fmt.Errorf("count lexicon: %w", err)
	}
	logger.Info("Lexicon seeded",
		zap.String("file", path),
		zap.Int("written", n),
		zap.Int64("total", total),
		zap.String("key", lexiconrepo.Key(cfg.Lexicon.KeyPrefix)),
	)
	return nil
}
