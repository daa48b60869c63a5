package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/essaysim/internal/config"
	logpkg "github.com/kailas-cloud/essaysim/internal/logger"
	"github.com/kailas-cloud/essaysim/internal/version"
)

func main() {
	// Local .env is optional.
	_ = godotenv.Load()

	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "essaysim:", err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:    "essaysim",
		Usage:   "Pairwise essay similarity (cosine, fingerprint, SMPC)",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: config/<ENV>.yaml)",
				EnvVars: []string{"ESSAYSIM_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override logging.level (debug, info, warn, error)",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			serveCommand(),
			lexiconCommand(),
		},
	}
}

// loadConfig reads the config file selected by --config or ENV.
func loadConfig(c *cli.Context) (config.Config, string, error) {
	env := config.GetEnv()
	var (
		cfg config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return config.Config{}, env, fmt.Errorf("load config: %w", err)
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}
	return cfg, env, nil
}

func newLogger(env string, cfg config.Config) (*zap.Logger, error) {
	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}
