// Package cli wires configuration, logging, the rule set and the terminal UI
// into the commit-game command.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tatianab/commit-game/internal/config"
	"github.com/tatianab/commit-game/internal/engine"
	"github.com/tatianab/commit-game/internal/logging"
	"github.com/tatianab/commit-game/internal/models"
	"github.com/tatianab/commit-game/internal/rules"
	"github.com/tatianab/commit-game/internal/tui"
)

// Options holds the command-line flags. Flags left unset fall back to the
// environment.
type Options struct {
	Seed         uint64
	AIReview     bool
	Trending     bool
	AllowResolve bool
	ContentPath  string
	LogFile      string
	LogLevel     string
}

// NewRootCommand creates the commit-game command.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:          "commit-game",
		Short:        "The TypeScript Commit Log Game",
		Long:         "Type a commit message that satisfies an ever growing list of absurd rules.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			applyFlags(cmd, opts, cfg)
			return run(cmd.Context(), opts, cfg)
		},
	}

	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "seed for the target color and interference draws (0 picks one)")
	cmd.Flags().BoolVar(&opts.AIReview, "ai-review", false, "add a rule judged by Gemini (needs GEMINI_API_KEY)")
	cmd.Flags().BoolVar(&opts.Trending, "trending", false, "add a rule that asks for GitHub's top TypeScript repository")
	cmd.Flags().BoolVar(&opts.AllowResolve, "allow-resolve", false, "let ctrl+r dismiss a conflict or code review")
	cmd.Flags().StringVar(&opts.ContentPath, "content", "", "YAML file with conflict and code review messages")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write JSON logs to this file")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

func applyFlags(cmd *cobra.Command, opts *Options, cfg *config.Config) {
	if cmd.Flags().Changed("content") {
		cfg.ContentPath = opts.ContentPath
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = opts.LogFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
}

func run(ctx context.Context, opts *Options, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	content, err := models.LoadContent(cfg.ContentPath)
	if err != nil {
		return err
	}

	rnd := engine.NewRand(opts.Seed)
	fixtures := rules.NewFixtures(rnd, time.Now())
	logger.Debug("Session fixtures", zap.String("color", fixtures.TargetColor), zap.String("today", fixtures.Today))

	list, closeFn, err := BuildRules(ctx, opts, cfg, fixtures)
	if err != nil {
		return err
	}
	defer closeFn()

	rs, err := rules.New(list, rules.WithLogger(logger))
	if err != nil {
		return err
	}

	eng := engine.New(rs, content, engine.WithRand(rnd), engine.WithLogger(logger))
	session, err := engine.NewSession(ctx, eng)
	if err != nil {
		return err
	}

	return tui.Run(session, tui.Options{AllowResolve: opts.AllowResolve})
}
