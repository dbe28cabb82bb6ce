package cli

import (
	"context"
	"fmt"

	"github.com/tatianab/commit-game/internal/config"
	"github.com/tatianab/commit-game/internal/rules"
)

// BuildRules assembles the shipped rules plus the optional network-backed
// ones. The returned func releases any client the rules hold.
func BuildRules(ctx context.Context, opts *Options, cfg *config.Config, fixtures rules.Fixtures) ([]rules.Rule, func(), error) {
	list := rules.CommitLog(fixtures)
	closeFn := func() {}

	if opts.Trending {
		list = append(list, rules.TrendingRule(len(list)+1, rules.NewTrending(cfg.GitHubAPI, nil)))
	}

	if opts.AIReview {
		if cfg.GeminiAPIKey == "" {
			return nil, nil, fmt.Errorf("--ai-review needs GEMINI_API_KEY")
		}
		client, model, err := rules.NewGeminiModel(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("creating Gemini client: %w", err)
		}
		reviewer, err := rules.NewReviewer(model)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		list = append(list, rules.ReviewerRule(len(list)+1, reviewer))
		closeFn = func() { client.Close() }
	}

	return list, closeFn, nil
}
