package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/commit-game/internal/config"
	"github.com/tatianab/commit-game/internal/rules"
)

var testFixtures = rules.Fixtures{TargetColor: "#a1b2c3", Today: "2026-10-17"}

func TestNewRootCommand_Flags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"seed", "ai-review", "trending", "allow-resolve", "content", "log-file", "log-level"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := NewRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--log-level", "debug", "--content", "mine.yaml"}))

	cfg := &config.Config{LogLevel: "info", LogFile: "env.log", ContentPath: "env.yaml"}
	opts := &Options{
		ContentPath: cmd.Flags().Lookup("content").Value.String(),
		LogLevel:    cmd.Flags().Lookup("log-level").Value.String(),
	}
	applyFlags(cmd, opts, cfg)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "mine.yaml", cfg.ContentPath)
	assert.Equal(t, "env.log", cfg.LogFile, "unset flags keep the environment value")
}

func TestBuildRules_Default(t *testing.T) {
	list, closeFn, err := BuildRules(context.Background(), &Options{}, &config.Config{}, testFixtures)
	require.NoError(t, err)
	defer closeFn()

	rs, err := rules.New(list)
	require.NoError(t, err)
	assert.Equal(t, 11, rs.Len())
}

func TestBuildRules_Trending(t *testing.T) {
	list, closeFn, err := BuildRules(context.Background(), &Options{Trending: true}, &config.Config{GitHubAPI: "http://127.0.0.1:1"}, testFixtures)
	require.NoError(t, err)
	defer closeFn()

	rs, err := rules.New(list)
	require.NoError(t, err)
	assert.Equal(t, 12, rs.Len())

	r, ok := rs.Rule(12)
	require.True(t, ok)
	assert.Contains(t, r.Description, "trending")
}

func TestBuildRules_AIReviewNeedsKey(t *testing.T) {
	_, _, err := BuildRules(context.Background(), &Options{AIReview: true}, &config.Config{}, testFixtures)
	assert.ErrorContains(t, err, "GEMINI_API_KEY")
}

func TestApplyFlags_OverridesBadEnvLevel(t *testing.T) {
	t.Setenv("COMMIT_GAME_LOG_LEVEL", "chatty")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Error(t, cfg.Validate())

	cmd := NewRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--log-level", "warn"}))
	applyFlags(cmd, &Options{LogLevel: "warn"}, cfg)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}
