package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/tatianab/commit-game/internal/config"
	"github.com/tatianab/commit-game/internal/engine"
	"github.com/tatianab/commit-game/internal/models"
	"github.com/tatianab/commit-game/internal/rules"
)

const maxTurns = 12

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	rnd := engine.NewRand(uint64(time.Now().UnixNano()))
	fixtures := rules.NewFixtures(rnd, time.Now())

	rs, err := rules.New(rules.CommitLog(fixtures))
	if err != nil {
		log.Fatalf("Failed to build rules: %v", err)
	}
	content, err := models.LoadContent(cfg.ContentPath)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	session, err := engine.NewSession(ctx, engine.New(rs, content, engine.WithRand(rnd)))
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	// Without an API key the player follows a fixed script.
	var player *genai.GenerativeModel
	if cfg.GeminiAPIKey != "" {
		client, model, err := rules.NewGeminiModel(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer client.Close()
		player = model
	}

	fmt.Printf("Target color: %s, today: %s\n\n", fixtures.TargetColor, fixtures.Today)

	for turn := 1; turn <= maxTurns; turn++ {
		fmt.Printf("--- Turn %d ---\n", turn)

		var attempt string
		if player != nil {
			attempt = getPlayerAttempt(ctx, player, session)
		} else {
			attempt = scriptedAttempt(turn, fixtures)
		}
		fmt.Printf("Commit: %s\n", attempt)

		st, err := session.Change(ctx, attempt)
		if err != nil {
			fmt.Printf("Error evaluating commit: %v\n", err)
			break
		}

		for _, v := range session.View() {
			mark := "✗"
			if v.Satisfied {
				mark = "✓"
			}
			fmt.Printf("  %s Rule %d: %s\n", mark, v.Rule.ID, v.Rule.Description)
		}
		if st.Interference != nil {
			fmt.Printf("INTERFERENCE (%s): %s\n", st.Interference.Kind, st.Interference.Message)
		}
		fmt.Printf("Satisfied: %d/%d\n\n", len(st.Satisfied), st.Total)

		if session.Submit() {
			fmt.Println("Game Ended: commit accepted!")
			return
		}
		if st.Interference != nil && len(st.Satisfied) == st.Total {
			fmt.Println("Game Ended: every rule passes but the interference never goes away.")
			return
		}
	}
}

func scriptedAttempt(turn int, f rules.Fixtures) string {
	script := []string{
		"update stuff",
		"TS-1 update stuff",
		"TS-1 update stuff yolo",
		"TS-1 fix yolo",
		"TS-1 fix yolo type",
		"TS-1 fix yolo type feature",
		"TS-1 fix yolo type feature🐛🐛🐛🐛",
	}
	if turn <= len(script) {
		return script[turn-1]
	}
	return fmt.Sprintf("TS-1 fix yolo type feature🐛🐛🐛🐛,%s,%s", f.TargetColor, f.Today)
}

func getPlayerAttempt(ctx context.Context, model *genai.GenerativeModel, session *engine.Session) string {
	st := session.State()

	var ruleText strings.Builder
	for _, v := range session.View() {
		status := "FAILING"
		if v.Satisfied {
			status = "passing"
		}
		fmt.Fprintf(&ruleText, "- Rule %d (%s): %s", v.Rule.ID, status, v.Rule.Description)
		if v.Rule.Color != "" {
			fmt.Fprintf(&ruleText, " [the color is %s]", v.Rule.Color)
		}
		ruleText.WriteString("\n")
	}

	prompt := fmt.Sprintf(`You are playing a game where you must write a single-line commit message
that satisfies every rule below at the same time.

Your previous attempt: %q

Rules:
%s
Today's date is %s. Return ONLY the new commit message, no extra commentary.`,
		st.Input,
		ruleText.String(),
		time.Now().Format(time.DateOnly),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return st.Input
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return st.Input
	}
	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
}
