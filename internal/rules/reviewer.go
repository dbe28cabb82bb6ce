package rules

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

//go:embed prompts/review_commit.txt
var reviewCommitPrompt string

// Generator is the part of *genai.GenerativeModel the reviewer needs.
type Generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Reviewer asks Gemini whether it would accept the commit message. Verdicts
// are remembered per input so the same message is judged the same way for
// the rest of the session.
type Reviewer struct {
	model Generator
	tmpl  *template.Template

	mu       sync.Mutex
	verdicts map[string]bool
}

// NewGeminiModel opens a Gemini client for the reviewer. The caller closes
// the client.
func NewGeminiModel(ctx context.Context, apiKey string) (*genai.Client, *genai.GenerativeModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, nil, err
	}
	return client, client.GenerativeModel("gemini-2.5-flash"), nil
}

func NewReviewer(model Generator) (*Reviewer, error) {
	tmpl, err := template.New("review_commit").Parse(reviewCommitPrompt)
	if err != nil {
		return nil, err
	}
	return &Reviewer{
		model:    model,
		tmpl:     tmpl,
		verdicts: make(map[string]bool),
	}, nil
}

// Validate reports whether the reviewer approves input.
func (r *Reviewer) Validate(ctx context.Context, input string) (bool, error) {
	r.mu.Lock()
	verdict, ok := r.verdicts[input]
	r.mu.Unlock()
	if ok {
		return verdict, nil
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, struct{ Message string }{Message: input}); err != nil {
		return false, err
	}

	resp, err := r.model.GenerateContent(ctx, genai.Text(buf.String()))
	if err != nil {
		return false, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return false, fmt.Errorf("no content returned from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return false, fmt.Errorf("unexpected response type from Gemini")
	}

	verdict = strings.HasPrefix(strings.ToUpper(strings.TrimSpace(string(text))), "APPROVED")

	r.mu.Lock()
	r.verdicts[input] = verdict
	r.mu.Unlock()
	return verdict, nil
}

// ReviewerRule wraps r as the rule with the given id.
func ReviewerRule(id int, r *Reviewer) Rule {
	return Rule{
		ID:          id,
		Description: "Get your commit message approved by the AI reviewer",
		Validator:   r.Validate,
	}
}
