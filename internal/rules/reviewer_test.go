package rules

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModel struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	for _, p := range parts {
		if text, ok := p.(genai.Text); ok {
			f.prompts = append(f.prompts, string(text))
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(f.reply)}},
		}},
	}, nil
}

func TestReviewer_Approves(t *testing.T) {
	model := &fakeModel{reply: "  approved\n"}
	r, err := NewReviewer(model)
	require.NoError(t, err)

	ok, err := r.Validate(context.Background(), "TS-1 fix enum parsing")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, model.prompts, 1)
	assert.True(t, strings.Contains(model.prompts[0], "TS-1 fix enum parsing"))
}

func TestReviewer_RemembersVerdict(t *testing.T) {
	model := &fakeModel{reply: "REJECTED"}
	r, err := NewReviewer(model)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		ok, err := r.Validate(context.Background(), "wip")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Equal(t, 1, model.calls)
}

func TestReviewer_Errors(t *testing.T) {
	r, err := NewReviewer(&fakeModel{err: errors.New("quota exceeded")})
	require.NoError(t, err)

	ok, err := r.Validate(context.Background(), "anything")
	assert.Error(t, err)
	assert.False(t, ok)

	rule := ReviewerRule(12, r)
	rs, err := New(append(CommitLog(testFixtures), rule))
	require.NoError(t, err)

	results, err := rs.Evaluate(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, results[12])
}
