package engine

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tatianab/commit-game/internal/rules"
)

func TestNewSession(t *testing.T) {
	e := New(smallRules(t), testContent, WithRand(&scriptedRand{}))
	s, err := NewSession(context.Background(), e)
	require.NoError(t, err)

	_, err = uuid.Parse(s.ID())
	assert.NoError(t, err)

	st := s.State()
	assert.Equal(t, "", st.Input)
	assert.Equal(t, []int{1}, st.Visible)
	assert.False(t, st.Satisfied[1])
	assert.False(t, s.Submit())
}

func TestSession_Change(t *testing.T) {
	e := New(smallRules(t), testContent, WithRand(&scriptedRand{}))
	s, err := NewSession(context.Background(), e)
	require.NoError(t, err)

	st, err := s.Change(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, st.Visible)
	assert.Equal(t, st, s.State())
	assert.Equal(t, []int{2, 1}, viewIDs(s.View()))
}

func TestSession_LatestInputWins(t *testing.T) {
	defer goleak.VerifyNone(t)

	started := make(chan struct{})
	rs, err := rules.New([]rules.Rule{
		{ID: 1, Validator: func(ctx context.Context, input string) (bool, error) {
			if input == "slow" {
				close(started)
				<-ctx.Done()
				return true, ctx.Err()
			}
			return len(input) > 3, nil
		}},
		{ID: 2, Validator: longerThan(0)},
	})
	require.NoError(t, err)

	e := New(rs, testContent, WithRand(&scriptedRand{}))
	s, err := NewSession(context.Background(), e)
	require.NoError(t, err)

	errc := make(chan error, 1)
	go func() {
		_, err := s.Change(context.Background(), "slow")
		errc <- err
	}()
	<-started

	st, err := s.Change(context.Background(), "fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", st.Input)

	assert.ErrorIs(t, <-errc, ErrSuperseded)
	assert.Equal(t, "fast", s.State().Input)
	assert.Equal(t, []int{2, 1}, s.State().Visible)
}

func TestSession_BeginOrderDecidesWinner(t *testing.T) {
	e := New(smallRules(t), testContent, WithRand(&scriptedRand{}))
	s, err := NewSession(context.Background(), e)
	require.NoError(t, err)

	older := s.Begin(context.Background(), "hello world")
	newer := s.Begin(context.Background(), "hello worl")
	assert.Equal(t, "hello worl", newer.Input())

	st, err := s.Commit(newer)
	require.NoError(t, err)
	assert.Equal(t, "hello worl", st.Input)

	_, err = s.Commit(older)
	assert.ErrorIs(t, err, ErrSuperseded)

	st = s.State()
	assert.Equal(t, "hello worl", st.Input)
	assert.False(t, st.Satisfied[1])
	assert.Equal(t, []int{1}, st.Visible)
}

func TestSession_CanceledContext(t *testing.T) {
	e := New(smallRules(t), testContent, WithRand(&scriptedRand{}))
	s, err := NewSession(context.Background(), e)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Change(ctx, "hello world")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "", s.State().Input, "state is untouched")
}

func TestSession_InterferenceBlocksSubmit(t *testing.T) {
	rnd := &scriptedRand{floats: []float64{0.1}, ints: []int{1}}
	e := New(smallRules(t), testContent, WithRand(rnd))
	s, err := NewSession(context.Background(), e)
	require.NoError(t, err)

	st, err := s.Change(context.Background(), "TS-1 yolo commit")
	require.NoError(t, err)
	require.Len(t, st.Satisfied, 3)
	require.NotNil(t, st.Interference)
	assert.Equal(t, "CONFLICT: b", st.Interference.Message)
	assert.False(t, s.Submit())

	for range 3 {
		_, err = s.Change(context.Background(), "TS-1 yolo commit")
		require.NoError(t, err)
		assert.False(t, s.Submit())
	}

	st = s.ResolveInterference()
	assert.Nil(t, st.Interference)
	assert.True(t, s.Submit())
}
