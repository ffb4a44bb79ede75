package game

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/dataset"
	"github.com/danielpatrickdp/wordle-engine/internal/strategy"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func loadDict(t *testing.T) *corpus.Dictionary {
	t.Helper()
	d, err := dataset.Load()
	require.NoError(t, err)
	return d
}

func always(word string) Solver {
	w := wordle.MustParseWord(word)
	return SolverFunc(func([]wordle.Attempt) (wordle.Word, error) { return w, nil })
}

func script(words ...string) Solver {
	return SolverFunc(func(history []wordle.Attempt) (wordle.Word, error) {
		return wordle.MustParseWord(words[min(len(history), len(words)-1)]), nil
	})
}

func TestPlaySolvedOnFirstTurn(t *testing.T) {
	res, err := Play(wordle.MustParseWord("hello"), always("hello"), loadDict(t), Options{})
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, 1, res.Turns)
	require.Len(t, res.Log, 1)
	assert.Equal(t, wordle.AllCorrect, res.Log[0].Pattern)
	assert.Equal(t, -1, res.Log[0].Remaining)
}

func TestPlaySolvedOnSecondTurn(t *testing.T) {
	res, err := Play(wordle.MustParseWord("hello"), script("world", "hello"), loadDict(t), Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, "IMICI", res.Log[0].Pattern.String())
}

func TestPlayErrors(t *testing.T) {
	dict := loadDict(t)
	hello := wordle.MustParseWord("hello")

	_, err := Play(hello, always("zzzzz"), dict, Options{})
	assert.ErrorIs(t, err, corpus.ErrUnknownGuess)

	boom := errors.New("boom")
	_, err = Play(hello, SolverFunc(func([]wordle.Attempt) (wordle.Word, error) {
		return wordle.Word{}, boom
	}), dict, Options{})
	assert.ErrorIs(t, err, boom)

	res, err := Play(hello, always("world"), dict, Options{MaxTurns: 3})
	assert.ErrorIs(t, err, ErrTurnLimit)
	assert.False(t, res.Solved)
	assert.Equal(t, 3, res.Turns)
	assert.Len(t, res.Log, 3)
}

func TestPlayRecordsRemaining(t *testing.T) {
	dict := loadDict(t)
	s := strategy.New(strategy.Entropy, dict.Guesses)
	res, err := Play(wordle.MustParseWord("woman"), s, dict, Options{})
	require.NoError(t, err)
	require.NotEmpty(t, res.Log)
	assert.Equal(t, dict.Guesses.Len(), res.Log[0].Remaining)
	for i := 1; i < len(res.Log); i++ {
		assert.Less(t, res.Log[i].Remaining, res.Log[i-1].Remaining)
	}
}

func TestEveryStrategySolvesEveryAnswer(t *testing.T) {
	dict := loadDict(t)
	for _, kind := range strategy.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			factory := func(game int) Solver {
				return strategy.New(kind, dict.Guesses,
					strategy.WithRand(rand.New(rand.NewPCG(uint64(game), 7))),
					strategy.WithWorkers(1),
				)
			}
			summary, results, err := Simulate(context.Background(), dict.Answers, factory, dict, SimulateOptions{Workers: 1})
			require.NoError(t, err)
			assert.Equal(t, len(dict.Answers), summary.Games)
			assert.Equal(t, len(dict.Answers), summary.Solved)
			assert.Zero(t, summary.Failed)
			for i, r := range results {
				assert.Equal(t, dict.Answers[i], r.Answer)
				assert.True(t, r.Solved)
			}
		})
	}
}

func TestSimulateParallelWithProgress(t *testing.T) {
	dict := loadDict(t)
	factory := func(int) Solver { return strategy.New(strategy.Entropy, dict.Guesses) }

	var calls, last int
	summary, results, err := Simulate(context.Background(), dict.Answers, factory, dict, SimulateOptions{
		Count:   10,
		Workers: 4,
		Progress: func(done, total int) {
			calls++
			last = done
			assert.Equal(t, 10, total)
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Games)
	assert.Len(t, results, 10)
	assert.Equal(t, 10, calls)
	assert.Equal(t, 10, last)
	for i, r := range results {
		assert.Equal(t, dict.Answers[i], r.Answer)
	}
}

func TestSimulateTurnLimitCountsAsFailure(t *testing.T) {
	dict := loadDict(t)
	answers := []wordle.Word{wordle.MustParseWord("hello"), wordle.MustParseWord("world")}
	factory := func(int) Solver { return always("hello") }

	summary, _, err := Simulate(context.Background(), answers, factory, dict, SimulateOptions{
		Options: Options{MaxTurns: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Solved)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 3, summary.TotalTurns)
}

func TestSimulateAbortsOnSolverError(t *testing.T) {
	dict := loadDict(t)
	factory := func(int) Solver { return always("zzzzz") }

	_, _, err := Simulate(context.Background(), dict.Answers, factory, dict, SimulateOptions{Workers: 2})
	assert.ErrorIs(t, err, corpus.ErrUnknownGuess)
}

func TestSimulateCancelled(t *testing.T) {
	dict := loadDict(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	factory := func(int) Solver { return always("hello") }
	_, _, err := Simulate(ctx, dict.Answers, factory, dict, SimulateOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAssist(t *testing.T) {
	dict := loadDict(t)
	in := strings.NewReader("bogus\nIIIIM\nCCCCC\n")
	var out bytes.Buffer

	res, err := Assist(in, &out, script("crane", "hello"), dict)
	require.NoError(t, err)
	assert.True(t, res.Solved)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, "hello", res.Answer.String())
	assert.Contains(t, out.String(), "My suggestion is 'crane'")
	assert.Contains(t, out.String(), "invalid input")
	assert.Contains(t, out.String(), "Solved in 2 turns")
}

func TestAssistStopsAtEOF(t *testing.T) {
	dict := loadDict(t)
	var out bytes.Buffer
	s := strategy.New(strategy.Entropy, dict.Guesses)

	res, err := Assist(strings.NewReader("IIIII\n"), &out, s, dict)
	require.NoError(t, err)
	assert.False(t, res.Solved)
	assert.Equal(t, 1, res.Turns)
	assert.Contains(t, out.String(), "candidates")
}

func TestParseFeedback(t *testing.T) {
	dict := loadDict(t)
	crane := wordle.MustParseWord("crane")

	tests := []struct {
		name    string
		line    string
		want    string
		wantErr error
	}{
		{"pattern-only", "iiiim", "crane:IIIIM", nil},
		{"override", "world CIIII", "world:CIIII", nil},
		{"unknown-override", "zzzzz CIIII", "", corpus.ErrUnknownGuess},
		{"bad-pattern", "CCX", "", wordle.ErrInvalidLength},
		{"too-many-fields", "a b c", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseFeedback(tt.line, crane, dict)
			if tt.want == "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.String())
		})
	}
}
