// Package strategy chooses the next guess from the feedback gathered so far.
package strategy

// #region imports
import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/danielpatrickdp/wordle-engine/internal/candidates"
	"github.com/danielpatrickdp/wordle-engine/internal/corpus"
	"github.com/danielpatrickdp/wordle-engine/internal/entropy"
	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #endregion

// #region errors

var (
	// ErrNoCandidates means the history rules out every word.
	ErrNoCandidates = candidates.ErrNoCandidates
	// ErrHistoryRewound means Solve got a history that does not extend the
	// attempts it has already applied.
	ErrHistoryRewound = errors.New("history does not extend applied attempts")
	// ErrSolved means the history already holds an all-correct attempt.
	ErrSolved = errors.New("puzzle already solved")
)

// #endregion

// #region options

// IntNer is the source of randomness for opener choice. *rand.Rand
// satisfies it.
type IntNer interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Option configures a Solver.
type Option func(*Solver)

// WithOpener fixes the first guess.
func WithOpener(w wordle.Word) Option {
	return func(s *Solver) { s.openers = []wordle.Word{w} }
}

// WithOpeners replaces the opener list. An empty list disables openers.
func WithOpeners(ws []wordle.Word) Option {
	return func(s *Solver) { s.openers = append([]wordle.Word(nil), ws...) }
}

// WithRand sets the source used to pick among several openers.
func WithRand(r IntNer) Option {
	return func(s *Solver) { s.rand = r }
}

// WithWorkers bounds ranking parallelism. n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Solver) { s.workers = n }
}

// WithLogger sets the debug logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCandidates restricts the possible secrets to words, for example an
// answer list. A word outside the corpus makes every Solve call fail with
// corpus.ErrUnknownGuess.
func WithCandidates(ws []wordle.Word) Option {
	return func(s *Solver) {
		s.pool = append([]wordle.Word(nil), ws...)
		s.restricted = true
	}
}

// #endregion

// #region solver

// Solver picks guesses for one puzzle. It is not safe for concurrent use;
// create one per puzzle.
type Solver struct {
	kind    Kind
	profile profile
	corpus  *corpus.Corpus
	pool    []wordle.Word
	openers []wordle.Word
	rand    IntNer
	workers int
	logger  *zap.Logger

	restricted bool // pool replaces the full corpus, even when empty

	set     *candidates.Set
	err     error // sticky construction error, returned by Solve
	applied []wordle.Attempt
}

// New returns a solver of the given kind over c. It panics if kind is not
// one of Kinds(); use ParseKind for names from outside the program.
func New(kind Kind, c *corpus.Corpus, opts ...Option) *Solver {
	p, ok := profiles[kind]
	if !ok {
		panic(fmt.Sprintf("strategy.New: %q: %v", kind, ErrUnknownKind))
	}
	s := &Solver{
		kind:    kind,
		profile: p,
		corpus:  c,
		rand:    globalRand{},
		logger:  zap.NewNop(),
	}
	for _, name := range p.openers {
		s.openers = append(s.openers, wordle.MustParseWord(name))
	}
	for _, opt := range opts {
		opt(s)
	}
	s.set, s.err = s.initialSet()
	return s
}

func (s *Solver) initialSet() (*candidates.Set, error) {
	if !s.restricted {
		return candidates.New(s.corpus), nil
	}
	set, err := candidates.FromWords(s.corpus, s.pool)
	if err != nil {
		empty, _ := candidates.FromWords(s.corpus, nil)
		return empty, err
	}
	return set, nil
}

// Kind returns the strategy the solver runs.
func (s *Solver) Kind() Kind {
	return s.kind
}

// Remaining returns the number of candidates left after the attempts
// applied so far.
func (s *Solver) Remaining() int {
	return s.set.Len()
}

// Candidates returns the remaining candidates in corpus order.
func (s *Solver) Candidates() []wordle.Word {
	return s.set.Words()
}

// Solve returns the next guess for history. history must extend the
// history passed on previous calls; only the new attempts are applied.
// It never guesses once the candidate set is empty.
func (s *Solver) Solve(history []wordle.Attempt) (wordle.Word, error) {
	if s.err != nil {
		return wordle.Word{}, s.err
	}
	if s.set.Len() == 0 {
		return wordle.Word{}, ErrNoCandidates
	}
	if len(history) == 0 && len(s.applied) == 0 {
		if w, ok := s.opener(); ok {
			s.logger.Debug("opener", zap.String("strategy", string(s.kind)), zap.Stringer("guess", w))
			return w, nil
		}
	}
	if err := s.narrow(history); err != nil {
		return wordle.Word{}, err
	}
	if s.set.Len() == 0 {
		return wordle.Word{}, ErrNoCandidates
	}
	w := s.rank()
	s.logger.Debug("guess",
		zap.String("strategy", string(s.kind)),
		zap.Int("turn", len(history)+1),
		zap.Int("remaining", s.set.Len()),
		zap.Stringer("guess", w),
	)
	return w, nil
}

// #endregion

// #region narrow

func (s *Solver) narrow(history []wordle.Attempt) error {
	if len(history) < len(s.applied) {
		return fmt.Errorf("got %d attempts, %d applied: %w", len(history), len(s.applied), ErrHistoryRewound)
	}
	for i, a := range s.applied {
		if history[i] != a {
			return fmt.Errorf("attempt %d changed from %s to %s: %w", i+1, a, history[i], ErrHistoryRewound)
		}
	}
	for i := len(s.applied); i < len(history); i++ {
		a := history[i]
		if err := wordle.ValidatePattern(a.Guess, a.Pattern); err != nil {
			return fmt.Errorf("attempt %d: %w", i+1, err)
		}
		if a.Pattern.Solved() {
			return fmt.Errorf("attempt %d: %w", i+1, ErrSolved)
		}
		removed := s.set.Apply(a)
		s.applied = append(s.applied, a)
		s.logger.Debug("narrowed",
			zap.Stringer("attempt", a),
			zap.Int("removed", removed),
			zap.Int("remaining", s.set.Len()),
		)
	}
	return nil
}

// #endregion

// #region select-guess

func (s *Solver) opener() (wordle.Word, bool) {
	var present []wordle.Word
	for _, w := range s.openers {
		if s.corpus.Contains(w) {
			present = append(present, w)
		}
	}
	switch {
	case len(present) == 0:
		return wordle.Word{}, false
	case len(present) == 1 || !s.profile.randomOpener:
		return present[0], true
	default:
		return present[s.rand.IntN(len(present))], true
	}
}

func (s *Solver) rank() wordle.Word {
	if s.profile.score == nil {
		return s.heaviest()
	}
	v := s.set.View()
	records := entropy.Rank(v, v.Words(), s.profile.score, s.workers)
	best, _ := entropy.Best(records)
	return best.Word
}

// heaviest returns the candidate with the largest weight, preferring the
// lexically smallest word on ties.
func (s *Solver) heaviest() wordle.Word {
	var best wordle.Word
	var bestWeight uint32
	found := false
	s.set.Each(func(w wordle.Word, weight uint32) bool {
		if !found || weight > bestWeight ||
			(weight == bestWeight && bytes.Compare(w[:], best[:]) < 0) {
			best, bestWeight, found = w, weight, true
		}
		return true
	})
	return best
}

// #endregion
