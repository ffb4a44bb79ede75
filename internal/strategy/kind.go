package strategy

// #region imports
import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielpatrickdp/wordle-engine/internal/entropy"
)

// #endregion

// #region kind

// Kind identifies a guess selection strategy.
type Kind string

const (
	Frequency Kind = "frequency"
	Entropy   Kind = "entropy"
	Hybrid    Kind = "hybrid"
)

// Auto asks Select to pick a kind from recorded benchmark results.
const Auto = "auto"

// ErrUnknownKind is returned by ParseKind for names it does not recognise.
var ErrUnknownKind = errors.New("unknown strategy")

// Kinds lists the built-in strategies in display order.
func Kinds() []Kind {
	return []Kind{Frequency, Entropy, Hybrid}
}

var aliases = map[string]Kind{
	"frequency":         Frequency,
	"random":            Frequency,
	"naive":             Frequency,
	"entropy":           Entropy,
	"highest-entropy":   Entropy,
	"hybrid":            Hybrid,
	"optimized-entropy": Hybrid,
}

// ParseKind maps a strategy name or one of its aliases to a Kind.
func ParseKind(s string) (Kind, error) {
	if k, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// #endregion

// #region profiles

// profile is the static behaviour of one Kind.
type profile struct {
	score        entropy.ScoreFunc // nil = pick by weight
	openers      []string
	randomOpener bool
}

var profiles = map[Kind]profile{
	Frequency: {},
	Entropy: {
		score:   entropy.ExpectedInformation,
		openers: []string{"tares"},
	},
	Hybrid: {
		score:        entropy.HybridScore,
		openers:      []string{"tared", "crane", "whale"},
		randomOpener: true,
	},
}

// #endregion

// #region select

// Memory reports the best performing strategy name among recorded runs.
type Memory interface {
	BestStrategy(minGames int) (string, error)
}

// Select resolves a requested strategy name. Auto or an empty name
// consults memory (runs with at least minGames games) and falls back to
// Entropy when memory is nil or has no answer.
func Select(requested string, memory Memory, minGames int) (Kind, error) {
	if requested != "" && requested != Auto {
		return ParseKind(requested)
	}
	if memory != nil {
		learned, err := memory.BestStrategy(minGames)
		if err == nil && learned != "" {
			if k, err := ParseKind(learned); err == nil {
				return k, nil
			}
		}
	}
	return Entropy, nil
}

// #endregion
