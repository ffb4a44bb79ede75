package wordle

import "fmt"

// #region color

// Color scores guess against secret. Correct positions are claimed first;
// the remaining letters of secret form a per-letter budget that Misplaced
// marks draw from left to right, so a letter present k times in secret and
// m times in guess gets exactly min(k, m) non-Incorrect marks.
func Color(secret, guess Word) Pattern {
	var p Pattern
	var budget [256]int8
	for i := 0; i < Length; i++ {
		if secret[i] == guess[i] {
			p[i] = Correct
		} else {
			budget[secret[i]]++
		}
	}
	for i := 0; i < Length; i++ {
		if p[i] == Correct {
			continue
		}
		if budget[guess[i]] > 0 {
			p[i] = Misplaced
			budget[guess[i]]--
		}
	}
	return p
}

// ColorStrings is Color for unvalidated input.
func ColorStrings(secret, guess string) (Pattern, error) {
	s, err := ParseWord(secret)
	if err != nil {
		return Pattern{}, fmt.Errorf("secret: %w", err)
	}
	g, err := ParseWord(guess)
	if err != nil {
		return Pattern{}, fmt.Errorf("guess: %w", err)
	}
	return Color(s, g), nil
}

// #endregion color

// #region consistency

// IsConsistent reports whether candidate could be the secret given that
// a.Guess scored a.Pattern, i.e. Color(candidate, a.Guess) == a.Pattern.
func IsConsistent(a Attempt, candidate Word) bool {
	for i := 0; i < Length; i++ {
		if (candidate[i] == a.Guess[i]) != (a.Pattern[i] == Correct) {
			return false
		}
	}
	return Color(candidate, a.Guess) == a.Pattern
}

// ValidatePattern rejects feedback that Color can never emit because a
// letter is marked Incorrect to the left of the same letter marked
// Misplaced. Other unsatisfiable patterns pass and simply match no word.
func ValidatePattern(guess Word, p Pattern) error {
	if !guess.Valid() {
		return fmt.Errorf("%w: guess %q", ErrInvalidLetter, guess.String())
	}
	var sawIncorrect [alphabet]bool
	for i := 0; i < Length; i++ {
		l := guess[i] - 'a'
		switch p[i] {
		case Incorrect:
			sawIncorrect[l] = true
		case Misplaced:
			if sawIncorrect[l] {
				return fmt.Errorf("%w: %s scored %s, %q misplaced after incorrect",
					ErrImpossiblePattern, guess, p, guess[i])
			}
		case Correct:
		default:
			return fmt.Errorf("%w: %d at position %d", ErrInvalidScore, p[i], i)
		}
	}
	return nil
}

// #endregion consistency
