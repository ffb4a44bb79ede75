package rpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/danielpatrickdp/wordle-engine/internal/wordle"
)

// #region messages

// Suggestion is the decoded Suggest response.
type Suggestion struct {
	Guess     wordle.Word
	Remaining int
}

func encodeSuggestRequest(gameID string, history []wordle.Attempt) (*structpb.Struct, error) {
	attempts := make([]any, len(history))
	for i, a := range history {
		attempts[i] = map[string]any{
			"guess":   a.Guess.String(),
			"pattern": a.Pattern.String(),
		}
	}
	return structpb.NewStruct(map[string]any{
		"game_id":  gameID,
		"attempts": attempts,
	})
}

func decodeSuggestRequest(in *structpb.Struct) (string, []wordle.Attempt, error) {
	fields := in.GetFields()
	gameID := fields["game_id"].GetStringValue()
	if gameID == "" {
		return "", nil, fmt.Errorf("missing game_id")
	}
	values := fields["attempts"].GetListValue().GetValues()
	history := make([]wordle.Attempt, 0, len(values))
	for i, v := range values {
		f := v.GetStructValue().GetFields()
		a, err := wordle.NewAttempt(f["guess"].GetStringValue(), f["pattern"].GetStringValue())
		if err != nil {
			return "", nil, fmt.Errorf("attempt %d: %w", i+1, err)
		}
		history = append(history, a)
	}
	return gameID, history, nil
}

func encodeSuggestion(s Suggestion) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"guess":     s.Guess.String(),
		"remaining": s.Remaining,
	})
}

func decodeSuggestion(out *structpb.Struct) (Suggestion, error) {
	fields := out.GetFields()
	guess, err := wordle.ParseWord(fields["guess"].GetStringValue())
	if err != nil {
		return Suggestion{}, fmt.Errorf("decode guess: %w", err)
	}
	return Suggestion{Guess: guess, Remaining: int(fields["remaining"].GetNumberValue())}, nil
}

// #endregion messages
