package flashcards

import (
	"context"
	"strconv"

	"github.com/andrewpaige1/recallcards-api/models"
)

// EmptyCard is returned by Pick when there is nothing to show. Clients match
// on the exact text, trailing space included.
var EmptyCard = models.Card{
	Term:   "You Don't Have Anything to Memorize ",
	Answer: "Please Add Cards!",
}

// Pick returns the card at index in a collection. index is the raw value the
// caller sent; when it is empty, not a number or out of range the first card
// is returned instead. Unknown users and empty collections yield EmptyCard.
func (s *Service) Pick(ctx context.Context, userKey, collection, index string) (models.Card, error) {
	lib, err := s.load(ctx, userKey)
	if err != nil {
		return EmptyCard, err
	}
	if !lib.Exists {
		return EmptyCard, nil
	}
	cards, ok := lib.collection(collectionOrDefault(collection))
	if !ok || cards.Len() == 0 {
		return EmptyCard, nil
	}

	pos := 0
	if index != "" {
		if i, err := strconv.Atoi(index); err == nil && i >= 0 && i < cards.Len() {
			pos = i
		}
	}
	e := cards.At(pos)
	return models.Card{Term: e.Key, Answer: e.Value}, nil
}
