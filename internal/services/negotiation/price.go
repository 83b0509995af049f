package negotiation

import (
	"regexp"
	"strconv"

	"handshake/internal/models"
)

// pricePattern matches a currency-prefixed whole amount, e.g. "€450".
// Whole euros only, one currency symbol; this is the single structured
// signal extracted from free text.
var pricePattern = regexp.MustCompile(`€\s?(\d+)`)

// ExtractPrice returns the price proposed in a message, if any. When a
// message contains several tagged amounts the first one wins.
func ExtractPrice(text string) (int64, bool) {
	m := pricePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	price, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// LatestProposedPrice scans the message log from newest to oldest and
// returns the most recent tagged price.
func LatestProposedPrice(messages []models.Message) (int64, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if price, ok := ExtractPrice(messages[i].Text); ok {
			return price, true
		}
	}
	return 0, false
}
