package meetup

import (
	"context"

	"handshake/internal/models"
	"handshake/internal/services/advisor"
)

// Service resolves and records the physical handover location.
type Service interface {
	Suggest(ctx context.Context, txID string, actor models.Actor, req SuggestRequest) (*Result, error)
	SetTime(ctx context.Context, txID string, actor models.Actor, meetupTime string) (*models.Transaction, error)
}

// Locator is the external ranking collaborator.
type Locator interface {
	GenerateLocations(ctx context.Context, req advisor.LocationRequest) ([]advisor.LocationSuggestion, error)
}

// SuggestRequest carries both parties' coordinates and the caller's pick
// among the ranked candidates. Choice 0 is the top-ranked result.
type SuggestRequest struct {
	BuyerLat  float64
	BuyerLon  float64
	SellerLat float64
	SellerLon float64
	Choice    int
}

// Result is the persisted selection plus the full ranked list, so the
// caller can offer alternatives without a second lookup.
type Result struct {
	Transaction *models.Transaction
	Selected    advisor.LocationSuggestion
	Candidates  []advisor.LocationSuggestion
}
