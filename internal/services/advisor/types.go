package advisor

// PriceEvaluation is the advisory fairness judgment for a proposed
// price. It is ephemeral: surfaced to the caller, never persisted on
// the transaction.
type PriceEvaluation struct {
	FairMarketValue int64  `json:"fairMarketValue"`
	GoodDeal        bool   `json:"goodDeal"`
	Suggestion      string `json:"suggestion"`
}

// LocationSuggestion is one ranked candidate meeting place.
type LocationSuggestion struct {
	Name    string `json:"SuitableLocationName"`
	MapLink string `json:"SuitableLocationGoogleMapsLink"`
}

// EvaluatePriceRequest describes the listing and the proposed price.
type EvaluatePriceRequest struct {
	Description string   `json:"desc"`
	Price       int64    `json:"price"`
	Seller      string   `json:"seller"`
	ImageURLs   []string `json:"image_urls"`
}

// LocationRequest carries both parties' coordinates.
type LocationRequest struct {
	Lat1 float64 `json:"lat1"`
	Lon1 float64 `json:"lon1"`
	Lat2 float64 `json:"lat2"`
	Lon2 float64 `json:"lon2"`
}
