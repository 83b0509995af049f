package negotiation

import (
	"context"

	"handshake/internal/models"
	"handshake/internal/services/advisor"
)

// Service handles price negotiation over a transaction's message log.
type Service interface {
	ProposePrice(ctx context.Context, txID string, actor models.Actor, text string) (*models.Message, *advisor.PriceEvaluation, error)
	AcceptPrice(ctx context.Context, txID string, actor models.Actor, explicitPrice *int64) (*models.Transaction, error)
}

// Evaluator is the advisory fairness collaborator.
type Evaluator interface {
	EvaluatePrice(ctx context.Context, req advisor.EvaluatePriceRequest) (*advisor.PriceEvaluation, error)
}

// EvaluationCache parks the latest advisory fair market value per
// transaction so AcceptPrice can fall back to it.
type EvaluationCache interface {
	CacheEvaluation(ctx context.Context, txID string, fairMarketValue int64) error
	GetEvaluation(ctx context.Context, txID string) (int64, bool, error)
}
