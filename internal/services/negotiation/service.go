package negotiation

import (
	"context"
	"fmt"
	"log"

	domain "handshake/internal/errors"
	"handshake/internal/models"
	"handshake/internal/repositories"
	"handshake/internal/services/advisor"
	"handshake/internal/utils"
	"handshake/internal/validation"
)

type service struct {
	repo      repositories.TransactionRepository
	listings  repositories.ListingRepository
	evaluator Evaluator
	evals     EvaluationCache
}

// NewService creates a new negotiation service
func NewService(repo repositories.TransactionRepository, listings repositories.ListingRepository,
	evaluator Evaluator, evals EvaluationCache) Service {
	if repo == nil {
		panic("transaction repository is required")
	}
	if listings == nil {
		panic("listing repository is required")
	}

	return &service{
		repo:      repo,
		listings:  listings,
		evaluator: evaluator,
		evals:     evals,
	}
}

// ProposePrice appends the text as a chat message. If it carries a
// tagged price, a fairness evaluation is requested as well; that call is
// advisory and never blocks the message from landing.
func (s *service) ProposePrice(ctx context.Context, txID string, actor models.Actor, text string) (*models.Message, *advisor.PriceEvaluation, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, nil, err
	}

	if tx.RoleOf(actor.ID) == models.RoleNone {
		return nil, nil, domain.ErrActionNotAllowed
	}
	if tx.Terminal() {
		return nil, nil, domain.ErrIllegalPhaseTransition
	}

	msg := &models.Message{
		ID:       utils.NewMessageID(),
		SenderID: actor.ID,
		Text:     text,
	}
	if err := s.repo.AppendMessage(ctx, txID, msg); err != nil {
		return nil, nil, err
	}

	price, ok := ExtractPrice(text)
	if !ok {
		return msg, nil, nil
	}

	eval := s.evaluate(ctx, tx, price)
	return msg, eval, nil
}

// evaluate asks the advisor for a fairness judgment. Failures are logged
// and swallowed: the proposal already landed and evaluation is advisory.
func (s *service) evaluate(ctx context.Context, tx *models.Transaction, price int64) *advisor.PriceEvaluation {
	if s.evaluator == nil {
		return nil
	}

	listing, err := s.listings.GetByID(ctx, tx.ListingID)
	if err != nil {
		log.Printf("price evaluation skipped for %s: %v", tx.ID, err)
		return nil
	}

	eval, err := s.evaluator.EvaluatePrice(ctx, advisor.EvaluatePriceRequest{
		Description: listing.Description,
		Price:       price,
		Seller:      fmt.Sprint(tx.SellerID),
		ImageURLs:   listing.ImageURLs,
	})
	if err != nil {
		log.Printf("price evaluation failed for %s: %v", tx.ID, err)
		return nil
	}

	if s.evals != nil {
		if err := s.evals.CacheEvaluation(ctx, tx.ID, eval.FairMarketValue); err != nil {
			log.Printf("failed to cache evaluation for %s: %v", tx.ID, err)
		}
	}
	return eval
}

// AcceptPrice records the agreed price. Seller only. Resolution order:
// explicit price, newest tagged price in the log, cached advisory fair
// market value, then the listing's asking price.
func (s *service) AcceptPrice(ctx context.Context, txID string, actor models.Actor, explicitPrice *int64) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	if tx.RoleOf(actor.ID) != models.RoleSeller {
		return nil, domain.ErrActionNotAllowed
	}
	if models.PhaseOf(tx) != models.PhaseNegotiating {
		return nil, domain.ErrIllegalPhaseTransition
	}

	price, err := s.resolvePrice(ctx, tx, explicitPrice)
	if err != nil {
		return nil, err
	}
	// Tagged prices come from free text; bound them the same way an
	// explicit price is bounded, before money math multiplies them.
	if price <= 0 || price > validation.MaxPrice {
		return nil, domain.ErrNoPriceAvailable
	}

	if err := s.repo.SetPrice(ctx, tx.ID, tx.Version, price); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, txID)
}

func (s *service) resolvePrice(ctx context.Context, tx *models.Transaction, explicitPrice *int64) (int64, error) {
	if explicitPrice != nil {
		return *explicitPrice, nil
	}

	if price, ok := LatestProposedPrice(tx.Messages); ok {
		return price, nil
	}

	if s.evals != nil {
		if fmv, found, err := s.evals.GetEvaluation(ctx, tx.ID); err == nil && found {
			return fmv, nil
		}
	}

	listing, err := s.listings.GetByID(ctx, tx.ListingID)
	if err == nil && listing.Price > 0 {
		return listing.Price, nil
	}

	return 0, domain.ErrNoPriceAvailable
}
