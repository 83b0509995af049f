package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domain "handshake/internal/errors"
	"handshake/internal/models"
	"handshake/internal/repositories"
)

const (
	// Currency is fixed; the marketplace is single-currency.
	Currency = "eur"

	settlementRetries = 3
	settlementBackoff = 200 * time.Millisecond
)

type service struct {
	repo     repositories.TransactionRepository
	provider Provider
	issuer   TokenIssuer
}

// NewService creates a new payment service
func NewService(repo repositories.TransactionRepository, provider Provider, issuer TokenIssuer) Service {
	if repo == nil {
		panic("transaction repository is required")
	}
	if provider == nil {
		panic("provider is required")
	}
	if issuer == nil {
		panic("token issuer is required")
	}

	return &service{repo: repo, provider: provider, issuer: issuer}
}

// CreateIntent requests a payment intent for the agreed price. Buyer
// only, and only once the meetup is agreed. Nothing is written locally:
// cancellation in the hosted sheet costs nothing and the call is
// retryable.
func (s *service) CreateIntent(ctx context.Context, txID string, actor models.Actor) (*Intent, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	if tx.RoleOf(actor.ID) != models.RoleBuyer {
		return nil, domain.ErrActionNotAllowed
	}
	if tx.PaymentStatus == models.PaymentStatusCompleted {
		return nil, domain.ErrAlreadyPaid
	}
	if models.PhaseOf(tx) != models.PhaseMeetupAgreed {
		return nil, domain.ErrIllegalPhaseTransition
	}

	amountMinor := *tx.MeetupPrice * 100
	intent, err := s.provider.CreateIntent(ctx, amountMinor, Currency, tx.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return intent, nil
}

// RecordSettlement persists a confirmed payment and issues the handover
// token. The provider has already taken the money by the time this runs,
// so the write is retried rather than reported as a failed payment.
func (s *service) RecordSettlement(ctx context.Context, txID string, actor models.Actor, intentID string) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	if tx.RoleOf(actor.ID) != models.RoleBuyer {
		return nil, domain.ErrActionNotAllowed
	}
	if tx.PaymentStatus == models.PaymentStatusCompleted {
		return nil, domain.ErrAlreadyPaid
	}
	if models.PhaseOf(tx) != models.PhaseMeetupAgreed {
		return nil, domain.ErrIllegalPhaseTransition
	}

	if err := s.persistSettlement(ctx, tx, intentID); err != nil {
		return nil, err
	}

	if _, err := s.issuer.Issue(ctx, txID); err != nil {
		// The settlement is recorded; issuance is idempotent and the
		// seller's first token display mints it instead.
		log.Printf("token issuance failed for %s: %v", txID, err)
	}

	return s.repo.GetByID(ctx, txID)
}

func (s *service) persistSettlement(ctx context.Context, tx *models.Transaction, intentID string) error {
	var lastErr error
	for attempt := 0; attempt < settlementRetries; attempt++ {
		lastErr = s.repo.MarkPaid(ctx, tx.ID, tx.Version, intentID)
		if lastErr == nil {
			return nil
		}

		if errors.Is(lastErr, domain.ErrStaleTransaction) {
			current, err := s.repo.GetByID(ctx, tx.ID)
			if err != nil {
				return err
			}
			if current.PaymentStatus == models.PaymentStatusCompleted {
				return domain.ErrAlreadyPaid
			}
			tx = current
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(settlementBackoff):
		}
	}
	return fmt.Errorf("failed to record settlement after %d attempts: %w", settlementRetries, lastErr)
}
