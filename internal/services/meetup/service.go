package meetup

import (
	"context"
	"errors"
	"fmt"

	domain "handshake/internal/errors"
	"handshake/internal/models"
	"handshake/internal/repositories"
	"handshake/internal/services/advisor"
)

type service struct {
	repo    repositories.TransactionRepository
	locator Locator
}

// NewService creates a new meetup service
func NewService(repo repositories.TransactionRepository, locator Locator) Service {
	if repo == nil {
		panic("transaction repository is required")
	}
	if locator == nil {
		panic("locator is required")
	}

	return &service{repo: repo, locator: locator}
}

// Suggest asks the ranking service for candidate locations between the
// two parties and records the chosen one. The external call happens
// before any write, so an unreachable service leaves the transaction
// untouched.
func (s *service) Suggest(ctx context.Context, txID string, actor models.Actor, req SuggestRequest) (*Result, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	if tx.RoleOf(actor.ID) == models.RoleNone {
		return nil, domain.ErrActionNotAllowed
	}
	if tx.MeetupPrice == nil {
		return nil, domain.ErrPriceNotAgreed
	}
	if models.PhaseOf(tx) != models.PhasePriceAgreed {
		return nil, domain.ErrIllegalPhaseTransition
	}

	candidates, err := s.locator.GenerateLocations(ctx, advisor.LocationRequest{
		Lat1: req.BuyerLat,
		Lon1: req.BuyerLon,
		Lat2: req.SellerLat,
		Lon2: req.SellerLon,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNetworkUnavailable) || errors.Is(err, domain.ErrInvalidServerResponse) {
			return nil, domain.ErrLocationServiceUnavailable
		}
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrLocationServiceUnavailable
	}

	choice := req.Choice
	if choice < 0 || choice >= len(candidates) {
		return nil, fmt.Errorf("choice %d out of range, %d candidates", choice, len(candidates))
	}
	selected := candidates[choice]

	if err := s.repo.SetMeetup(ctx, tx.ID, tx.Version, selected.Name, selected.MapLink); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	return &Result{
		Transaction: updated,
		Selected:    selected,
		Candidates:  candidates,
	}, nil
}

// SetTime records the agreed handover time. Either party may set it once
// a location is agreed.
func (s *service) SetTime(ctx context.Context, txID string, actor models.Actor, meetupTime string) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	if tx.RoleOf(actor.ID) == models.RoleNone {
		return nil, domain.ErrActionNotAllowed
	}
	if !tx.MeetupAgreed || tx.Terminal() {
		return nil, domain.ErrIllegalPhaseTransition
	}

	if err := s.repo.SetMeetupTime(ctx, tx.ID, tx.Version, meetupTime); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, txID)
}
