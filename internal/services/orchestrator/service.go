// Package orchestrator sequences the negotiation components. It derives
// the transaction phase from the persisted record, exposes the actions
// legal in that phase, and hands each action to the component that owns
// it. The record in the database stays the sole arbiter between the two
// concurrently acting parties.
package orchestrator

import (
	"context"
	"errors"

	domain "handshake/internal/errors"
	"handshake/internal/models"
	"handshake/internal/repositories"
	"handshake/internal/services/advisor"
	"handshake/internal/services/meetup"
	"handshake/internal/services/negotiation"
	"handshake/internal/services/otp"
	"handshake/internal/services/payment"
	"handshake/internal/utils"
)

// Service is the single entry point for all negotiation actions.
type Service interface {
	Start(ctx context.Context, listingID string, buyerID uint) (*Snapshot, error)
	Refresh(ctx context.Context, txID string, actor models.Actor) (*Snapshot, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Transaction, error)

	SendMessage(ctx context.Context, txID string, actor models.Actor, text string) (*models.Message, *advisor.PriceEvaluation, error)
	AcceptPrice(ctx context.Context, txID string, actor models.Actor, explicitPrice *int64) (*Snapshot, error)
	SuggestMeetup(ctx context.Context, txID string, actor models.Actor, req meetup.SuggestRequest) (*Snapshot, []advisor.LocationSuggestion, error)
	SetMeetupTime(ctx context.Context, txID string, actor models.Actor, meetupTime string) (*Snapshot, error)
	InitiatePayment(ctx context.Context, txID string, actor models.Actor) (*payment.Intent, error)
	ConfirmPayment(ctx context.Context, txID string, actor models.Actor, intentID string) (*Snapshot, error)
	DisplayToken(ctx context.Context, txID string, actor models.Actor) (string, error)
	ConfirmToken(ctx context.Context, txID string, actor models.Actor, scannedValue string) (*Snapshot, error)
}

type service struct {
	repo        repositories.TransactionRepository
	listings    repositories.ListingRepository
	negotiation negotiation.Service
	meetup      meetup.Service
	payment     payment.Service
	otp         otp.Service
}

// NewService creates a new orchestrator
func NewService(
	repo repositories.TransactionRepository,
	listings repositories.ListingRepository,
	negotiationSvc negotiation.Service,
	meetupSvc meetup.Service,
	paymentSvc payment.Service,
	otpSvc otp.Service,
) Service {
	if repo == nil {
		panic("transaction repository is required")
	}
	if listings == nil {
		panic("listing repository is required")
	}

	return &service{
		repo:        repo,
		listings:    listings,
		negotiation: negotiationSvc,
		meetup:      meetupSvc,
		payment:     paymentSvc,
		otp:         otpSvc,
	}
}

// Start opens (or reopens) the negotiation for a listing. Idempotent per
// (listing, buyer): navigating back to the same listing returns the
// existing transaction instead of creating a duplicate.
func (s *service) Start(ctx context.Context, listingID string, buyerID uint) (*Snapshot, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID == buyerID {
		return nil, domain.ErrActionNotAllowed
	}

	existing, err := s.repo.FindByListingAndBuyer(ctx, listingID, buyerID)
	if err == nil {
		return s.snapshot(existing, models.Actor{ID: buyerID, Role: models.RoleBuyer}), nil
	}
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, err
	}

	tx := &models.Transaction{
		ID:            utils.NewTransactionID(),
		ListingID:     listingID,
		BuyerID:       buyerID,
		SellerID:      listing.SellerID,
		PaymentStatus: models.PaymentStatusPending,
		Version:       1,
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		// A concurrent Start may have won the unique index; fall back to
		// the row that exists.
		if existing, ferr := s.repo.FindByListingAndBuyer(ctx, listingID, buyerID); ferr == nil {
			return s.snapshot(existing, models.Actor{ID: buyerID, Role: models.RoleBuyer}), nil
		}
		return nil, err
	}
	return s.snapshot(tx, models.Actor{ID: buyerID, Role: models.RoleBuyer}), nil
}

// Refresh is the poll read: fetch the current record and rebuild the
// actor's view. Pure read, safe in any phase.
func (s *service) Refresh(ctx context.Context, txID string, actor models.Actor) (*Snapshot, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.RoleOf(actor.ID) == models.RoleNone {
		return nil, domain.ErrActionNotAllowed
	}
	return s.snapshot(tx, actor), nil
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]models.Transaction, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) SendMessage(ctx context.Context, txID string, actor models.Actor, text string) (*models.Message, *advisor.PriceEvaluation, error) {
	return s.negotiation.ProposePrice(ctx, txID, actor, text)
}

func (s *service) AcceptPrice(ctx context.Context, txID string, actor models.Actor, explicitPrice *int64) (*Snapshot, error) {
	tx, err := s.negotiation.AcceptPrice(ctx, txID, actor, explicitPrice)
	if err != nil {
		return nil, err
	}
	return s.snapshot(tx, actor), nil
}

func (s *service) SuggestMeetup(ctx context.Context, txID string, actor models.Actor, req meetup.SuggestRequest) (*Snapshot, []advisor.LocationSuggestion, error) {
	result, err := s.meetup.Suggest(ctx, txID, actor, req)
	if err != nil {
		return nil, nil, err
	}
	return s.snapshot(result.Transaction, actor), result.Candidates, nil
}

func (s *service) SetMeetupTime(ctx context.Context, txID string, actor models.Actor, meetupTime string) (*Snapshot, error) {
	tx, err := s.meetup.SetTime(ctx, txID, actor, meetupTime)
	if err != nil {
		return nil, err
	}
	return s.snapshot(tx, actor), nil
}

func (s *service) InitiatePayment(ctx context.Context, txID string, actor models.Actor) (*payment.Intent, error) {
	return s.payment.CreateIntent(ctx, txID, actor)
}

func (s *service) ConfirmPayment(ctx context.Context, txID string, actor models.Actor, intentID string) (*Snapshot, error) {
	tx, err := s.payment.RecordSettlement(ctx, txID, actor, intentID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(tx, actor), nil
}

func (s *service) DisplayToken(ctx context.Context, txID string, actor models.Actor) (string, error) {
	return s.otp.Display(ctx, txID, actor)
}

func (s *service) ConfirmToken(ctx context.Context, txID string, actor models.Actor, scannedValue string) (*Snapshot, error) {
	tx, err := s.otp.Confirm(ctx, txID, actor, scannedValue)
	if err != nil {
		return nil, err
	}
	return s.snapshot(tx, actor), nil
}

// snapshot builds the actor's view. The handover token is visible to
// the seller only.
func (s *service) snapshot(tx *models.Transaction, actor models.Actor) *Snapshot {
	snap := &Snapshot{
		ID:        tx.ID,
		ListingID: tx.ListingID,
		BuyerID:   tx.BuyerID,
		SellerID:  tx.SellerID,
		Phase:     models.PhaseOf(tx),
		Messages:  tx.Messages,
		Meetup: MeetupView{
			Price:  tx.MeetupPrice,
			Agreed: tx.MeetupAgreed,
			Time:   tx.MeetupTime,
		},
		OTP: OTPView{
			Confirmed: tx.OTPConfirmed,
		},
		Actions: AllowedActions(tx, actor),
		Version: tx.Version,
	}

	if tx.MeetupName != "" || tx.MeetupMapLink != "" {
		snap.Meetup.Location = &LocationView{
			Name:    tx.MeetupName,
			MapLink: tx.MeetupMapLink,
		}
	}
	if tx.RoleOf(actor.ID) == models.RoleSeller {
		snap.OTP.Token = tx.OTPToken
	}
	return snap
}
