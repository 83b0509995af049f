// Package otp implements handover confirmation: a one-time token issued
// on settlement, shown by the seller as a QR code and scanned back by
// the buyer to close the transaction.
package otp

import (
	"context"
	"crypto/subtle"
	"errors"

	domain "handshake/internal/errors"
	"handshake/internal/models"
	"handshake/internal/repositories"
	"handshake/internal/utils"
)

// Service issues, displays and confirms handover tokens.
type Service interface {
	Issue(ctx context.Context, txID string) (string, error)
	Display(ctx context.Context, txID string, actor models.Actor) (string, error)
	Confirm(ctx context.Context, txID string, actor models.Actor, scannedValue string) (*models.Transaction, error)
}

type service struct {
	repo repositories.TransactionRepository
}

// NewService creates a new OTP service
func NewService(repo repositories.TransactionRepository) Service {
	if repo == nil {
		panic("transaction repository is required")
	}
	return &service{repo: repo}
}

// Issue generates the transaction's handover token. Idempotent: once a
// token exists it is returned as-is, since regenerating would invalidate
// a code the seller may already be displaying.
func (s *service) Issue(ctx context.Context, txID string) (string, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return "", err
	}
	if tx.OTPToken != "" {
		return tx.OTPToken, nil
	}

	token, err := utils.GenerateOTPToken()
	if err != nil {
		return "", err
	}

	if err := s.repo.SetOTPToken(ctx, tx.ID, tx.Version, token); err != nil {
		// A concurrent writer may have issued the token first; the
		// existing one wins.
		if errors.Is(err, domain.ErrStaleTransaction) {
			if current, rerr := s.repo.GetByID(ctx, txID); rerr == nil && current.OTPToken != "" {
				return current.OTPToken, nil
			}
		}
		return "", err
	}
	return token, nil
}

// Display is the seller-side read of the token for QR rendering. A
// settled payment whose issuance failed at settlement time gets its
// token minted here, so the transaction cannot strand in Paid with
// nothing to scan.
func (s *service) Display(ctx context.Context, txID string, actor models.Actor) (string, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return "", err
	}

	if tx.RoleOf(actor.ID) != models.RoleSeller {
		return "", domain.ErrActionNotAllowed
	}
	if tx.PaymentStatus != models.PaymentStatusCompleted {
		return "", domain.ErrTokenNotIssued
	}
	if tx.OTPToken == "" {
		return s.Issue(ctx, txID)
	}
	return tx.OTPToken, nil
}

// Confirm validates the buyer's scanned value against the issued token.
// On match the transaction becomes terminal; on mismatch nothing changes.
func (s *service) Confirm(ctx context.Context, txID string, actor models.Actor, scannedValue string) (*models.Transaction, error) {
	tx, err := s.repo.GetByID(ctx, txID)
	if err != nil {
		return nil, err
	}

	if tx.RoleOf(actor.ID) != models.RoleBuyer {
		return nil, domain.ErrActionNotAllowed
	}
	if tx.OTPConfirmed {
		return nil, domain.ErrAlreadyConfirmed
	}
	if tx.OTPToken == "" || tx.PaymentStatus != models.PaymentStatusCompleted {
		return nil, domain.ErrTokenNotIssued
	}

	if subtle.ConstantTimeCompare([]byte(scannedValue), []byte(tx.OTPToken)) != 1 {
		return nil, domain.ErrInvalidToken
	}

	if err := s.repo.ConfirmOTP(ctx, tx.ID, tx.Version); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, txID)
}
