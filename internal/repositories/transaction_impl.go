package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	domain "handshake/internal/errors"
	"handshake/internal/models"
	"handshake/internal/repositories/cache"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewTransactionRepository creates a transaction repository backed by
// Postgres with a Redis snapshot cache.
func NewTransactionRepository(db *gorm.DB, cacheSvc *cache.CacheService) TransactionRepository {
	return &transactionRepository{db: db, cache: cacheSvc}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	if r.cache != nil {
		if cached, err := r.cache.GetTransaction(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id ASC")
		}).
		First(&tx, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.CacheTransaction(ctx, &tx); err != nil {
			log.Printf("failed to cache transaction %s: %v", id, err)
		}
	}
	return &tx, nil
}

func (r *transactionRepository) FindByListingAndBuyer(ctx context.Context, listingID string, buyerID uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("messages.id ASC")
		}).
		First(&tx, "listing_id = ? AND buyer_id = ?", listingID, buyerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) ListForUser(ctx context.Context, userID uint) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := r.db.WithContext(ctx).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) AppendMessage(ctx context.Context, txID string, msg *models.Message) error {
	msg.TransactionID = txID
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	r.invalidate(ctx, txID)
	return nil
}

func (r *transactionRepository) SetPrice(ctx context.Context, txID string, version uint, price int64) error {
	return r.update(ctx, txID, version, map[string]interface{}{
		"meetup_price": price,
	})
}

func (r *transactionRepository) SetMeetup(ctx context.Context, txID string, version uint, name, mapLink string) error {
	return r.update(ctx, txID, version, map[string]interface{}{
		"meetup_name":     name,
		"meetup_map_link": mapLink,
		"meetup_agreed":   true,
	})
}

func (r *transactionRepository) SetMeetupTime(ctx context.Context, txID string, version uint, meetupTime string) error {
	return r.update(ctx, txID, version, map[string]interface{}{
		"meetup_time": meetupTime,
	})
}

func (r *transactionRepository) MarkPaid(ctx context.Context, txID string, version uint, intentID string) error {
	return r.update(ctx, txID, version, map[string]interface{}{
		"payment_status":    models.PaymentStatusCompleted,
		"payment_intent_id": intentID,
	})
}

func (r *transactionRepository) SetOTPToken(ctx context.Context, txID string, version uint, token string) error {
	return r.update(ctx, txID, version, map[string]interface{}{
		"otp_token": token,
	})
}

func (r *transactionRepository) ConfirmOTP(ctx context.Context, txID string, version uint) error {
	return r.update(ctx, txID, version, map[string]interface{}{
		"otp_confirmed": true,
	})
}

// update applies a compare-and-set write: the row is touched only when
// the version still matches what the caller read, and the version is
// bumped in the same statement.
func (r *transactionRepository) update(ctx context.Context, txID string, version uint, fields map[string]interface{}) error {
	fields["version"] = version + 1

	result := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("id = ? AND version = ?", txID, version).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrStaleTransaction
	}

	r.invalidate(ctx, txID)
	return nil
}

func (r *transactionRepository) invalidate(ctx context.Context, txID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateTransaction(ctx, txID); err != nil {
		log.Printf("failed to invalidate transaction cache %s: %v", txID, err)
	}
}
