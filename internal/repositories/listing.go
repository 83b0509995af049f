package repositories

import (
	"context"
	"errors"
	"fmt"

	domain "handshake/internal/errors"
	"handshake/internal/models"

	"gorm.io/gorm"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	List(ctx context.Context, limit, offset int) ([]models.Listing, error)
	Update(ctx context.Context, listing *models.Listing) error
}

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.WithContext(ctx).First(&listing, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

func (r *listingRepository) List(ctx context.Context, limit, offset int) ([]models.Listing, error) {
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Limit(limit).Offset(offset).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (r *listingRepository) Update(ctx context.Context, listing *models.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}
