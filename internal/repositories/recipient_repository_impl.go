package repositories

import (
	"context"
	"errors"
	"fmt"

	appErrors "splitpay/internal/errors"
	"splitpay/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recipientRepository struct {
	db    *gorm.DB
	cache RecipientCache
	log   *logrus.Entry
}

// NewRecipientRepository creates a postgres-backed RecipientRepository.
// cache may be nil.
func NewRecipientRepository(db *gorm.DB, cache RecipientCache, log *logrus.Logger) RecipientRepository {
	return &recipientRepository{
		db:    db,
		cache: cache,
		log:   log.WithField("repository", "recipient"),
	}
}

func (r *recipientRepository) Get(ctx context.Context, userID string) (*models.Recipient, error) {
	if r.cache != nil {
		if cached, found, err := r.cache.GetRecipient(ctx, userID); err != nil {
			r.log.WithError(err).Warn("recipient cache read failed")
		} else if found {
			return cached, nil
		}
	}

	var recipient models.Recipient
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&recipient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to load recipient: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.CacheRecipient(ctx, &recipient); err != nil {
			r.log.WithError(err).Warn("failed to cache recipient")
		}
	}
	return &recipient, nil
}

func (r *recipientRepository) Save(ctx context.Context, recipient *models.Recipient) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"phone", "name", "updated_at"}),
	}).Create(recipient).Error
	if err != nil {
		return fmt.Errorf("failed to save recipient: %w", err)
	}
	r.invalidate(ctx, recipient.UserID)
	return nil
}

func (r *recipientRepository) Delete(ctx context.Context, userID string) error {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Recipient{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete recipient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return appErrors.ErrRecipientNotFound
	}
	r.invalidate(ctx, userID)
	return nil
}

func (r *recipientRepository) List(ctx context.Context) ([]*models.Recipient, error) {
	var recipients []*models.Recipient
	if err := r.db.WithContext(ctx).Order("user_id").Find(&recipients).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipients: %w", err)
	}
	return recipients, nil
}

func (r *recipientRepository) invalidate(ctx context.Context, userID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateRecipient(ctx, userID); err != nil {
		r.log.WithError(err).WithField("user_id", userID).Warn("failed to invalidate recipient cache")
	}
}
