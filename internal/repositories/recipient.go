package repositories

import (
	"context"

	"splitpay/internal/models"
)

// RecipientRepository stores each user's PayNow recipient details, keyed by
// their durable user id. Get returns errors.ErrRecipientNotFound for unknown
// users.
type RecipientRepository interface {
	Get(ctx context.Context, userID string) (*models.Recipient, error)

	// Save creates or replaces the recipient for r.UserID.
	Save(ctx context.Context, r *models.Recipient) error

	Delete(ctx context.Context, userID string) error

	// List returns every stored recipient ordered by user id.
	List(ctx context.Context) ([]*models.Recipient, error)
}

// RecipientCache is the read-through cache used by the database repository.
type RecipientCache interface {
	CacheRecipient(ctx context.Context, r *models.Recipient) error
	GetRecipient(ctx context.Context, userID string) (*models.Recipient, bool, error)
	InvalidateRecipient(ctx context.Context, userID string) error
}
