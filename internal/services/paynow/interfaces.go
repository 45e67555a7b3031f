package paynow

import (
	"context"
	"time"

	"splitpay/internal/models"
)

// Renderer turns a payload into image bytes.
type Renderer interface {
	Render(payload, brandColour string) ([]byte, error)
}

// RecipientLookup resolves a durable user id to stored PayNow details.
type RecipientLookup interface {
	Get(ctx context.Context, userID string) (*models.Recipient, error)
}

// ImageCache stores rendered images by key.
type ImageCache interface {
	GetImage(ctx context.Context, key string) ([]byte, bool, error)
	SetImage(ctx context.Context, key string, png []byte) error
}

// MetricsCollector receives service timings and outcomes.
type MetricsCollector interface {
	RecordOperationDuration(op string, duration time.Duration)
	RecordError(op, kind string)
	RecordCacheHit(key string)
	RecordCacheMiss(key string)
}

// Service generates and verifies PayNow payloads and QR images.
type Service interface {
	GeneratePayload(ctx context.Context, req GenerateRequest) (*Result, error)
	GenerateQR(ctx context.Context, req GenerateRequest) (*Result, error)
	Decode(ctx context.Context, payload string) (*Payload, error)
}
