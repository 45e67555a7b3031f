package paynow

import (
	domain "splitpay/internal/domain/paynow"

	"github.com/shopspring/decimal"
)

// Config is the explicit service configuration. Nothing in this package reads
// the environment.
type Config struct {
	RecipientPhone string
	RecipientName  string
	BrandColour    string
	AmountEditable bool
	// ExpiryDate overrides domain.DefaultExpiryDate for every generated code.
	ExpiryDate string
}

// Recipient identifies who gets paid.
type Recipient struct {
	Type domain.RecipientType
	ID   string
	Name string
	// Display is the id as entered, e.g. "+65 9123 4567". Defaults to ID.
	Display string
}

// GenerateRequest is a caller's ask for one diner's payment code.
type GenerateRequest struct {
	Amount     decimal.Decimal
	Reference  string
	PersonName string
	// UserID selects a stored recipient. Ignored when Recipient is set.
	UserID      string
	Recipient   *Recipient
	ExpiryDate  string
	BrandColour string
}

// Result carries the payload and, for GenerateQR, the PNG image.
type Result struct {
	Payload string
	Image   []byte
	Request domain.PaymentRequest
	// PayTo is the recipient id as the owner entered it, for messages.
	PayTo string
}
