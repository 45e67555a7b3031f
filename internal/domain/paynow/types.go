package paynow

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"splitpay/internal/utils/validation"

	"github.com/shopspring/decimal"
)

type RecipientType string

const (
	RecipientMobile RecipientType = "MOBILE"
	RecipientUEN    RecipientType = "UEN"
)

const (
	// DefaultExpiryDate is a far-future sentinel; PayNow QRs built from it
	// effectively never expire.
	DefaultExpiryDate  = "20991230"
	DefaultBrandColour = "purple"

	ExpiryDateLayout = "20060102"

	MaxNameLength        = 25
	MaxReferenceLength   = 25
	MaxRecipientIDLength = 30
	MaxAmountLength      = 13
)

func (t RecipientType) String() string {
	return string(t)
}

// ProxyType is the PayNow proxy-type sub-field value for t.
func (t RecipientType) ProxyType() string {
	if t == RecipientUEN {
		return "2"
	}
	return "0"
}

// ParseRecipientType accepts MOBILE or UEN in any case.
func ParseRecipientType(s string) (RecipientType, error) {
	switch RecipientType(strings.ToUpper(strings.TrimSpace(s))) {
	case RecipientMobile:
		return RecipientMobile, nil
	case RecipientUEN:
		return RecipientUEN, nil
	default:
		return "", fmt.Errorf("invalid recipient type: %q", s)
	}
}

// RecipientTypeFromProxy maps a PayNow proxy-type value back to a RecipientType.
func RecipientTypeFromProxy(proxy string) (RecipientType, error) {
	switch proxy {
	case "0":
		return RecipientMobile, nil
	case "2":
		return RecipientUEN, nil
	default:
		return "", fmt.Errorf("unknown proxy type: %q", proxy)
	}
}

// PaymentRequest is everything needed to build one PayNow payload.
type PaymentRequest struct {
	RecipientType RecipientType
	RecipientID   string
	RecipientName string
	Amount        decimal.Decimal
	Reference     string
	ExpiryDate    string
	BrandColour   string
}

// Normalize applies the defaulting and truncation rules: name and reference
// are cut to 25 bytes on a rune boundary, expiry and colour get defaults.
func (r PaymentRequest) Normalize() PaymentRequest {
	r.RecipientID = strings.TrimSpace(r.RecipientID)
	r.RecipientName = TruncateBytes(r.RecipientName, MaxNameLength)
	r.Reference = TruncateBytes(r.Reference, MaxReferenceLength)
	if r.ExpiryDate == "" {
		r.ExpiryDate = DefaultExpiryDate
	}
	if r.BrandColour == "" {
		r.BrandColour = DefaultBrandColour
	}
	return r
}

// FormattedAmount renders the amount with exactly two fractional digits.
func (r PaymentRequest) FormattedAmount() string {
	return r.Amount.StringFixed(2)
}

// Validate checks r as it will be embedded. Call Normalize first; oversized
// names or references are rejected here, not truncated.
func (r PaymentRequest) Validate() error {
	v := validation.New()

	switch r.RecipientType {
	case RecipientMobile, RecipientUEN:
	default:
		v.AddError("recipient_type", "must be MOBILE or UEN")
	}

	if v.Required("recipient_id", r.RecipientID) {
		v.MaxBytes("recipient_id", r.RecipientID, MaxRecipientIDLength)
		if r.RecipientType == RecipientMobile {
			v.Digits("recipient_id", r.RecipientID)
		} else if r.RecipientType == RecipientUEN {
			v.Alphanumeric("recipient_id", r.RecipientID)
		}
	}

	if v.Required("recipient_name", r.RecipientName) {
		v.MaxBytes("recipient_name", r.RecipientName, MaxNameLength)
	}

	v.Check(!r.Amount.IsNegative(), "amount", "must not be negative")
	v.MaxBytes("amount", r.FormattedAmount(), MaxAmountLength)

	v.MaxBytes("reference", r.Reference, MaxReferenceLength)
	v.Date("expiry_date", r.ExpiryDate, ExpiryDateLayout)

	return v.Err()
}

// TruncateBytes cuts s to at most n bytes without splitting a UTF-8 rune.
func TruncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// NormalizeMobile strips the formatting people type around phone numbers
// ("+65 9123-4567") down to bare digits.
func NormalizeMobile(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '+', ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, phone)
}
