package paynow

import (
	"fmt"
	"strings"

	domain "splitpay/internal/domain/paynow"
	appErrors "splitpay/internal/errors"

	"github.com/shopspring/decimal"
)

// crcFieldLength is len("6304") plus four hex digits.
const crcFieldLength = 8

// Payload is a verified, parsed PayNow payload.
type Payload struct {
	Raw             string
	Fields          Fields
	MerchantAccount Fields
	AdditionalData  Fields
	Checksum        string
}

// Verify checks that payload ends in a CRC field whose value matches the CRC
// of everything before it.
func Verify(payload string) error {
	if len(payload) < crcFieldLength {
		return appErrors.Wrap(appErrors.ErrMalformedPayload, fmt.Errorf("payload is %d bytes", len(payload)))
	}
	head := payload[:len(payload)-4]
	if !strings.HasSuffix(head, TagCRC+crcLength) {
		return appErrors.Wrap(appErrors.ErrMalformedPayload, fmt.Errorf("payload does not end with a CRC field"))
	}
	got := payload[len(payload)-4:]
	want := Checksum([]byte(head))
	if !strings.EqualFold(got, want) {
		return appErrors.Wrap(appErrors.ErrChecksumMismatch, fmt.Errorf("got %s, computed %s", got, want))
	}
	return nil
}

// Decode verifies payload and parses its top-level and nested fields.
func Decode(payload string) (*Payload, error) {
	if err := Verify(payload); err != nil {
		return nil, err
	}

	fields, err := ParseFields(payload)
	if err != nil {
		return nil, err
	}
	if last := fields[len(fields)-1]; last.Tag != TagCRC {
		return nil, appErrors.Wrap(appErrors.ErrMalformedPayload, fmt.Errorf("last field is tag %s", last.Tag))
	}

	p := &Payload{
		Raw:      payload,
		Fields:   fields,
		Checksum: strings.ToUpper(fields[len(fields)-1].Value),
	}

	account, ok := fields.Get(TagMerchantAccount)
	if !ok {
		return nil, appErrors.Wrap(appErrors.ErrMalformedPayload, fmt.Errorf("missing merchant account (tag %s)", TagMerchantAccount))
	}
	if p.MerchantAccount, err = ParseFields(account); err != nil {
		return nil, fmt.Errorf("merchant account: %w", err)
	}
	if guid, _ := p.MerchantAccount.Get(SubTagGUID); guid != PayNowGUID {
		return nil, appErrors.Wrap(appErrors.ErrMalformedPayload, fmt.Errorf("not a PayNow payload: guid %q", guid))
	}

	if extra, ok := fields.Get(TagAdditionalData); ok {
		if p.AdditionalData, err = ParseFields(extra); err != nil {
			return nil, fmt.Errorf("additional data: %w", err)
		}
	}

	return p, nil
}

// AmountEditable reports the merchant-account editable-amount flag.
func (p *Payload) AmountEditable() bool {
	v, _ := p.MerchantAccount.Get(SubTagAmountEditable)
	return v == "1"
}

// Request reconstructs the payment request the payload was built from.
// BrandColour is presentation-only and never recovered.
func (p *Payload) Request() (domain.PaymentRequest, error) {
	proxy, _ := p.MerchantAccount.Get(SubTagProxyType)
	rt, err := domain.RecipientTypeFromProxy(proxy)
	if err != nil {
		return domain.PaymentRequest{}, appErrors.Wrap(appErrors.ErrMalformedPayload, err)
	}

	amount := decimal.Zero
	if raw, ok := p.Fields.Get(TagAmount); ok {
		if amount, err = decimal.NewFromString(raw); err != nil {
			return domain.PaymentRequest{}, appErrors.Wrap(appErrors.ErrMalformedPayload, fmt.Errorf("amount %q: %w", raw, err))
		}
	}

	id, _ := p.MerchantAccount.Get(SubTagProxyValue)
	expiry, _ := p.MerchantAccount.Get(SubTagExpiryDate)
	name, _ := p.Fields.Get(TagMerchantName)
	ref, _ := p.AdditionalData.Get(SubTagReference)

	return domain.PaymentRequest{
		RecipientType: rt,
		RecipientID:   id,
		RecipientName: name,
		Amount:        amount,
		Reference:     ref,
		ExpiryDate:    expiry,
	}, nil
}

// Summary is the human-facing view of a verified payload.
type Summary struct {
	Valid          bool                 `json:"valid" yaml:"valid"`
	Checksum       string               `json:"checksum" yaml:"checksum"`
	RecipientType  domain.RecipientType `json:"recipient_type" yaml:"recipient_type"`
	RecipientID    string               `json:"recipient_id" yaml:"recipient_id"`
	RecipientName  string               `json:"recipient_name" yaml:"recipient_name"`
	Amount         string               `json:"amount" yaml:"amount"`
	AmountEditable bool                 `json:"amount_editable" yaml:"amount_editable"`
	Reference      string               `json:"reference" yaml:"reference"`
	ExpiryDate     string               `json:"expiry_date" yaml:"expiry_date"`
}

func (p *Payload) Summary() (*Summary, error) {
	req, err := p.Request()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Valid:          true,
		Checksum:       p.Checksum,
		RecipientType:  req.RecipientType,
		RecipientID:    req.RecipientID,
		RecipientName:  req.RecipientName,
		Amount:         req.FormattedAmount(),
		AmountEditable: p.AmountEditable(),
		Reference:      req.Reference,
		ExpiryDate:     req.ExpiryDate,
	}, nil
}
