package paynow

import (
	domain "splitpay/internal/domain/paynow"
	appErrors "splitpay/internal/errors"
)

// EncoderOptions selects between the two editable-amount behaviours seen in
// deployed PayNow generators.
type EncoderOptions struct {
	// AmountEditable sets merchant-account sub-tag 03 to "1", letting the payer
	// change the amount in their banking app. The default "0" fixes it.
	AmountEditable bool
}

// Encoder builds PayNow payload strings. It holds no mutable state and is
// safe for concurrent use.
type Encoder struct {
	opts EncoderOptions
}

func NewEncoder(opts EncoderOptions) *Encoder {
	return &Encoder{opts: opts}
}

// Encode normalises and validates req, then returns the sealed payload.
func (e *Encoder) Encode(req domain.PaymentRequest) (string, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return "", appErrors.Wrap(appErrors.ErrValidation, err)
	}
	return assemble(e.fields(req)), nil
}

func (e *Encoder) fields(req domain.PaymentRequest) Fields {
	return Fields{
		{TagPayloadFormat, PayloadFormatIndicator},
		{TagInitiationMethod, StaticInitiation},
		{TagMerchantAccount, e.merchantAccount(req).Encode()},
		{TagMerchantCategory, MerchantCategoryCode},
		{TagCurrency, CurrencySGD},
		{TagAmount, req.FormattedAmount()},
		{TagCountry, CountrySG},
		{TagMerchantName, req.RecipientName},
		{TagMerchantCity, MerchantCity},
		{TagAdditionalData, additionalData(req).Encode()},
	}
}

func (e *Encoder) merchantAccount(req domain.PaymentRequest) Fields {
	return Fields{
		{SubTagGUID, PayNowGUID},
		{SubTagProxyType, req.RecipientType.ProxyType()},
		{SubTagProxyValue, req.RecipientID},
		{SubTagAmountEditable, editableFlag(e.opts.AmountEditable)},
		{SubTagExpiryDate, req.ExpiryDate},
	}
}

func additionalData(req domain.PaymentRequest) Fields {
	return Fields{
		{SubTagReference, req.Reference},
	}
}

func editableFlag(editable bool) string {
	if editable {
		return "1"
	}
	return "0"
}
