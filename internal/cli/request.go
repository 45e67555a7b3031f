package cli

import (
	"fmt"

	"splitpay/internal/app"
	"splitpay/internal/config"
	domain "splitpay/internal/domain/paynow"
	"splitpay/internal/services/paynow"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// requestFlags are the payment flags shared by encode and render.
type requestFlags struct {
	recipientType string
	id            string
	name          string
	amount        string
	reference     string
	person        string
	expiry        string
	colour        string
	editable      bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.amount, "amount", "a", "", "Amount in SGD, e.g. 12.50")
	fl.StringVarP(&f.reference, "reference", "r", "", "Payment reference")
	fl.StringVar(&f.person, "person", "", "Diner name appended to the reference")
	fl.StringVar(&f.recipientType, "type", "mobile", "Recipient type: mobile or uen")
	fl.StringVar(&f.id, "id", "", "Recipient mobile number or UEN (default: configured recipient)")
	fl.StringVar(&f.name, "name", "", "Recipient name shown to the payer (default: configured name)")
	fl.StringVar(&f.expiry, "expiry", "", "Expiry date as YYYYMMDD")
	fl.StringVar(&f.colour, "colour", "", "QR foreground colour name or #RRGGBB")
	fl.BoolVar(&f.editable, "editable", false, "Let the payer change the amount")
	_ = cmd.MarkFlagRequired("amount")
}

// request builds the payment. --name defaults to the configured recipient
// name when --id is given without it.
func (f *requestFlags) request(cfg *config.Config) (paynow.GenerateRequest, error) {
	amount, err := decimal.NewFromString(f.amount)
	if err != nil {
		return paynow.GenerateRequest{}, fmt.Errorf("invalid amount %q: %w", f.amount, err)
	}

	req := paynow.GenerateRequest{
		Amount:      amount,
		Reference:   f.reference,
		PersonName:  f.person,
		ExpiryDate:  f.expiry,
		BrandColour: f.colour,
	}
	if f.id != "" {
		rt, err := domain.ParseRecipientType(f.recipientType)
		if err != nil {
			return paynow.GenerateRequest{}, err
		}
		name := f.name
		if name == "" {
			name = cfg.PayNow.RecipientName
		}
		req.Recipient = &paynow.Recipient{Type: rt, ID: f.id, Name: name}
	}
	return req, nil
}

// newPayNowService builds a service with no stored recipients; payments go
// to --id or the configured default.
func (f *requestFlags) newPayNowService(cmd *cobra.Command, cfg *config.Config, log *logrus.Logger) (paynow.Service, error) {
	if cmd.Flags().Changed("editable") {
		cfg.PayNow.AmountEditable = f.editable
	}
	renderer, err := app.NewRenderer(cfg.PayNow)
	if err != nil {
		return nil, err
	}
	return paynow.NewService(app.ServiceConfig(cfg.PayNow), renderer, nil, nil, nil, log), nil
}
