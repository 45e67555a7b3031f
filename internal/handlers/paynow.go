package handlers

import (
	domain "splitpay/internal/domain/paynow"
	"splitpay/internal/services/paynow"
	"splitpay/internal/utils"
	"splitpay/internal/utils/response"
	"splitpay/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// PayloadHeader carries the encoded payload beside a PNG response.
const PayloadHeader = "X-PayNow-Payload"

type PayNowHandler struct {
	paynowService paynow.Service
}

func NewPayNowHandler(paynowService paynow.Service) *PayNowHandler {
	return &PayNowHandler{
		paynowService: paynowService,
	}
}

type recipientRequest struct {
	Type string `json:"type" validate:"omitempty,oneof=MOBILE UEN mobile uen"`
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type generateRequest struct {
	Amount      decimal.Decimal   `json:"amount"`
	Reference   string            `json:"reference" validate:"max=100"`
	PersonName  string            `json:"person_name" validate:"max=100"`
	Recipient   *recipientRequest `json:"recipient"`
	ExpiryDate  string            `json:"expiry_date" validate:"omitempty,len=8,numeric"`
	BrandColour string            `json:"brand_colour"`
}

type verifyRequest struct {
	Payload string `json:"payload" validate:"required"`
}

type payloadResponse struct {
	Payload       string `json:"payload"`
	Amount        string `json:"amount"`
	Reference     string `json:"reference"`
	RecipientName string `json:"recipient_name"`
}

func (r generateRequest) toService() (paynow.GenerateRequest, error) {
	req := paynow.GenerateRequest{
		Amount:      r.Amount,
		Reference:   r.Reference,
		PersonName:  r.PersonName,
		ExpiryDate:  r.ExpiryDate,
		BrandColour: r.BrandColour,
	}
	if r.Recipient != nil {
		rt := domain.RecipientMobile
		if r.Recipient.Type != "" {
			var err error
			if rt, err = domain.ParseRecipientType(r.Recipient.Type); err != nil {
				return req, err
			}
		}
		req.Recipient = &paynow.Recipient{Type: rt, ID: r.Recipient.ID, Name: r.Recipient.Name}
	}
	return req, nil
}

// parseGenerate binds and validates the body, writing the error response
// itself when it returns false.
func (h *PayNowHandler) parseGenerate(c *fiber.Ctx) (paynow.GenerateRequest, bool, error) {
	var body generateRequest
	if err := c.BodyParser(&body); err != nil {
		return paynow.GenerateRequest{}, false, response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(body); errs != nil {
		return paynow.GenerateRequest{}, false, response.ValidationError(c, errs)
	}
	req, err := body.toService()
	if err != nil {
		return paynow.GenerateRequest{}, false, response.BadRequest(c, err.Error())
	}
	// Stored recipients are only ever the authenticated caller's own.
	req.UserID, _ = utils.CurrentUserID(c)
	return req, true, nil
}

// GeneratePayload returns the PayNow payload string for a payment.
func (h *PayNowHandler) GeneratePayload(c *fiber.Ctx) error {
	req, ok, err := h.parseGenerate(c)
	if !ok {
		return err
	}

	res, err := h.paynowService.GeneratePayload(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Success(c, "Payload generated", payloadResponse{
		Payload:       res.Payload,
		Amount:        res.Request.FormattedAmount(),
		Reference:     res.Request.Reference,
		RecipientName: res.Request.RecipientName,
	})
}

// GenerateQR returns the QR code as a PNG.
func (h *PayNowHandler) GenerateQR(c *fiber.Ctx) error {
	req, ok, err := h.parseGenerate(c)
	if !ok {
		return err
	}

	res, err := h.paynowService.GenerateQR(c.UserContext(), req)
	if err != nil {
		return response.FromError(c, err)
	}

	c.Set(PayloadHeader, res.Payload)
	c.Type("png")
	return c.Send(res.Image)
}

// Verify checks a payload's checksum and returns its decoded fields.
func (h *PayNowHandler) Verify(c *fiber.Ctx) error {
	var body verifyRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(body); errs != nil {
		return response.ValidationError(c, errs)
	}

	p, err := h.paynowService.Decode(c.UserContext(), body.Payload)
	if err != nil {
		return response.FromError(c, err)
	}
	summary, err := p.Summary()
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Payload verified", summary)
}
