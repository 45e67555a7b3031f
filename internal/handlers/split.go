package handlers

import (
	"fmt"

	"splitpay/internal/services/paynow"
	"splitpay/internal/services/split"
	"splitpay/internal/utils"
	"splitpay/internal/utils/response"
	"splitpay/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

type SplitHandler struct {
	splitService  split.Service
	paynowService paynow.Service
	pairings      PairingStore
}

// NewSplitHandler wires the split endpoint. pairings may be nil, in which
// case chat ids in requests are ignored.
func NewSplitHandler(splitService split.Service, paynowService paynow.Service, pairings PairingStore) *SplitHandler {
	return &SplitHandler{
		splitService:  splitService,
		paynowService: paynowService,
		pairings:      pairings,
	}
}

type splitRequest struct {
	Bill             split.Bill         `json:"bill"`
	People           []split.Assignment `json:"people" validate:"required,min=1"`
	GeneratePayloads bool               `json:"generate_payloads"`
	// ChatID resolves each diner's position to a saved chat user.
	ChatID string `json:"chat_id"`
}

type shareResponse struct {
	split.Share
	Payload        string `json:"payload,omitempty"`
	Message        string `json:"message,omitempty"`
	TelegramUserID int64  `json:"telegram_user_id,omitempty"`
}

type splitResponse struct {
	ID         string             `json:"id"`
	Restaurant string             `json:"restaurant"`
	Charges    []split.ItemCharge `json:"charges"`
	Shares     []shareResponse    `json:"shares"`
}

// Split apportions a bill between diners and, on request, builds a PayNow
// payload and payment message for each of them.
func (h *SplitHandler) Split(c *fiber.Ctx) error {
	var body splitRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(body); errs != nil {
		return response.ValidationError(c, errs)
	}

	ctx := c.UserContext()
	// An authenticated caller collects with their stored recipient.
	collector, _ := utils.CurrentUserID(c)
	res, err := h.splitService.Split(ctx, body.Bill, body.People)
	if err != nil {
		return response.FromError(c, err)
	}

	out := splitResponse{
		ID:         res.ID,
		Restaurant: res.Restaurant,
		Charges:    res.Charges,
		Shares:     make([]shareResponse, len(res.Shares)),
	}
	for i, share := range res.Shares {
		out.Shares[i] = shareResponse{Share: share}
		if h.pairings != nil && body.ChatID != "" && share.Position != "" {
			if p, err := h.pairings.Find(body.ChatID, share.Position); err == nil {
				out.Shares[i].TelegramUserID = p.TelegramUserID
			}
		}
		if !body.GeneratePayloads {
			continue
		}

		pay, err := h.paynowService.GeneratePayload(ctx, paynow.GenerateRequest{
			Amount:     share.Total,
			Reference:  share.Reference,
			PersonName: fmt.Sprintf("Person %d", share.PersonID),
			UserID:     collector,
		})
		if err != nil {
			return response.FromError(c, err)
		}
		out.Shares[i].Payload = pay.Payload
		out.Shares[i].Message = split.FormatPaymentMessage(share,
			pay.PayTo, pay.Request.RecipientName, res.Restaurant)
	}

	return response.Success(c, "Bill split", out)
}
