package handlers

import (
	"splitpay/internal/models"
	"splitpay/internal/repositories"
	"splitpay/internal/utils/response"
	"splitpay/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

// PairingStore remembers which chat user sits at which diner position.
type PairingStore interface {
	Load(chatID string) map[string]models.Pairing
	Save(chatID, personKey string, userID int64, headshot string) error
	Find(chatID, position string) (*models.Pairing, error)
}

type PairingHandler struct {
	pairings PairingStore
}

func NewPairingHandler(pairings PairingStore) *PairingHandler {
	return &PairingHandler{pairings: pairings}
}

type savePairingRequest struct {
	Position       string `json:"position" validate:"required"`
	TelegramUserID int64  `json:"telegram_user_id" validate:"required,gt=0"`
	Headshot       string `json:"headshot"`
}

// List returns every pairing saved for a chat.
func (h *PairingHandler) List(c *fiber.Ctx) error {
	return response.Success(c, "Pairings retrieved", h.pairings.Load(c.Params("chatID")))
}

// Save pairs a diner position with a chat user.
func (h *PairingHandler) Save(c *fiber.Ctx) error {
	var body savePairingRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(body); errs != nil {
		return response.ValidationError(c, errs)
	}

	key := repositories.PersonKey(body.Position)
	if err := h.pairings.Save(c.Params("chatID"), key, body.TelegramUserID, body.Headshot); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Pairing saved", fiber.Map{
		"person_key": key,
		"pairing":    models.Pairing{TelegramUserID: body.TelegramUserID, Headshot: body.Headshot},
	})
}

// Find returns the pairing for one position.
func (h *PairingHandler) Find(c *fiber.Ctx) error {
	p, err := h.pairings.Find(c.Params("chatID"), c.Params("position"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Pairing retrieved", p)
}
