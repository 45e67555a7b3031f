package handlers

import (
	"strings"

	domain "splitpay/internal/domain/paynow"
	"splitpay/internal/models"
	"splitpay/internal/repositories"
	"splitpay/internal/utils"
	"splitpay/internal/utils/response"
	"splitpay/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

type RecipientHandler struct {
	recipients repositories.RecipientRepository
}

func NewRecipientHandler(recipients repositories.RecipientRepository) *RecipientHandler {
	return &RecipientHandler{
		recipients: recipients,
	}
}

type saveRecipientRequest struct {
	Phone string `json:"phone" validate:"required"`
	Name  string `json:"name" validate:"required"`
}

// GetMine returns the caller's stored PayNow details.
func (h *RecipientHandler) GetMine(c *fiber.Ctx) error {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	r, err := h.recipients.Get(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Recipient retrieved", r)
}

// SaveMine creates or replaces the caller's PayNow details.
func (h *RecipientHandler) SaveMine(c *fiber.Ctx) error {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var body saveRecipientRequest
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if errs := validation.Struct(body); errs != nil {
		return response.ValidationError(c, errs)
	}

	v := validation.New()
	v.Phone("phone", domain.NormalizeMobile(body.Phone))
	v.MaxBytes("name", strings.TrimSpace(body.Name), domain.MaxNameLength)
	if !v.Valid() {
		return response.ValidationError(c, v.Errors)
	}

	r := &models.Recipient{
		UserID: userID,
		Phone:  strings.TrimSpace(body.Phone),
		Name:   strings.TrimSpace(body.Name),
	}
	if err := h.recipients.Save(c.UserContext(), r); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Recipient saved", r)
}

// DeleteMine removes the caller's PayNow details.
func (h *RecipientHandler) DeleteMine(c *fiber.Ctx) error {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	if err := h.recipients.Delete(c.UserContext(), userID); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type recipientListItem struct {
	UserID string `json:"user_id"`
	Phone  string `json:"phone"`
	Name   string `json:"name"`
}

// List pages through every stored recipient. Admin only.
func (h *RecipientHandler) List(c *fiber.Ctx) error {
	all, err := h.recipients.List(c.UserContext())
	if err != nil {
		return response.FromError(c, err)
	}

	page := utils.PageFromQuery(c)
	start, end := page.Bounds(len(all))

	items := make([]recipientListItem, 0, end-start)
	for _, r := range all[start:end] {
		items = append(items, recipientListItem{UserID: r.UserID, Phone: r.Phone, Name: r.Name})
	}
	return c.JSON(utils.Paged[recipientListItem]{Data: items, Page: page})
}
