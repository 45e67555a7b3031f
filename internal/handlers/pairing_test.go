package handlers

import (
	"path/filepath"
	"testing"

	"splitpay/internal/models"
	"splitpay/internal/repositories"
	"splitpay/internal/services/split"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPairingStore(t *testing.T) *repositories.PairingFileStore {
	t.Helper()
	store, err := repositories.NewPairingFileStore(filepath.Join(t.TempDir(), "user_pairings.json"))
	require.NoError(t, err)
	return store
}

func TestPairingHandler(t *testing.T) {
	h := NewPairingHandler(newPairingStore(t))
	app := fiber.New()
	app.Get("/chats/:chatID/pairings", h.List)
	app.Put("/chats/:chatID/pairings", h.Save)
	app.Get("/chats/:chatID/pairings/:position", h.Find)

	resp, _ := doJSON(t, app, "PUT", "/chats/-100/pairings", map[string]any{"position": "Top Left"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, "PUT", "/chats/-100/pairings", map[string]any{"position": "Top Left", "telegram_user_id": 111}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	resp, body = doJSON(t, app, "GET", "/chats/-100/pairings", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var all map[string]models.Pairing
	decodeEnvelope(t, body, &all)
	assert.Equal(t, int64(111), all["person_top_left"].TelegramUserID)

	resp, _ = doJSON(t, app, "GET", "/chats/-100/pairings/Top_Left", nil, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/chats/-100/pairings/right", nil, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSplitHandlerResolvesPairings(t *testing.T) {
	pairings := newPairingStore(t)
	require.NoError(t, pairings.Save("-100", repositories.PersonKey("left"), 111, ""))

	h := NewSplitHandler(split.NewService(testLogger()), newPayNowService(t, nil), pairings)
	app := fiber.New()
	app.Post("/split", h.Split)

	resp, body := doJSON(t, app, "POST", "/split", map[string]any{
		"chat_id": "-100",
		"bill": map[string]any{
			"items":    []map[string]any{{"name": "Laksa", "price": 8}},
			"subtotal": 8,
		},
		"people": []map[string]any{
			{"person_id": 1, "position": "Left", "items": []int{1}},
			{"person_id": 2, "position": "right", "items": []int{1}, "share_ratio": map[string]any{"1": 0}},
		},
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	var out splitResponse
	decodeEnvelope(t, body, &out)
	require.Len(t, out.Shares, 2)
	assert.Equal(t, int64(111), out.Shares[0].TelegramUserID)
	assert.Zero(t, out.Shares[1].TelegramUserID)
}
