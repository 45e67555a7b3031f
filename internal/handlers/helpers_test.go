package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"splitpay/internal/repositories"
	"splitpay/internal/services/paynow"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newPayNowService(t *testing.T, recipients paynow.RecipientLookup) paynow.Service {
	t.Helper()
	renderer, err := paynow.NewQRRenderer(paynow.RenderOptions{})
	require.NoError(t, err)
	cfg := paynow.Config{RecipientPhone: "+65 9123 4567", RecipientName: "John Doe"}
	return paynow.NewService(cfg, renderer, recipients, nil, nil, testLogger())
}

func newRecipientStore(t *testing.T) *repositories.RecipientFileStore {
	t.Helper()
	store, err := repositories.NewRecipientFileStore(filepath.Join(t.TempDir(), "paynow_info.json"))
	require.NoError(t, err)
	return store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, header map[string]string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}
