package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func newApp(db Pinger) *fiber.App {
	app := fiber.New()
	NewHealthApi(NewHealthController(db)).Setup(app)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) map[string]string {
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthConnected(t *testing.T) {
	body := getJSON(t, newApp(fakePinger{}), "/api/health")
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Connected", body["database"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthDisconnected(t *testing.T) {
	body := getJSON(t, newApp(fakePinger{err: errors.New("no server")}), "/api/health")
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "Disconnected", body["database"])
}

func TestRootBanner(t *testing.T) {
	body := getJSON(t, newApp(fakePinger{}), "/")
	assert.Contains(t, body["message"], "running")
}
