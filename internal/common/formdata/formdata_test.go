package formdata

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"invest-portal/internal/common/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leader struct {
	Name string `json:"name"`
}

type input struct {
	Name    string   `json:"name" form:"name"`
	Enabled Bool     `json:"enabled" form:"enabled"`
	Start   Date     `json:"start" form:"start"`
	Leaders []leader `json:"leadership" form:"-"`
}

func buildMultipart(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for field, name := range files {
		fw, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("data"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func TestMultipartParsing(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in input
		if err := ParseBody(c, &in); err != nil {
			return apperrors.Respond(c, err)
		}
		if _, err := JSONField(c, "leadership", &in.Leaders); err != nil {
			return apperrors.Respond(c, err)
		}
		uploads, err := Files(c)
		if err != nil {
			return apperrors.Respond(c, err)
		}
		return c.JSON(fiber.Map{
			"name":    in.Name,
			"enabled": bool(in.Enabled),
			"year":    in.Start.Year(),
			"leaders": len(in.Leaders),
			"files":   uploads.Count(),
			"cleared": Cleared(c, "banner"),
		})
	})

	body, ct := buildMultipart(t, map[string]string{
		"name":       "Auto",
		"enabled":    "on",
		"start":      "2025-01-31",
		"leadership": `[{"name":"A"},{"name":"B"}]`,
		"banner":     "",
	}, map[string]string{"logo": "logo.png"})

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set(fiber.HeaderContentType, ct)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.JSONEq(t, `{"name":"Auto","enabled":true,"year":2025,"leaders":2,"files":1,"cleared":true}`, buf.String())

	body, ct = buildMultipart(t, map[string]string{"leadership": `[{"name":`}, nil)
	req = httptest.NewRequest("POST", "/", body)
	req.Header.Set(fiber.HeaderContentType, ct)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestJSONBodyParsing(t *testing.T) {
	app := fiber.New()
	app.Put("/", func(c *fiber.Ctx) error {
		var in input
		if err := ParseBody(c, &in); err != nil {
			return apperrors.Respond(c, err)
		}
		return c.JSON(fiber.Map{"enabled": bool(in.Enabled), "leaders": len(in.Leaders)})
	})

	req := httptest.NewRequest("PUT", "/", strings.NewReader(`{"enabled":"1","leadership":[{"name":"A"}]}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.JSONEq(t, `{"enabled":true,"leaders":1}`, buf.String())
}

func TestSplitList(t *testing.T) {
	out, ok, err := SplitList("tags", `["a", " b "]`)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, out)

	out, _, err = SplitList("tags", "x, y,,z")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, out)

	_, _, err = SplitList("tags", "[broken")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestParseTime(t *testing.T) {
	tests := map[string]time.Time{
		"2025-03-01":                time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		"2025-03-01T10:30":          time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC),
		"2025-03-01T10:30:00+05:30": time.Date(2025, 3, 1, 5, 0, 0, 0, time.UTC),
	}
	for in, want := range tests {
		got, err := ParseTime(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	_, err := ParseTime("01/03/2025")
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "ON", "1", "yes"} {
		v, err := ParseBool(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	_, err := ParseBool("maybe")
	assert.Error(t, err)
}
