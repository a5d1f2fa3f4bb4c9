package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"invest-portal/internal/features/district"
	"invest-portal/internal/features/industry"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubIndustries struct {
	industry.IndustryService
	refs []industry.Ref
	err  error
}

func (s stubIndustries) Refs(ctx context.Context) ([]industry.Ref, error) { return s.refs, s.err }

type stubDistricts struct {
	district.DistrictService
	refs []district.Ref
}

func (s stubDistricts) Refs(ctx context.Context) ([]district.Ref, error) { return s.refs, nil }

func newApp(ind industry.IndustryService, dist district.DistrictService) *fiber.App {
	app := fiber.New()
	ctrl := NewLookupController(NewLookupService(ind, dist))
	NewLookupApi(ctrl).Setup(app)
	return app
}

func TestStates(t *testing.T) {
	app := newApp(stubIndustries{}, stubDistricts{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/states", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool     `json:"success"`
		Data    []string `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 36)
	assert.Contains(t, body.Data, "Karnataka")
}

func TestCommonLists(t *testing.T) {
	id := primitive.NewObjectID()
	app := newApp(
		stubIndustries{refs: []industry.Ref{{ID: id, Name: "Textiles"}}},
		stubDistricts{refs: []district.Ref{{ID: id, DistrictName: "Mysuru", State: "Karnataka"}}},
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/common/industries", nil))
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `[{"_id":"`+id.Hex()+`","name":"Textiles"}]`, string(raw))

	resp, err = app.Test(httptest.NewRequest("GET", "/api/common/districts", nil))
	require.NoError(t, err)
	raw, _ = io.ReadAll(resp.Body)
	assert.JSONEq(t, `[{"_id":"`+id.Hex()+`","districtName":"Mysuru","state":"Karnataka"}]`, string(raw))
}

func TestIndustriesError(t *testing.T) {
	app := newApp(stubIndustries{err: errors.New("down")}, stubDistricts{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/common/industries", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
