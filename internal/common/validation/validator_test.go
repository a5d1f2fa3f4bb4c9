package validation

import (
	"testing"

	"invest-portal/internal/common/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string   `json:"name" validate:"required,max=10"`
	Email string   `json:"email" validate:"omitempty,email"`
	Color string   `json:"color" validate:"omitempty,hexcolor6"`
	Times []string `json:"times" validate:"dive,hhmm"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "ok", Color: "#a1B2c3", Times: []string{"09:00", "7:30"}}))

	err := Struct(sample{Email: "nope", Color: "red", Times: []string{"25:00"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	var ae *apperrors.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "This field is required", ae.Fields["name"])
	assert.Equal(t, "Invalid email format", ae.Fields["email"])
	assert.Contains(t, ae.Fields, "color")
	assert.Contains(t, ae.Fields, "times[0]")
}

type profile struct {
	Email   string  `json:"email" validate:"required,email"`
	Bio     string  `json:"bio" validate:"omitempty,min=3,max=5"`
	Website *string `json:"website" validate:"omitempty,http_url"`
}

func TestStructIgnoresSurroundingSpace(t *testing.T) {
	blank := ""
	padded := "  https://portal.example  "
	assert.NoError(t, Struct(profile{Email: " Admin@Portal.example ", Bio: "  abcde  ", Website: &blank}))
	assert.NoError(t, Struct(&profile{Email: "a@b.co", Website: &padded}))

	err := Struct(profile{Email: "   "})
	var ae *apperrors.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "This field is required", ae.Fields["email"])

	bad := "not a url"
	err = Struct(profile{Email: "a@b.co", Website: &bad})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Must be a valid URL", ae.Fields["website"])
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("email", "a@b.co", "required,email"))
	err := Var("email", "", "required,email")
	require.Error(t, err)

	var ae *apperrors.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "This field is required", ae.Fields["email"])

	assert.NoError(t, Var("email", " a@b.co ", "required,email"))
}

func TestIsHHMM(t *testing.T) {
	assert.True(t, IsHHMM("00:00"))
	assert.True(t, IsHHMM("23:59"))
	assert.False(t, IsHHMM("24:00"))
	assert.False(t, IsHHMM("12:6"))
}
