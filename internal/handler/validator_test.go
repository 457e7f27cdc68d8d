package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStruct_Visibility(t *testing.T) {
	type request struct {
		Visibility string `validate:"visibility"`
	}

	v := GetValidator()

	assert.NoError(t, v.ValidateStruct(request{Visibility: "public"}))
	assert.NoError(t, v.ValidateStruct(request{Visibility: "private"}))
	assert.NoError(t, v.ValidateStruct(request{Visibility: "PUBLIC"}))
	assert.NoError(t, v.ValidateStruct(request{Visibility: ""}), "empty defaults later, not an error")
	assert.Error(t, v.ValidateStruct(request{Visibility: "secret"}))
}

func TestFormatValidationError(t *testing.T) {
	type request struct {
		CampaignID string `validate:"required"`
		Visibility string `validate:"visibility"`
	}

	err := GetValidator().ValidateStruct(request{Visibility: "secret"})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "This field is required", fields["campaignid"])
	assert.Equal(t, "Invalid visibility", fields["visibility"])
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])
}

func TestFormatValidationError_Nil(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
}
