package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name     string `validate:"required,min=3"`
	Email    string `validate:"required,email"`
	Category string `validate:"omitempty,oneof=Adventure Beach"`
}

func TestValidateStruct_Valid(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Name: "Bali", Email: "a@b.com"})

	assert.Nil(t, errs)
}

func TestValidateStruct_CollectsFieldErrors(t *testing.T) {
	errs := ValidateStruct(sampleRequest{Name: "ab", Email: "nope", Category: "Space"})

	assert.Len(t, errs, 3)
	assert.Equal(t, "Minimum length is 3", errs["Name"])
	assert.Equal(t, "Invalid email format", errs["Email"])
	assert.Contains(t, errs["Category"], "Must be one of")
}

func TestFormatValidationErrors(t *testing.T) {
	out := FormatValidationErrors(map[string]string{"Name": "This field is required"})

	assert.Equal(t, "Name: This field is required", out)
}
