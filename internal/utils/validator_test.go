package utils

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email,omitempty" validate:"required,email"`
	Internal string `json:"-" validate:"required"`
}

func TestValidationDetailsUseJSONNames(t *testing.T) {
	err := NewValidator().Struct(signupForm{Email: "not-an-email"})

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Equal(t, map[string]string{
		"name":     "required",
		"email":    "email",
		"Internal": "required",
	}, ValidationDetails(validationErrors))
}
