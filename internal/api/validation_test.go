package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

func TestBindingError_FieldMessages(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
	}

	err := validator.New().Struct(payload{Email: "not-an-email", Password: "short"})
	assert.Error(t, err)

	msg := BindingError(err)
	assert.Contains(t, msg, "email must be a valid email address")
	assert.Contains(t, msg, "password must be at least 8 characters")
}

func TestBindingError_PassthroughForOtherErrors(t *testing.T) {
	err := assert.AnError
	assert.Equal(t, err.Error(), BindingError(err))
}
