package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email     string `validate:"required,email"`
	Phone     string `validate:"phone10"`
	FirstName string `validate:"required"`
}

func TestValidate(t *testing.T) {
	errs := Validate(sample{Email: "nope", Phone: "123", FirstName: ""})

	assert.Equal(t, "email", errs["email"])
	assert.Equal(t, "phone10", errs["phone"])
	assert.Equal(t, "required", errs["first_name"])

	assert.Nil(t, Validate(sample{Email: "a@b.co", Phone: "9876543210", FirstName: "Ana"}))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("0123456789"))
	assert.False(t, IsPhone("012345678"))
	assert.False(t, IsPhone("01234abcde"))
}
