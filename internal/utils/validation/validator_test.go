package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator_Required(t *testing.T) {
	v := New()
	v.Required(Field{"vendorId", ""}, Field{"email", "  "}, Field{"businessName", "Acme"})

	assert.False(t, v.Valid())
	assert.Equal(t, []string{"vendorId", "email"}, v.Fields())
	assert.Equal(t, "vendorId: required; email: required", v.Error())
}

func TestValidator_Check(t *testing.T) {
	v := New()
	v.Check(true, "vendorId", "required")
	assert.True(t, v.Valid())

	v.Check(IsEmail("not-an-email"), "email", "invalid email address")
	assert.False(t, v.Valid())
	assert.Equal(t, "email: invalid email address", v.Error())
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("e@x.com"))
	assert.True(t, IsEmail("owner+rentals@acme.co"))
	assert.False(t, IsEmail("e@x"))
	assert.False(t, IsEmail("@x.com"))
}
