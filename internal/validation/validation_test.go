package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"a@x.com",
		"user.name+tag@example.co.uk",
		"UPPER@EXAMPLE.COM",
	}
	for _, email := range valid {
		assert.NoError(t, ValidateEmail(email), email)
	}

	invalid := []string{
		"",
		"plain",
		"missing@tld",
		"@x.com",
		"a@.com",
		"a b@x.com",
		"a@x." + strings.Repeat("a", 260),
	}
	for _, email := range invalid {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password1"))
	assert.NoError(t, ValidatePassword("12345678"))

	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(strings.Repeat("a", 73)))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("A"))
	assert.Error(t, ValidateName("   "))
	assert.Error(t, ValidateName(strings.Repeat("a", 101)))
}
