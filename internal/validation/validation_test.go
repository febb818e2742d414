package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Required(t *testing.T) {
	errs := Errors{}
	errs.Required("title", "")
	errs.Required("content", "hello")

	assert.True(t, errs.Any())
	assert.Equal(t, []string{"The title field is required."}, errs["title"])
	assert.NotContains(t, errs, "content")
}

func TestErrors_MaxLen(t *testing.T) {
	errs := Errors{}
	errs.MaxLen("title", strings.Repeat("a", 256), 255)
	errs.MaxLen("name", "short", 255)
	// Empty values pass so MaxLen composes with Required.
	errs.MaxLen("bio", "", 10)

	assert.Equal(t, []string{"The title may not be greater than 255 characters."}, errs["title"])
	assert.NotContains(t, errs, "name")
	assert.NotContains(t, errs, "bio")
}

func TestErrors_Email(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.co", true},
		{"not-an-email", false},
		{"@example.com", false},
		{"user@", false},
		{"user@domain", false},
		{"", true}, // empty passes; Required handles presence
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			errs := Errors{}
			errs.Email("email", tt.email)
			if tt.valid {
				assert.False(t, errs.Any(), "expected %q to pass", tt.email)
			} else {
				assert.Equal(t, []string{"The email must be a valid email address."}, errs["email"])
			}
		})
	}
}

func TestErrors_In(t *testing.T) {
	errs := Errors{}
	errs.In("status", "published", "draft", "published", "archived")
	assert.False(t, errs.Any())

	errs.In("status", "live", "draft", "published", "archived")
	assert.Equal(t, []string{"The selected status is invalid."}, errs["status"])
}

func TestErrors_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		messages []string
	}{
		{
			name:     "valid",
			password: "Sup3rSecret",
			messages: nil,
		},
		{
			name:     "too short",
			password: "Ab1",
			messages: []string{"The password must be at least 8 characters."},
		},
		{
			name:     "missing uppercase",
			password: "sup3rsecret",
			messages: []string{"The password must contain at least one uppercase letter."},
		},
		{
			name:     "missing digit",
			password: "SuperSecret",
			messages: []string{"The password must contain at least one digit."},
		},
		{
			// bcrypt refuses inputs over 72 bytes, so the policy has to
			// stop them at the validation boundary.
			name:     "longer than bcrypt accepts",
			password: "Aa1" + strings.Repeat("x", 70),
			messages: []string{"The password may not be greater than 72 characters."},
		},
		{
			name:     "exactly the bcrypt ceiling",
			password: "Aa1" + strings.Repeat("x", 69),
			messages: nil,
		},
		{
			name:     "empty skipped",
			password: "",
			messages: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Errors{}
			errs.Password("password", tt.password)
			if tt.messages == nil {
				assert.False(t, errs.Any())
			} else {
				assert.Equal(t, tt.messages, errs["password"])
			}
		})
	}
}

func TestErrors_AccumulatesAcrossFields(t *testing.T) {
	errs := Errors{}
	errs.Required("title", "")
	errs.Required("content", "")
	errs.Add("status", "The selected status is invalid.")

	assert.True(t, errs.Any())
	assert.Len(t, errs, 3)
}
