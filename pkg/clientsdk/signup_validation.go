package clientsdk

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Field limits shared by the SDK and the service.
const (
	MaxNameLength     = 100
	MaxEmailLength    = 254
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

const requiredReason = "required"

// NormalizeEmail trims and lower-cases an email address. Emails are stored
// and looked up in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the signup fields. Returns a map of field names to error
// messages, or nil if all fields are valid.
func (s SignupRequest) Validate() map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(s.Name)
	switch {
	case name == "":
		errs["name"] = requiredReason
	case utf8.RuneCountInString(name) > MaxNameLength:
		errs["name"] = "too long (max 100)"
	}

	if reason := validateEmail(s.Email); reason != "" {
		errs["email"] = reason
	}

	pwLen := utf8.RuneCountInString(s.Password)
	switch {
	case s.Password == "":
		errs["password"] = requiredReason
	case pwLen < MinPasswordLength:
		errs["password"] = "too short (min 8)"
	case pwLen > MaxPasswordLength:
		errs["password"] = "too long (max 128)"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(raw string) string {
	email := NormalizeEmail(raw)
	switch {
	case email == "":
		return requiredReason
	case len(email) > MaxEmailLength:
		return "too long (max 254)"
	}

	addr, err := mail.ParseAddress(email)
	// ParseAddress accepts "Name <a@b>"; only a bare address is allowed.
	if err != nil || addr.Name != "" || addr.Address != email {
		return "must be a valid email address"
	}
	return ""
}
