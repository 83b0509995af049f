package validation

import (
	"regexp"
	"strings"
)

const (
	MaxMessageLength     = 2000
	MaxDescriptionLength = 2000
	MinPasswordLength    = 8
	MaxPrice             = 1_000_000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validator collects field validation errors
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = message
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not blank
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Email validates email format
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Password validates password length
func (v *Validator) Password(field, password string) {
	v.Check(len(password) >= MinPasswordLength, field, "must be at least 8 characters")
}

// Message validates a chat message body
func (v *Validator) Message(field, text string) {
	v.Required(field, text)
	v.Check(len(text) <= MaxMessageLength, field, "must be at most 2000 characters")
}

// Price validates an agreed or listed price
func (v *Validator) Price(field string, price int64) {
	v.Check(price > 0, field, "must be positive")
	v.Check(price <= MaxPrice, field, "exceeds maximum")
}

// Coordinate validates a latitude/longitude pair
func (v *Validator) Coordinate(field string, lat, lon float64) {
	v.Check(lat >= -90 && lat <= 90, field, "latitude out of range")
	v.Check(lon >= -180 && lon <= 180, field, "longitude out of range")
}
