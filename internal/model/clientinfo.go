package model

import (
	"errors"
	"regexp"
	"strings"
)

// ClientInfo identifies the person booking a slot.
type ClientInfo struct {
	Name  string
	Email string
	Phone string
	Notes string
}

var (
	ErrNameRequired  = errors.New("name is required")
	ErrEmailRequired = errors.New("email is required")
	ErrEmailInvalid  = errors.New("email address is not valid")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the booking form rules: name and email are required,
// email must look like local@domain.tld, phone and notes are free-form.
func (c ClientInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}
