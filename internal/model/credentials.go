package model

import (
	"errors"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Credentials are the login inputs checked locally before the login call.
type Credentials struct {
	Email    string
	Password string
}

// Validate returns the first local problem with the credentials.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return errors.New("Email and password are required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		return errors.New("Please enter a valid email")
	}
	return nil
}
