package commands

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"deliverypartner/internal/pkg/errs"
)

// DefaultOTPLength is the length of server-issued codes.
const DefaultOTPLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrEmailIsInvalid = errs.NewValueIsInvalidErrorWithCause(
		"email", errors.New("Please enter a valid email address"))
	ErrPasswordIsRequired = errs.NewValueIsRequiredErrorWithCause(
		"password", errors.New("Please enter your password"))
)

func validateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if !emailPattern.MatchString(email) {
		return "", ErrEmailIsInvalid
	}
	return email, nil
}

func validateDigits(param, value string, length int) error {
	if len(value) != length || strings.Trim(value, "0123456789") != "" {
		return errs.NewValueIsInvalidErrorWithCause(
			param, fmt.Errorf("Please enter the %d-digit %s", length, param))
	}
	return nil
}
