package user

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/banana-math/BananaMathServer/internal/apperrors"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSymbols = "!@#$%^&*()-_=+{};:,<.>"

func ValidateRegistration(req *RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("All fields are required")
	}

	if !usernamePattern.MatchString(req.Username) {
		return apperrors.NewValidationError("Username must be 3-20 characters long and contain only letters, numbers, and underscores")
	}

	if !emailPattern.MatchString(req.Email) {
		return apperrors.NewValidationError("Please enter a valid email address")
	}

	return validatePassword(req.Password)
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return apperrors.NewValidationError("Password must be at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		return apperrors.NewValidationError("Password must contain at least one uppercase letter")
	}
	if !hasLower {
		return apperrors.NewValidationError("Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return apperrors.NewValidationError("Password must contain at least one number")
	}
	if !hasSymbol {
		return apperrors.NewValidationError("Password must contain at least one special character (!@#$%^&* etc.)")
	}

	return nil
}
