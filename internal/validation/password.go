package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPasswordPolicy wraps every password strength failure.
var ErrPasswordPolicy = errors.New("password does not meet requirements")

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrPasswordPolicy)
	}

	// Maximum length: 72 bytes (bcrypt limitation)
	// bcrypt silently truncates passwords longer than 72 bytes, which is a security risk
	if len(password) > 72 {
		return fmt.Errorf("%w: must not exceed 72 characters", ErrPasswordPolicy)
	}

	// Check for common/weak patterns
	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
		"welcome", "monkey", "dragon", "master", "sunshine",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return fmt.Errorf("%w: too common, please choose a stronger one", ErrPasswordPolicy)
		}
	}

	return nil
}
