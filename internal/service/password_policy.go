package service

import (
	"fmt"
	"unicode"

	"github.com/qbu-next/internal/config"
)

// passwordPolicyError ポリシー違反の内訳を保持する
// errors.Is(err, ErrWeakPassword) で判定できる。
type passwordPolicyError struct {
	reason string
}

func (e passwordPolicyError) Error() string {
	return fmt.Sprintf("password policy violation: %s", e.reason)
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber &&
		!policy.RequireSpecial {
		return nil
	}

	if policy.MinLength > 0 && len([]rune(password)) < policy.MinLength {
		return passwordPolicyError{reason: fmt.Sprintf("min_length %d", policy.MinLength)}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return passwordPolicyError{reason: "require_upper"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{reason: "require_lower"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{reason: "require_number"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{reason: "require_special"}
	}

	return nil
}
