package service

import (
	"fmt"
	"unicode"

	"github.com/newsdesk/internal/config"
)

type passwordPolicyError struct {
	message string
}

func (e passwordPolicyError) Error() string {
	return e.message
}

func (e passwordPolicyError) Is(target error) bool {
	return target == ErrWeakPassword
}

// Message 面向用户的提示
func (e passwordPolicyError) Message() string {
	return e.message
}

// bcrypt 只接受 72 字节以内的输入
const maxPasswordBytes = 72

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if len(password) > maxPasswordBytes {
		return passwordPolicyError{message: fmt.Sprintf("Password must be at most %d bytes", maxPasswordBytes)}
	}
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber &&
		!policy.RequireSpecial {
		return nil
	}

	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return passwordPolicyError{message: fmt.Sprintf("Password must be at least %d characters long", policy.MinLength)}
		}
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
		return passwordPolicyError{message: "Password must contain an uppercase letter"}
	}
	if policy.RequireLower && !hasLower {
		return passwordPolicyError{message: "Password must contain a lowercase letter"}
	}
	if policy.RequireNumber && !hasNumber {
		return passwordPolicyError{message: "Password must contain a number"}
	}
	if policy.RequireSpecial && !hasSpecial {
		return passwordPolicyError{message: "Password must contain a special character"}
	}

	return nil
}
