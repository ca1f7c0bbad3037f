package security

import (
	"fmt"

	zxcvbn "github.com/nbutton23/zxcvbn-go"

	"github.com/arklim/credcheck/internal/core/domain"
)

// DefaultMinPasswordLength is the length floor applied when config does not override it.
const DefaultMinPasswordLength = 5

// PasswordRule validates a candidate password according to a specific policy rule.
type PasswordRule interface {
	Validate(password string) error
}

// PasswordRuleFunc adapts a function to be used as a PasswordRule.
type PasswordRuleFunc func(password string) error

// Validate executes the underlying rule function.
func (f PasswordRuleFunc) Validate(password string) error {
	return f(password)
}

// PasswordValidator applies a sequence of password rules in order. The first
// violation is returned; later rules are not evaluated.
type PasswordValidator struct {
	rules []PasswordRule
}

// NewPasswordValidator constructs a validator with the provided rules.
func NewPasswordValidator(rules ...PasswordRule) *PasswordValidator {
	copied := make([]PasswordRule, len(rules))
	copy(copied, rules)
	return &PasswordValidator{rules: copied}
}

// Validate executes all rules and returns the first encountered violation.
func (v *PasswordValidator) Validate(password string) error {
	if v == nil {
		return fmt.Errorf("password validator not configured")
	}
	for _, rule := range v.rules {
		if err := rule.Validate(password); err != nil {
			return err
		}
	}
	return nil
}

// StructuralRules returns the ordered structural checks for a candidate
// password: non-empty, minimum length, digit, special character, and
// distinct from the username. Ordering is part of the contract: the empty
// check runs before the username comparison, so "" with username "" reports
// an empty password.
func StructuralRules(username string, minLength int) []PasswordRule {
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	return []PasswordRule{
		NonEmptyRule(),
		MinLengthRule(minLength),
		RequireDigitRule(),
		RequireSpecialCharRule(),
		DifferentFromRule(username),
	}
}

// NonEmptyRule rejects the empty password.
func NonEmptyRule() PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		if password == "" {
			return &domain.ValidationError{
				Code:    domain.CodeEmptyPassword,
				Message: "empty password is not secure",
			}
		}
		return nil
	})
}

// MinLengthRule ensures the password has at least min characters, counted in
// Unicode code points rather than bytes.
func MinLengthRule(min int) PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		if len([]rune(password)) < min {
			return &domain.ValidationError{
				Code:     domain.CodeTooShort,
				Message:  fmt.Sprintf("password must be at least %d characters long", min),
				Required: min,
			}
		}
		return nil
	})
}

// RequireDigitRule ensures the password contains at least one ASCII digit.
func RequireDigitRule() PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		for _, r := range password {
			if r >= '0' && r <= '9' {
				return nil
			}
		}
		return &domain.ValidationError{
			Code:    domain.CodeMissingDigit,
			Message: "password must include at least one digit",
		}
	})
}

// RequireSpecialCharRule ensures the password contains at least one ASCII
// punctuation character.
func RequireSpecialCharRule() PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		for _, r := range password {
			if isASCIIPunct(r) {
				return nil
			}
		}
		return &domain.ValidationError{
			Code:    domain.CodeMissingSpecialChar,
			Message: "password must include at least one special character",
		}
	})
}

// DifferentFromRule ensures the password differs from the username.
func DifferentFromRule(username string) PasswordRule {
	return PasswordRuleFunc(func(password string) error {
		if password == username {
			return &domain.ValidationError{
				Code:    domain.CodeSameAsUsername,
				Message: "password must not be the same as the username",
			}
		}
		return nil
	})
}

// isASCIIPunct reports whether r is one of the 32 ASCII punctuation characters.
func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	default:
		return false
	}
}

// StrengthScore returns the zxcvbn score (0 weakest, 4 strongest) for a
// candidate password, penalizing passwords derived from the username.
// Advisory only: it is not one of the structural checks.
func StrengthScore(password string, userInputs ...string) int {
	result := zxcvbn.PasswordStrength(password, userInputs)
	return result.Score
}
