package auth

import "unicode"

// PasswordPolicy decides whether a password is strong enough to accept.
type PasswordPolicy interface {
	Allow(password string) bool
}

// CompositionPolicy requires a minimum length and one character from each
// enabled class.
type CompositionPolicy struct {
	MinLength     int
	RequireLower  bool
	RequireUpper  bool
	RequireDigit  bool
	RequireSymbol bool
}

// DefaultPolicy matches the composition rule the accounts were created under:
// at least 8 characters with a lowercase letter, an uppercase letter, a digit
// and a symbol.
func DefaultPolicy() *CompositionPolicy {
	return &CompositionPolicy{
		MinLength:     8,
		RequireLower:  true,
		RequireUpper:  true,
		RequireDigit:  true,
		RequireSymbol: true,
	}
}

func (p *CompositionPolicy) Allow(password string) bool {
	if len(password) < p.MinLength {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if p.RequireLower && !lower {
		return false
	}
	if p.RequireUpper && !upper {
		return false
	}
	if p.RequireDigit && !digit {
		return false
	}
	if p.RequireSymbol && !symbol {
		return false
	}
	return true
}
