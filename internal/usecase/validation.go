package usecase

import (
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/domain/model"
)

// OTPLength is the number of digits in a verification code.
const OTPLength = 4

// OTPResendCooldown is how long the verification screen waits before a new code may be requested.
const OTPResendCooldown = 179 * time.Second

// NormalizePhone strips separators and rewrites a Saudi mobile number to the
// local 05XXXXXXXX form. It fails with ErrInvalidPhone for anything else.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		switch {
		case r == ' ' || r == '-' || r == '(' || r == ')':
		case r == '+' && b.Len() == 0:
		case unicode.IsDigit(r):
			b.WriteRune(toASCIIDigit(r))
		default:
			return "", fmt.Errorf("%w: unexpected character %q", domainErrors.ErrInvalidPhone, r)
		}
	}

	digits := b.String()
	switch {
	case strings.HasPrefix(digits, "00966"):
		digits = "0" + digits[5:]
	case strings.HasPrefix(digits, "966"):
		digits = "0" + digits[3:]
	case strings.HasPrefix(digits, "5"):
		digits = "0" + digits
	}

	if len(digits) != 10 || !strings.HasPrefix(digits, "05") {
		return "", fmt.Errorf("%w: %q", domainErrors.ErrInvalidPhone, phone)
	}
	return digits, nil
}

// ValidateOTP checks the code is exactly OTPLength digits.
func ValidateOTP(code string) error {
	code = strings.TrimSpace(code)
	if len([]rune(code)) != OTPLength {
		return fmt.Errorf("%w: expected %d digits", domainErrors.ErrInvalidOTP, OTPLength)
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: non-digit character", domainErrors.ErrInvalidOTP)
		}
	}
	return nil
}

// ValidateAddress checks the address form.
func ValidateAddress(fields model.AddressFields) error {
	if strings.TrimSpace(fields.City) == "" {
		return fmt.Errorf("%w: city is required", domainErrors.ErrInvalidAddress)
	}
	if strings.TrimSpace(fields.District) == "" {
		return fmt.Errorf("%w: district is required", domainErrors.ErrInvalidAddress)
	}
	if fields.Type != model.AddressTypeHome && fields.Type != model.AddressTypeWork {
		return fmt.Errorf("%w: unknown type %q", domainErrors.ErrInvalidAddress, fields.Type)
	}
	return nil
}

// ParsePrice reads a manually entered price. Arabic-Indic digits are accepted.
func ParsePrice(input string) (float64, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(input) {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(toASCIIDigit(r))
		case r == '.' || r == '٫':
			b.WriteRune('.')
		case r == ',' || r == '٬':
		default:
			b.WriteRune(r)
		}
	}
	price, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domainErrors.ErrInvalidPrice, input)
	}
	if err := ValidatePrice(price); err != nil {
		return 0, err
	}
	return price, nil
}

// ValidatePrice requires a positive amount.
func ValidatePrice(price float64) error {
	if !(price > 0) {
		return fmt.Errorf("%w: must be greater than zero", domainErrors.ErrInvalidPrice)
	}
	return nil
}

// ValidateProfile checks the fields present in patch. Absent fields are not
// validated, present ones must not be blank.
func ValidateProfile(patch model.ProfilePatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name is required", domainErrors.ErrInvalidProfile)
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" {
			return fmt.Errorf("%w: email is required", domainErrors.ErrInvalidProfile)
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: malformed email", domainErrors.ErrInvalidProfile)
		}
	}
	if patch.Phone != nil {
		if _, err := NormalizePhone(*patch.Phone); err != nil {
			return err
		}
	}
	return nil
}

func toASCIIDigit(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	default:
		return r
	}
}
