package relay

import (
	"errors"
	"strings"
)

// AddressSuffix is the transport's user-server suffix for direct chats.
const AddressSuffix = "s.whatsapp.net"

// DefaultCountryCode is prefixed when the caller supplies a local-format
// number (leading zero, no country code).
const DefaultCountryCode = "90"

// ErrBadNumber is returned when a destination number is empty after
// normalization.
var ErrBadNumber = errors.New("destination number is empty or invalid")

// NormalizeNumber converts a user-supplied phone number into the transport's
// addressing scheme: digits only, country code ensured, no punctuation.
// "+90 532 000 00 00" and "905320000000" normalize identically; a local
// "0532..." form gets the default country code.
func NormalizeNumber(number string) (string, error) {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return "", ErrBadNumber
	}

	local := !strings.HasPrefix(trimmed, "+") && strings.HasPrefix(trimmed, "0")

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, trimmed)

	if local {
		digits = strings.TrimLeft(digits, "0")
		if digits != "" {
			digits = DefaultCountryCode + digits
		}
	}
	if digits == "" {
		return "", ErrBadNumber
	}
	return digits, nil
}

// Address returns the full transport address for a normalized number.
func Address(digits string) string {
	return digits + "@" + AddressSuffix
}
