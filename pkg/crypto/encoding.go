package crypto

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	saltChars   = 22
	digestChars = 31

	// EncodedHashLength is the length of every well-formed bcrypt encoding,
	// e.g. $2a$10$ followed by 53 radix-64 characters.
	EncodedHashLength = 7 + saltChars + digestChars
)

type Variant string

const (
	Variant2a Variant = "2a"
	Variant2b Variant = "2b"
	Variant2y Variant = "2y"
)

// DefaultVariant is what GoTrue-style verifiers expect.
const DefaultVariant = Variant2a

func (v Variant) Valid() bool {
	switch v {
	case Variant2a, Variant2b, Variant2y:
		return true
	}
	return false
}

// ParseVariant accepts "2a" as well as the framed "$2a$" form. Nothing else
// is stripped.
func ParseVariant(value string) (Variant, error) {
	bare := value
	if len(bare) == 4 && bare[0] == '$' && bare[3] == '$' {
		bare = bare[1:3]
	}
	variant := Variant(bare)
	if !variant.Valid() {
		return "", fmt.Errorf("%w: unsupported prefix %q (expected 2a, 2b or 2y)", ErrInvalidParameter, value)
	}
	return variant, nil
}

// EncodedHash is the parsed form of $<variant>$<cost>$<salt><digest>.
type EncodedHash struct {
	Variant Variant
	Cost    int
	Salt    string
	Digest  string
}

func (e EncodedHash) String() string {
	return fmt.Sprintf("$%s$%02d$%s%s", e.Variant, e.Cost, e.Salt, e.Digest)
}

func ParseEncodedHash(encodedHash string) (EncodedHash, error) {
	if len(encodedHash) != EncodedHashLength {
		return EncodedHash{}, fmt.Errorf("%w: expected %d characters, got %d", ErrMalformedHash, EncodedHashLength, len(encodedHash))
	}

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 4 || parts[0] != "" {
		return EncodedHash{}, fmt.Errorf("%w: expected $<prefix>$<cost>$<salt><digest>", ErrMalformedHash)
	}

	variant := Variant(parts[1])
	if !variant.Valid() {
		return EncodedHash{}, fmt.Errorf("%w: unsupported prefix %q", ErrMalformedHash, parts[1])
	}

	if len(parts[2]) != 2 {
		return EncodedHash{}, fmt.Errorf("%w: cost must be two digits", ErrMalformedHash)
	}
	cost, err := strconv.Atoi(parts[2])
	if err != nil || cost < MinCost || cost > MaxCost {
		return EncodedHash{}, fmt.Errorf("%w: cost %q outside [%d..%d]", ErrMalformedHash, parts[2], MinCost, MaxCost)
	}

	payload := parts[3]
	if len(payload) != saltChars+digestChars || !isRadix64(payload) {
		return EncodedHash{}, fmt.Errorf("%w: invalid salt or digest", ErrMalformedHash)
	}

	return EncodedHash{
		Variant: variant,
		Cost:    cost,
		Salt:    payload[:saltChars],
		Digest:  payload[saltChars:],
	}, nil
}

// isRadix64 reports whether s only uses bcrypt's ./A-Za-z0-9 alphabet.
func isRadix64(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.' || c == '/':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
