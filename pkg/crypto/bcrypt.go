package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinCost     = bcrypt.MinCost
	MaxCost     = bcrypt.MaxCost
	DefaultCost = bcrypt.DefaultCost

	// MaxPasswordBytes is the bcrypt input limit. Longer input is rejected
	// rather than silently truncated.
	MaxPasswordBytes = 72
)

type BcryptOptions struct {
	Cost    int
	Variant Variant
}

type BcryptHasher struct {
	options BcryptOptions
}

var _ Hasher = (*BcryptHasher)(nil)

func DefaultBcryptOptions() BcryptOptions {
	return BcryptOptions{
		Cost:    DefaultCost,
		Variant: DefaultVariant,
	}
}

// NewBcryptHasher fills zero options with defaults. Out of range values are
// kept and reported by Hash.
func NewBcryptHasher(options BcryptOptions) *BcryptHasher {
	defaults := DefaultBcryptOptions()

	if options.Cost == 0 {
		options.Cost = defaults.Cost
	}
	if options.Variant == "" {
		options.Variant = defaults.Variant
	}

	return &BcryptHasher{
		options: options,
	}
}

func (h *BcryptHasher) Options() BcryptOptions {
	if h == nil {
		return BcryptOptions{}
	}
	return h.options
}

// WithParams returns a hasher for an explicit cost and variant. No defaults
// are applied.
func (h *BcryptHasher) WithParams(cost int, variant Variant) *BcryptHasher {
	return &BcryptHasher{
		options: BcryptOptions{
			Cost:    cost,
			Variant: variant,
		},
	}
}

func (h *BcryptHasher) Validate() error {
	if h == nil {
		return fmt.Errorf("%w: hasher is nil", ErrInvalidParameter)
	}
	return ValidateParams(h.options.Cost, h.options.Variant)
}

func ValidateParams(cost int, variant Variant) error {
	if cost < MinCost || cost > MaxCost {
		return fmt.Errorf("%w: cost %d outside [%d..%d]", ErrInvalidParameter, cost, MinCost, MaxCost)
	}
	if !variant.Valid() {
		return fmt.Errorf("%w: unsupported prefix %q (expected 2a, 2b or 2y)", ErrInvalidParameter, variant)
	}
	return nil
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}
	if err := validatePassword(password); err != nil {
		return "", err
	}

	raw, err := bcrypt.GenerateFromPassword([]byte(password), h.options.Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: %w", ErrInvalidParameter, err)
		}
		return "", fmt.Errorf("%w: %w", ErrLibraryFailure, err)
	}

	// x/crypto always emits $2a$. 2b and 2y differ only in how other
	// implementations handled bugs that this one never had, so the digest is
	// identical and only the prefix is rewritten.
	encoded, err := ParseEncodedHash(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: unexpected bcrypt output: %w", ErrLibraryFailure, err)
	}
	encoded.Variant = h.options.Variant

	return encoded.String(), nil
}

// Verify reports a mismatch for an empty candidate, since no hash is ever
// produced from one. Malformed hashes are still reported first.
func (h *BcryptHasher) Verify(password string, encodedHash string) (bool, error) {
	if _, err := ParseEncodedHash(encodedHash); err != nil {
		return false, err
	}
	if password == "" {
		return false, nil
	}
	if err := validatePassword(password); err != nil {
		return false, err
	}

	// CompareHashAndPassword recomputes with the embedded cost and salt and
	// compares with subtle.ConstantTimeCompare.
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	default:
		return false, fmt.Errorf("%w: %w", ErrLibraryFailure, err)
	}
}

// NeedsRehash reports whether encodedHash was produced with a different
// cost or variant than this hasher uses.
func (h *BcryptHasher) NeedsRehash(encodedHash string) (bool, error) {
	parsed, err := ParseEncodedHash(encodedHash)
	if err != nil {
		return false, err
	}
	return parsed.Cost != h.Options().Cost || parsed.Variant != h.Options().Variant, nil
}

func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: credential is empty", ErrInvalidParameter)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: credential exceeds %d bytes", ErrInvalidParameter, MaxPasswordBytes)
	}
	return nil
}
