package pwhash

import (
	"errors"

	ocrypto "github.com/porthorian/pwhash/pkg/crypto"
	pwerrors "github.com/porthorian/pwhash/pkg/errors"
)

// Hash encodes credential with a fresh salt under the given cost and
// prefix.
func (s *Service) Hash(credential string, cost int, prefix string) (PasswordHash, error) {
	if s == nil {
		return "", pwerrors.ErrMissingHasher
	}

	variant, err := ocrypto.ParseVariant(prefix)
	if err != nil {
		return "", pwerrors.Wrap(pwerrors.CodeInvalidParameter, "failed to hash credential", err)
	}

	encoded, err := s.bcrypt.WithParams(cost, variant).Hash(credential)
	if err != nil {
		return "", s.fail("failed to hash credential", err)
	}

	s.logger.V(1).Info("hashed credential", "cost", cost, "prefix", string(variant))
	return PasswordHash(encoded), nil
}

// HashDefault hashes with the configured cost and prefix.
func (s *Service) HashDefault(credential string) (PasswordHash, error) {
	if s == nil || s.hasher == nil {
		return "", pwerrors.ErrMissingHasher
	}

	encoded, err := s.hasher.Hash(credential)
	if err != nil {
		return "", s.fail("failed to hash credential", err)
	}

	s.logger.V(1).Info("hashed credential", "cost", s.cost, "prefix", string(s.variant))
	return PasswordHash(encoded), nil
}

// Verify reports whether credential reproduces encoded. A mismatch is
// (false, nil). An unparseable encoding is a malformed_hash error.
func (s *Service) Verify(credential string, encoded PasswordHash) (bool, error) {
	if s == nil || s.hasher == nil {
		return false, pwerrors.ErrMissingHasher
	}

	ok, err := s.hasher.Verify(credential, string(encoded))
	if err != nil {
		return false, s.fail("failed to verify credential", err)
	}

	s.logger.V(1).Info("verified credential", "match", ok)
	return ok, nil
}

func (s *Service) Inspect(encoded PasswordHash) (HashInfo, error) {
	if s == nil {
		return HashInfo{}, pwerrors.ErrMissingHasher
	}

	parsed, err := ocrypto.ParseEncodedHash(string(encoded))
	if err != nil {
		return HashInfo{}, s.fail("failed to inspect hash", err)
	}
	rehash, err := s.bcrypt.NeedsRehash(string(encoded))
	if err != nil {
		return HashInfo{}, s.fail("failed to inspect hash", err)
	}

	return HashInfo{
		Prefix:      string(parsed.Variant),
		Cost:        parsed.Cost,
		Salt:        parsed.Salt,
		NeedsRehash: rehash,
	}, nil
}

func (s *Service) fail(message string, err error) error {
	wrapped := wrapError(message, err)
	s.logger.V(1).Info(message, "code", string(pwerrors.CodeOf(wrapped)))
	return wrapped
}

func wrapError(message string, err error) error {
	switch {
	case errors.Is(err, ocrypto.ErrInvalidParameter):
		return pwerrors.Wrap(pwerrors.CodeInvalidParameter, message, err)
	case errors.Is(err, ocrypto.ErrMalformedHash):
		return pwerrors.Wrap(pwerrors.CodeMalformedHash, message, err)
	default:
		return pwerrors.Wrap(pwerrors.CodeLibraryFailure, message, err)
	}
}
