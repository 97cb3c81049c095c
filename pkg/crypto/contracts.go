package crypto

import "errors"

var (
	ErrInvalidParameter = errors.New("password: invalid parameter")
	ErrMalformedHash    = errors.New("password: malformed hash")
	ErrLibraryFailure   = errors.New("password: library failure")
)

// Hasher produces and checks encoded password hashes. Verify returns
// (false, nil) on mismatch and reserves errors for unusable input.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password string, encodedHash string) (bool, error)
}
