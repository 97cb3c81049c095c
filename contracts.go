package pwhash

// PasswordHash is an encoded bcrypt hash. It is produced by Hash and only
// ever consumed by Verify or Inspect.
type PasswordHash string

func (h PasswordHash) String() string {
	return string(h)
}

// HashInfo describes an encoded hash without verifying it.
type HashInfo struct {
	Prefix string
	Cost   int
	Salt   string
	// NeedsRehash is true when Prefix or Cost differ from the service
	// defaults.
	NeedsRehash bool
}

type Hasher interface {
	Hash(credential string, cost int, prefix string) (PasswordHash, error)
	Verify(credential string, encoded PasswordHash) (bool, error)
}

var _ Hasher = (*Service)(nil)
