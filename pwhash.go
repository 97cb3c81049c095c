// Package pwhash produces and verifies salted bcrypt password hashes in the
// portable $<prefix>$<cost>$<salt><digest> encoding.
//
// A Service is stateless apart from its configuration and is safe for
// concurrent use. Credentials are never logged or retained.
package pwhash

import (
	"github.com/go-logr/logr"
	ocrypto "github.com/porthorian/pwhash/pkg/crypto"
	pwerrors "github.com/porthorian/pwhash/pkg/errors"
)

type Config struct {
	Logger logr.Logger
	// Hasher backs Verify and HashDefault. Nil selects bcrypt with Cost and
	// Prefix.
	Hasher ocrypto.Hasher
	// Cost and Prefix are the defaults for HashDefault and the reference
	// point for Inspect's NeedsRehash.
	Cost   int
	Prefix string
}

type Service struct {
	logger  logr.Logger
	hasher  ocrypto.Hasher
	bcrypt  *ocrypto.BcryptHasher
	cost    int
	variant ocrypto.Variant
}

func New(config Config) (*Service, error) {
	resolved, err := config.initialize()
	if err != nil {
		return nil, err
	}

	variant := ocrypto.Variant(resolved.Prefix)
	bcryptHasher := ocrypto.NewBcryptHasher(ocrypto.BcryptOptions{
		Cost:    resolved.Cost,
		Variant: variant,
	})

	hasher := resolved.Hasher
	if hasher == nil {
		hasher = bcryptHasher
	}

	resolved.Logger.V(1).Info("initialized password hash service", "cost", resolved.Cost, "prefix", resolved.Prefix)
	return &Service{
		logger:  resolved.Logger,
		hasher:  hasher,
		bcrypt:  bcryptHasher,
		cost:    resolved.Cost,
		variant: variant,
	}, nil
}

func (c Config) initialize() (Config, error) {
	config := c
	config.Logger = resolveLogger(config.Logger)

	if config.Cost == 0 {
		config.Cost = ocrypto.DefaultCost
	}
	if config.Prefix == "" {
		config.Prefix = string(ocrypto.DefaultVariant)
	}

	variant, err := ocrypto.ParseVariant(config.Prefix)
	if err != nil {
		return Config{}, pwerrors.Wrap(pwerrors.CodeInvalidParameter, "pwhash config", err)
	}
	if err := ocrypto.ValidateParams(config.Cost, variant); err != nil {
		return Config{}, pwerrors.Wrap(pwerrors.CodeInvalidParameter, "pwhash config", err)
	}
	config.Prefix = string(variant)

	return config, nil
}

// Cost returns the default cost factor used by HashDefault.
func (s *Service) Cost() int {
	if s == nil {
		return 0
	}
	return s.cost
}

// Prefix returns the default variant prefix used by HashDefault.
func (s *Service) Prefix() string {
	if s == nil {
		return ""
	}
	return string(s.variant)
}
