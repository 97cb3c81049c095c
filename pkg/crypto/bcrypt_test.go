package crypto

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixedHash = "$2a$10$WfLsVeqRXt3DURxYutVege/ztAVBf8a2IZYqsj77OVdA4nI0lJINu"

func TestBcryptHashAndVerify(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{
		Cost:    MinCost,
		Variant: Variant2a,
	})

	encoded, err := hasher.Hash("secret-pass")
	require.NoError(t, err)
	assert.Len(t, encoded, EncodedHashLength)
	assert.True(t, strings.HasPrefix(encoded, "$2a$04$"), encoded)

	ok, err := hasher.Verify("secret-pass", encoded)
	require.NoError(t, err)
	assert.True(t, ok, "expected hash verification to succeed")

	ok, err = hasher.Verify("wrong-pass", encoded)
	require.NoError(t, err)
	assert.False(t, ok, "expected hash verification to fail for wrong password")
}

func TestBcryptHashDefaultCostScenario(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{})
	require.Equal(t, DefaultBcryptOptions(), hasher.Options())

	encoded, err := hasher.Hash("dn2907200")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$2a$10$"), encoded)

	ok, err := hasher.Verify("dn2907200", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHashUsesFreshSalt(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{Cost: MinCost})

	first, err := hasher.Hash("same-credential")
	require.NoError(t, err)
	second, err := hasher.Hash("same-credential")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for _, encoded := range []string{first, second} {
		ok, err := hasher.Verify("same-credential", encoded)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBcryptHashPreservesVariant(t *testing.T) {
	for _, variant := range []Variant{Variant2a, Variant2b, Variant2y} {
		t.Run(string(variant), func(t *testing.T) {
			hasher := NewBcryptHasher(BcryptOptions{}).WithParams(MinCost, variant)

			encoded, err := hasher.Hash("variant-pass")
			require.NoError(t, err)

			parsed, err := ParseEncodedHash(encoded)
			require.NoError(t, err)
			assert.Equal(t, variant, parsed.Variant)
			assert.Equal(t, MinCost, parsed.Cost)

			ok, err := hasher.Verify("variant-pass", encoded)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestBcryptHashInvalidParameters(t *testing.T) {
	base := NewBcryptHasher(BcryptOptions{})

	tests := []struct {
		name     string
		hasher   *BcryptHasher
		password string
	}{
		{name: "cost below minimum", hasher: base.WithParams(MinCost-1, Variant2a), password: "pw"},
		{name: "cost above maximum", hasher: base.WithParams(MaxCost+1, Variant2a), password: "pw"},
		{name: "zero cost", hasher: base.WithParams(0, Variant2a), password: "pw"},
		{name: "unknown prefix", hasher: base.WithParams(MinCost, Variant("2x")), password: "pw"},
		{name: "empty prefix", hasher: base.WithParams(MinCost, ""), password: "pw"},
		{name: "empty credential", hasher: base.WithParams(MinCost, Variant2a), password: ""},
		{name: "credential too long", hasher: base.WithParams(MinCost, Variant2a), password: strings.Repeat("a", MaxPasswordBytes+1)},
		{name: "nil hasher", hasher: nil, password: "pw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := tt.hasher.Hash(tt.password)
			require.ErrorIs(t, err, ErrInvalidParameter)
			assert.Empty(t, encoded)
		})
	}
}

func TestBcryptHashAcceptsMaximumLength(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{Cost: MinCost})
	password := strings.Repeat("x", MaxPasswordBytes)

	encoded, err := hasher.Hash(password)
	require.NoError(t, err)

	ok, err := hasher.Verify(password, encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptVerifyFixedHashWrongPassword(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{})

	ok, err := hasher.Verify("wrongpassword", fixedHash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptVerifyMalformedHash(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{})

	ok, err := hasher.Verify("secret-pass", "invalid")
	require.ErrorIs(t, err, ErrMalformedHash)
	assert.False(t, ok)
}

func TestBcryptVerifyEmptyCredentialIsMismatch(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{})

	ok, err := hasher.Verify("", fixedHash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = hasher.Verify("", "$2a$10$")
	assert.ErrorIs(t, err, ErrMalformedHash)
}

func TestBcryptVerifyInvalidCredential(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{})

	ok, err := hasher.Verify(strings.Repeat("b", MaxPasswordBytes+1), fixedHash)
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.False(t, ok)
}

func TestBcryptNeedsRehash(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{Cost: 10, Variant: Variant2a})

	rehash, err := hasher.NeedsRehash(fixedHash)
	require.NoError(t, err)
	assert.False(t, rehash)

	rehash, err = hasher.WithParams(12, Variant2a).NeedsRehash(fixedHash)
	require.NoError(t, err)
	assert.True(t, rehash)

	rehash, err = hasher.WithParams(10, Variant2b).NeedsRehash(fixedHash)
	require.NoError(t, err)
	assert.True(t, rehash)

	_, err = hasher.NeedsRehash("$2a$10$")
	assert.ErrorIs(t, err, ErrMalformedHash)
}

func TestBcryptConcurrentVerify(t *testing.T) {
	hasher := NewBcryptHasher(BcryptOptions{Cost: MinCost})
	encoded, err := hasher.Hash("shared-pass")
	require.NoError(t, err)

	const workers = 8
	results := make([]bool, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			candidate := "shared-pass"
			if i%2 == 1 {
				candidate = "other-pass"
			}
			results[i], errs[i] = hasher.Verify(candidate, encoded)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, i%2 == 0, results[i], "worker %d", i)
	}
}
