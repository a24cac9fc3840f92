// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"

	"scales/config"
	"scales/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// Argon2Params defines the memory and CPU cost factors for Argon2id.
type Argon2Params struct {
	Memory      uint32 // RAM usage in KiB (e.g., 64*1024 = 64MiB)
	Iterations  uint32 // Number of passes over the memory
	Parallelism uint8  // Number of threads to use
	SaltLength  uint32 // Random salt length in bytes
	KeyLength   uint32 // Digest length in bytes
}

// DefaultArgon2Params are used for every parameter left unset in configuration.
var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// argon2Hasher is a concrete implementation of the CredentialHasher interface using argon2id.
type argon2Hasher struct {
	params Argon2Params
}

// NewArgon2Hasher is the constructor used as an Fx provider.
// It reads the cost factors from the auth section of the configuration.
func NewArgon2Hasher(cfg *config.Config) service.CredentialHasher {
	params := DefaultArgon2Params
	if cfg != nil && cfg.Auth != nil {
		params = mergeArgon2Params(cfg.Auth.Argon2)
	}

	return NewArgon2HasherWithParams(params)
}

// NewArgon2HasherWithParams builds a hasher with explicit parameters.
func NewArgon2HasherWithParams(params Argon2Params) service.CredentialHasher {
	return &argon2Hasher{params: params}
}

func mergeArgon2Params(c config.Argon2Config) Argon2Params {
	params := DefaultArgon2Params
	if c.Memory > 0 {
		params.Memory = c.Memory
	}
	if c.Iterations > 0 {
		params.Iterations = c.Iterations
	}
	if c.Parallelism > 0 {
		params.Parallelism = c.Parallelism
	}
	if c.SaltLength > 0 {
		params.SaltLength = c.SaltLength
	}
	if c.KeyLength > 0 {
		params.KeyLength = c.KeyLength
	}

	return params
}

// NewSalt returns SaltLength cryptographically random bytes.
func (h *argon2Hasher) NewSalt() ([]byte, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to read random salt")
	}

	return salt, nil
}

// Hash derives the argon2id digest of plaintext under salt.
func (h *argon2Hasher) Hash(plaintext string, salt []byte) []byte {
	return argon2.IDKey(
		[]byte(plaintext),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)
}
