// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// CredentialHasher defines the contract of the salted password hash.
// This abstracts the underlying algorithm (e.g., argon2id), keeping the domain pure.
type CredentialHasher interface {
	// NewSalt returns a fresh random salt.
	NewSalt() ([]byte, error)

	// Hash derives the digest of plaintext under salt.
	// Identical inputs always produce identical output.
	Hash(plaintext string, salt []byte) []byte
}
