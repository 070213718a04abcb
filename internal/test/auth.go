package test

import (
	"strings"

	pkgAuth "github.com/boklen/rentals/internal/pkg/auth"
)

const hashPrefix = "hash:"

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return hashPrefix + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != hashPrefix+password {
		return pkgAuth.ErrMismatch
	}
	return nil
}

// IsHash treats prefixed values as hashes.
func (h HasherStub) IsHash(value string) bool {
	return strings.HasPrefix(value, hashPrefix)
}
