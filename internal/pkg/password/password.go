// Package password derives and verifies salted PBKDF2-HMAC-SHA256 password
// hashes in the format stored in users.json.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/panaderia/bread-orders/internal/core/domain"
)

const (
	Algorithm         = "pbkdf2-sha256"
	DefaultIterations = 200000
	keyLength         = 32
	saltLength        = 16
)

// Hash derives a key for password. A nil salt generates a fresh random one;
// passing the stored salt reproduces an existing hash. iterations <= 0 uses
// DefaultIterations.
func Hash(password string, salt []byte, iterations int) (domain.PasswordHash, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if salt == nil {
		salt = make([]byte, saltLength)
		if _, err := rand.Read(salt); err != nil {
			return domain.PasswordHash{}, fmt.Errorf("generate salt: %w", err)
		}
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return domain.PasswordHash{
		Algorithm:  Algorithm,
		Iterations: iterations,
		Salt:       hex.EncodeToString(salt),
		Hash:       hex.EncodeToString(key),
	}, nil
}

// Verify recomputes the hash with the stored salt and iteration count and
// compares in constant time. Unknown algorithms and undecodable hashes never
// verify.
func Verify(password string, stored domain.PasswordHash) bool {
	if stored.Algorithm != Algorithm || stored.Iterations <= 0 {
		return false
	}
	salt, err := hex.DecodeString(stored.Salt)
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(stored.Hash)
	if err != nil || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, stored.Iterations, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
