package auth

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor. 12 is deliberately above the
// library default to keep brute-forcing stolen hashes expensive.
const hashCost = 12

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using the standard work factor.
func NewPasswordHasher() PasswordHasher {
	return PasswordHasher{cost: hashCost}
}

// Hash derives a salted hash from the plaintext. The output embeds its
// own salt and cost, so verification needs no extra state.
func (h PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash. A
// malformed hash is a mismatch, never an error.
func (h PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
