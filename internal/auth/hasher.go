package auth

import "golang.org/x/crypto/bcrypt"

// CredentialHasher abstracts one-way password hashing so the authentication
// service never sees raw hash mechanics.
type CredentialHasher interface {
	Hash(password string) (string, error)
	// Compare returns a non-nil error when the password does not match the
	// stored hash.
	Compare(hash, password string) error
}

// BcryptHasher hashes credentials with bcrypt. Comparison is constant-time.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher creates a hasher with the given work factor; a
// non-positive cost falls back to the bcrypt default.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
