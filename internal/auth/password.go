package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash with an embedded random salt, so two
// calls with the same password yield different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash. Mismatches and
// malformed hashes both return false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
