package service

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// HashPassword produces a salted one-way hash. bcrypt generates a fresh
// random salt per call, so hashing the same password twice yields different
// stored values.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored hash.
func VerifyPassword(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}
