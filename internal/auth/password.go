package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches the conventional interactive-login work
// factor. The effective cost comes from configuration; this value is
// only the fallback.
const DefaultBcryptCost = 10

// HashPassword returns the bcrypt hash of plain using the given cost.
// The generated salt is embedded in the returned string.
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares a bcrypt hash and a plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
