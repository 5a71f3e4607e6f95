package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical; salt missing")
	}
	if !VerifyPassword(h1, "pw1") || !VerifyPassword(h2, "pw1") {
		t.Fatalf("hash does not verify against its own password")
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("correct", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword(h, "incorrect") {
		t.Fatalf("wrong password verified")
	}
	if VerifyPassword("not-a-bcrypt-hash", "correct") {
		t.Fatalf("malformed hash verified")
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(h))
	if err != nil {
		t.Fatalf("Cost error: %v", err)
	}
	if cost != DefaultBcryptCost {
		t.Fatalf("cost = %d, want %d", cost, DefaultBcryptCost)
	}
}
