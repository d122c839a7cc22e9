package auth

import "testing"

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4) // low cost keeps the test fast

	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if salt == "" {
		t.Fatal("expected a non-empty salt")
	}

	hash, err := hasher.Hash(salt, "correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := hasher.Compare(hash, salt, "correct horse battery staple"); err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if err := hasher.Compare(hash, salt, "wrong password"); err == nil {
		t.Fatal("expected mismatch for the wrong password")
	}
	if err := hasher.Compare(hash, "other-salt", "correct horse battery staple"); err == nil {
		t.Fatal("expected mismatch for the wrong salt")
	}
}

func TestBcryptHasher_SaltsAreUnique(t *testing.T) {
	hasher := NewBcryptHasher(4)
	a, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatal("expected two generated salts to differ")
	}
}
