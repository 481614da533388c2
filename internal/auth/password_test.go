package auth

import "testing"

func TestHashAndCheck(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if !IsHashed(hash) {
		t.Errorf("hash %q not recognised as bcrypt", hash)
	}
	if !CheckPassword(hash, "admin123") {
		t.Error("expected password to match")
	}
	if CheckPassword(hash, "admin124") {
		t.Error("expected wrong password to fail")
	}
}

func TestIsHashed(t *testing.T) {
	cases := map[string]bool{
		"$2a$10$abcdefghijklmnopqrstuv": true,
		"$2b$10$abcdefghijklmnopqrstuv": true,
		"$2y$10$abcdefghijklmnopqrstuv": true,
		"admin123":                      false,
		"":                              false,
	}
	for in, want := range cases {
		if got := IsHashed(in); got != want {
			t.Errorf("IsHashed(%q) = %v; want %v", in, got, want)
		}
	}
}
