// File path: internal/auth/auth_test.go
package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash must not equal plaintext")
	}
	if !CheckPassword(hash, "correct horse battery staple") {
		t.Fatal("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong password") {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, err := issuer.Generate(42, "user@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims := issuer.Verify(token)
	if claims == nil {
		t.Fatal("expected valid claims")
	}
	if claims.UserID != 42 || claims.Email != "user@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenIssuerRejectsBadTokens(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	if issuer.Verify("not-a-token") != nil {
		t.Fatal("malformed token must verify to nil")
	}

	other := NewTokenIssuer("different-secret", time.Hour)
	token, err := other.Generate(1, "a@b.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if issuer.Verify(token) != nil {
		t.Fatal("token signed with another secret must verify to nil")
	}
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)
	token, err := issuer.Generate(1, "a@b.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if issuer.Verify(token) != nil {
		t.Fatal("expired token must verify to nil")
	}
}

func TestTokenCipherRoundTrip(t *testing.T) {
	cipher, err := NewTokenCipher("a passphrase of any length")
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}

	encrypted, err := cipher.Encrypt("pat-na1-secret-token")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if encrypted == "pat-na1-secret-token" {
		t.Fatal("ciphertext must not equal plaintext")
	}

	plain, err := cipher.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "pat-na1-secret-token" {
		t.Fatalf("round trip mismatch: %q", plain)
	}
}

func TestTokenCipherRejectsTampering(t *testing.T) {
	cipher, err := NewTokenCipher("key")
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	encrypted, err := cipher.Encrypt("value")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	flipped := "A" + encrypted[1:]
	if encrypted[0] == 'A' {
		flipped = "B" + encrypted[1:]
	}
	if _, err := cipher.Decrypt(flipped); err == nil {
		t.Fatal("tampered ciphertext must fail to decrypt")
	}
	if _, err := cipher.Decrypt("%%%not-base64%%%"); err == nil {
		t.Fatal("invalid encoding must fail to decrypt")
	}
	if _, err := cipher.Decrypt(""); err == nil {
		t.Fatal("empty ciphertext must fail to decrypt")
	}
}

func TestNewTokenCipherRequiresKey(t *testing.T) {
	if _, err := NewTokenCipher(""); err == nil {
		t.Fatal("empty key must be rejected")
	}
}
