package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"workforce/backend/internal/auth"
)

func writeTestKey(t *testing.T) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	block := &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	}

	path := filepath.Join(t.TempDir(), "private.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenRoundTrip(t *testing.T) {
	keyPath := writeTestKey(t)

	access, refresh, err := GenToken(TokenClaims{ID: 42, Role: auth.RoleEmployee}, keyPath)
	if err != nil {
		t.Fatal("generating tokens:", err)
	}
	if access == refresh {
		t.Fatal("access and refresh tokens should differ")
	}

	accessClaims, refreshClaims, err := VerifyTokens(access, refresh, keyPath)
	if err != nil {
		t.Fatal("verifying tokens:", err)
	}

	if accessClaims.UserId != 42 || refreshClaims.UserId != 42 {
		t.Errorf("user id = %d/%d, want 42", accessClaims.UserId, refreshClaims.UserId)
	}
	if accessClaims.Type != "access" {
		t.Errorf("access claims type = %q", accessClaims.Type)
	}
	if refreshClaims.Type != "refresh" {
		t.Errorf("refresh claims type = %q", refreshClaims.Type)
	}
	if accessClaims.Role != auth.RoleEmployee {
		t.Errorf("role = %q, want %q", accessClaims.Role, auth.RoleEmployee)
	}
}

func TestVerifyTokensSwappedPair(t *testing.T) {
	keyPath := writeTestKey(t)

	access, refresh, err := GenToken(TokenClaims{ID: 1, Role: auth.RoleAdmin}, keyPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := VerifyTokens(refresh, access, keyPath); err == nil {
		t.Error("swapped token pair should not verify")
	}
}

func TestVerifyTokensForeignKey(t *testing.T) {
	keyPath := writeTestKey(t)
	otherKeyPath := writeTestKey(t)

	access, refresh, err := GenToken(TokenClaims{ID: 7, Role: auth.RoleEmployee}, keyPath)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := VerifyTokens(access, refresh, otherKeyPath); err == nil {
		t.Error("tokens signed with a different key should not verify")
	}
}
