package utils_test

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/flightagency/backend/internal/utils"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := utils.HashPassword("s3cret-pass", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash format: %q", hash)
	}
	if !utils.VerifyPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if utils.VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
	if utils.VerifyPassword("not-a-hash", "s3cret-pass") {
		t.Error("garbage hash accepted")
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, err := utils.HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := utils.HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestNewAccessToken(t *testing.T) {
	tok, err := utils.NewAccessToken("secret", 42, "PASSENGER", 15)
	if err != nil {
		t.Fatalf("new access token: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token")
	}
	if !tok.Exp.After(time.Now()) {
		t.Fatalf("expiry %v is not in the future", tok.Exp)
	}
	if strings.Count(tok.Token, ".") != 2 {
		t.Errorf("token %q is not a JWT", tok.Token)
	}
}
