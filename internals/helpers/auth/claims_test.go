package helper

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestSignAndParseToken(t *testing.T) {
	in := Claims{ID: "3f0c1a8e-4a4b-4c43-9a8a-1f1c3b2d4e5f", Username: "budi", Email: "budi@sekolah.id", Role: "guru"}
	tok, exp, err := SignToken(in, "s3cret", time.Now(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) <= 0 {
		t.Fatal("expiry should be in the future")
	}

	got, err := ParseToken(tok, "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != in.ID || got.Username != "budi" || got.Role != "guru" || got.Email != in.Email {
		t.Fatalf("claims = %+v", got)
	}

	if _, err := ParseToken(tok, "other"); err == nil {
		t.Fatal("wrong secret must fail")
	}
}

func TestParseTokenExpired(t *testing.T) {
	tok, _, err := SignToken(Claims{ID: "x"}, "s3cret", time.Now().Add(-2*time.Hour), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ParseToken(tok, "s3cret")
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestHashTokenIsStable(t *testing.T) {
	a := HashToken("abc", "k")
	if a != HashToken("abc", "k") || a == HashToken("abd", "k") || a == HashToken("abc", "j") {
		t.Fatal("hash must depend on token and secret only")
	}
	if len(a) != 64 {
		t.Fatalf("len = %d", len(a))
	}
}
