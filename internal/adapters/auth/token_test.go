package auth

import (
	"testing"
	"time"
)

func TestJWT_IssueAndVerify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("member-1", "dev@example.com", []string{"member", "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	memberID, roles, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if memberID != "member-1" {
		t.Fatalf("expected member-1, got %q", memberID)
	}
	if len(roles) != 2 || roles[0] != "member" || roles[1] != "admin" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestJWT_Verify_WrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("other-secret")

	token, err := issuer.Issue("member-1", "dev@example.com", nil, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification to fail with the wrong secret")
	}
}

func TestJWT_Verify_Expired(t *testing.T) {
	issuer := NewJWTIssuer("test-secret")
	verifier := NewJWTVerifier("test-secret")

	token, err := issuer.Issue("member-1", "dev@example.com", nil, -time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification to fail for an expired token")
	}
}

func TestJWT_Verify_Garbage(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	if _, _, err := verifier.Verify("not.a.token"); err == nil {
		t.Fatal("expected verification to fail for garbage input")
	}
}
