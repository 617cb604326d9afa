package token

import (
	"testing"
	"time"
)

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("access-secret", 15*time.Minute)

	signed, err := codec.Issue("user-42", time.Now().UTC())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	subject, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if subject != "user-42" {
		t.Fatalf("expected subject user-42, got %q", subject)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec("secret", time.Minute)

	signed, err := codec.Issue("user-1", time.Now().UTC().Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := codec.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	access := NewCodec("access-secret", time.Minute)
	refresh := NewCodec("refresh-secret", time.Hour)

	signed, err := access.Issue("user-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// The independent signing contexts must not accept each other's tokens.
	if _, err := refresh.Verify(signed); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken across contexts, got %v", err)
	}
}

func TestCodec_Garbage(t *testing.T) {
	codec := NewCodec("secret", time.Minute)
	if _, err := codec.Verify("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssuer_Pair(t *testing.T) {
	issuer := NewIssuer(
		NewCodec("access-secret", 15*time.Minute),
		NewCodec("refresh-secret", 7*24*time.Hour),
	)

	pair, err := issuer.Pair("user-9", time.Now().UTC())
	if err != nil {
		t.Fatalf("pair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	if sub, err := issuer.Access.Verify(pair.AccessToken); err != nil || sub != "user-9" {
		t.Fatalf("access verify: sub=%q err=%v", sub, err)
	}
	if sub, err := issuer.Refresh.Verify(pair.RefreshToken); err != nil || sub != "user-9" {
		t.Fatalf("refresh verify: sub=%q err=%v", sub, err)
	}
}
