package app

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestSessionTokensIssueClaims(t *testing.T) {
	secret := "test-secret"
	tokens := NewSessionTokens(secret, "guandan", time.Hour)

	tokenString, err := tokens.Issue("sid-1", "user123")
	if err != nil {
		t.Fatalf("issue token error: %v", err)
	}

	claims := parseClaims(t, tokenString, secret)
	for name, want := range map[string]string{"sid": "sid-1", "sub": "user123", "iss": "guandan"} {
		if got, _ := claims[name].(string); got != want {
			t.Fatalf("%s = %q, want %q", name, got, want)
		}
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatal("missing exp claim")
	}
}

func TestSessionTokensRoundTrip(t *testing.T) {
	tokens := NewSessionTokens("secret", "guandan", time.Hour)
	tokenString, err := tokens.Issue("sid-1", "user123")
	if err != nil {
		t.Fatalf("issue token error: %v", err)
	}

	claims, err := tokens.VerifyFor(tokenString, "user123")
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if claims.SessionID != "sid-1" || claims.UserID != "user123" {
		t.Fatalf("claims = %+v", claims)
	}
	if _, err := tokens.VerifyFor(tokenString, "someone-else"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestSessionTokensRejects(t *testing.T) {
	good := NewSessionTokens("secret", "guandan", time.Hour)

	expired := NewSessionTokens("secret", "guandan", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expiredToken, err := expired.Issue("sid", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	otherSecret, _ := NewSessionTokens("other", "guandan", time.Hour).Issue("sid", "user")
	otherIssuer, _ := NewSessionTokens("secret", "someone", time.Hour).Issue("sid", "user")

	tests := []struct {
		name  string
		token string
	}{
		{name: "Expired", token: expiredToken},
		{name: "Wrong secret", token: otherSecret},
		{name: "Wrong issuer", token: otherIssuer},
		{name: "Garbage", token: "not-a-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := good.Verify(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestSessionTokensRequireConfig(t *testing.T) {
	if _, err := NewSessionTokens("", "guandan", 0).Issue("sid", "user"); !errors.Is(err, ErrTokenConfig) {
		t.Fatalf("err = %v, want ErrTokenConfig", err)
	}
	if _, err := NewSessionTokens("secret", "guandan", 0).Issue("", "user"); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestNewSessionIDIsUnique(t *testing.T) {
	a, b := NewSessionID(), NewSessionID()
	if a == "" || a == b {
		t.Fatalf("session ids %q and %q", a, b)
	}
}

func parseClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}
