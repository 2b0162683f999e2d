package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
	uuid "github.com/satori/go.uuid"
)

// SessionTokens issues and verifies the HS256 tokens that bind a session ID to a user.
type SessionTokens struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// SessionClaims is the verified content of a session token.
type SessionClaims struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

func NewSessionTokens(secret, issuer string, ttl time.Duration) *SessionTokens {
	if ttl <= 0 {
		ttl = DefaultTokenTTLSeconds * time.Second
	}
	return &SessionTokens{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// NewSessionID returns a random session identifier.
func NewSessionID() string {
	return uuid.NewV4().String()
}

// Issue signs a token for sessionID owned by user.
func (s *SessionTokens) Issue(sessionID, user string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("session tokens is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", ErrTokenConfig
	}
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}
	if user == "" {
		return "", fmt.Errorf("user is required")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user,
		"sid": sessionID,
		"exp": s.now().Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Verify checks signature, issuer and expiry and returns the claims.
// Every failure wraps ErrInvalidToken.
func (s *SessionTokens) Verify(tokenString string) (SessionClaims, error) {
	if s == nil || s.secret == "" {
		return SessionClaims{}, ErrTokenConfig
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return SessionClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return SessionClaims{}, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return SessionClaims{}, fmt.Errorf("%w: wrong issuer", ErrInvalidToken)
	}

	sid, _ := claims["sid"].(string)
	sub, _ := claims["sub"].(string)
	if sid == "" || sub == "" {
		return SessionClaims{}, fmt.Errorf("%w: missing sid or sub", ErrInvalidToken)
	}
	exp, _ := claims["exp"].(float64)

	return SessionClaims{
		SessionID: sid,
		UserID:    sub,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// VerifyFor verifies the token and checks it was issued to user.
func (s *SessionTokens) VerifyFor(tokenString, user string) (SessionClaims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return SessionClaims{}, err
	}
	if claims.UserID != user {
		return SessionClaims{}, ErrNotOwner
	}
	return claims, nil
}
