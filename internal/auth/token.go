// Package auth issues and verifies the bearer tokens that gate blog mutations.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const bearerPrefix = "bearer "

var (
	// ErrMissingToken is returned when no bearer token accompanies the request.
	ErrMissingToken = errors.New("token missing")
	// ErrInvalidToken is returned for malformed, mis-signed or subject-less tokens.
	ErrInvalidToken = errors.New("token invalid")
	// ErrExpiredToken is returned once the token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)

// Claim is the verified identity carried by a token.
type Claim struct {
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// Issue signs a token for the given user valid for ttl from now.
func Issue(userID, username string, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("signing secret is required")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// TokenFromHeader extracts the token from an Authorization header value.
// The scheme is matched case-insensitively and must be followed by exactly one space.
func TokenFromHeader(header string) (string, error) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrMissingToken
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// Verify checks the bearer header against secret at the instant now.
func Verify(header string, secret []byte, now time.Time) (*Claim, error) {
	raw, err := TokenFromHeader(header)
	if err != nil {
		return nil, err
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.UserID) == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	claim := &Claim{
		UserID:   claims.UserID,
		Username: claims.Username,
	}
	if claims.IssuedAt != nil {
		claim.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		claim.ExpiresAt = claims.ExpiresAt.Time
	}
	return claim, nil
}

// Verifier binds Verify to a secret and a clock.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

func NewVerifier(secret []byte, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{secret: secret, now: now}
}

func (v *Verifier) Verify(header string) (*Claim, error) {
	return Verify(header, v.secret, v.now())
}

// Issue signs a token with the verifier's secret and clock.
func (v *Verifier) Issue(userID, username string, ttl time.Duration) (string, error) {
	return Issue(userID, username, v.secret, v.now(), ttl)
}
