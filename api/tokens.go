package main

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const tokenValidity = 10 * time.Hour

var (
	errTokenInvalid = errors.New("invalid token")
	errTokenExpired = errors.New("token expired")
)

type sessionClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// tokenIssuer signs and verifies the bearer tokens handed out at login.
// Verification is a pure function of the token, the secret and the clock:
// it never touches the database, so a token outlives its user until expiry.
type tokenIssuer struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

func newTokenIssuer(secret []byte) *tokenIssuer {
	return &tokenIssuer{
		secret: secret,
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

func (t *tokenIssuer) issue(subjectID int) (string, error) {
	now := t.now()
	claims := sessionClaims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// verify returns the subject id embedded in tokenStr. Expiry is checked after
// the signature so a tampered expired token still reads as invalid.
func (t *tokenIssuer) verify(tokenStr string) (int, error) {
	token, err := t.parser.ParseWithClaims(tokenStr, &sessionClaims{}, func(tok *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return 0, errTokenInvalid
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return 0, errTokenInvalid
	}
	if claims.ExpiresAt == nil {
		return 0, errTokenInvalid
	}
	if t.now().After(claims.ExpiresAt.Time) {
		return 0, errTokenExpired
	}
	return claims.UserID, nil
}
