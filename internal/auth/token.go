package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload carried by an access token: the subject id
// (string-encoded, in RegisteredClaims.Subject), the role, and the
// issued-at / expiry timestamps.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AccessToken is a freshly issued, signed token together with its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenSubject is the trusted content of a validated token.
type TokenSubject struct {
	SubjectID uint64
	Role      Role
}

// TokenService issues and validates HS256 access tokens.  The secret and
// default TTL are fixed at construction; there is no ambient settings
// object.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService signing with the given secret.
// ttl is the default validity window applied by Issue.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the default validity window of issued tokens.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs an access token for the subject with the default TTL.
func (s *TokenService) Issue(subjectID uint64, role Role) (AccessToken, error) {
	return s.IssueWithTTL(subjectID, role, s.ttl)
}

// IssueWithTTL signs an access token valid for the given duration.
func (s *TokenService) IssueWithTTL(subjectID uint64, role Role, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, ExpiresAt: exp}, nil
}

// Validate verifies the signature and expiry of a serialized token and
// extracts its subject.  The signing method is pinned to HS256 so a token
// cannot choose its own algorithm.  Signature failures are reported as
// ErrInvalidSignature even when other claims are also wrong; an expired
// but correctly signed token is ErrExpired; everything else is
// ErrMalformed.  No claim is trusted unless the signature verified.
func (s *TokenService) Validate(raw string) (TokenSubject, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return TokenSubject{}, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return TokenSubject{}, ErrExpired
		default:
			return TokenSubject{}, ErrMalformed
		}
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return TokenSubject{}, ErrMalformed
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return TokenSubject{}, ErrMalformed
	}
	role, ok := ParseRole(claims.Role)
	if !ok {
		return TokenSubject{}, ErrMalformed
	}
	return TokenSubject{SubjectID: id, Role: role}, nil
}
