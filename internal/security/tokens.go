package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sentinel errors for token verification. Callers collapse all of them to a
// single unauthenticated response; the distinction exists for logs and tests.
var (
	// ErrInvalidToken is returned when a token is malformed, has a bad
	// signature, or carries unexpected issuer/audience.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when a correctly signed token has expired.
	ErrTokenExpired = errors.New("token expired")
	// ErrWrongTokenKind is returned when an ACCESS token is presented where a
	// REFRESH token is required, or vice versa.
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// TokenKind classifies a session token. The two kinds are mutually exclusive:
// only ACCESS tokens authenticate API calls, only REFRESH tokens can be rotated.
type TokenKind string

const (
	KindAccess  TokenKind = "ACCESS"
	KindRefresh TokenKind = "REFRESH"
)

// Claims is the session token payload. The wire format interoperates with the
// platform's existing HS512 tokens: custom fields first, then the registered
// claims (iat, exp, jti, iss, aud).
type Claims struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	FullName string    `json:"full_name,omitempty"`
	Kind     TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TokenPair is an access/refresh token pair minted together.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenProvider issues and verifies HS512-signed session tokens with a shared secret.
type TokenProvider struct {
	secret     []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenProvider returns a TokenProvider signing with secret.
// issuer and audience are set on claims and checked on verification.
func NewTokenProvider(secret []byte, issuer, audience string, accessTTL, refreshTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:     secret,
		issuer:     issuer,
		audience:   audience,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssuePair mints an access and a refresh token for the given identity.
// The two tokens differ only in kind, TTL, and jti; a refresh always mints
// a whole new pair.
func (p *TokenProvider) IssuePair(userID, username, fullName string) (*TokenPair, error) {
	access, err := p.issue(KindAccess, p.accessTTL, userID, username, fullName)
	if err != nil {
		return nil, err
	}
	refresh, err := p.issue(KindRefresh, p.refreshTTL, userID, username, fullName)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (p *TokenProvider) issue(kind TokenKind, ttl time.Duration, userID, username, fullName string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   userID,
		Username: username,
		FullName: fullName,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return t.SignedString(p.secret)
}

// Verify parses and validates a token (signature, expiry, issuer, audience).
// Returns ErrTokenExpired for a correctly signed but expired token and
// ErrInvalidToken for every other failure.
func (p *TokenProvider) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != jwt.SigningMethodHS512 {
				return nil, ErrInvalidToken
			}
			return p.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Refresh verifies a REFRESH token and mints a fresh pair for its identity.
// Returns ErrWrongTokenKind when given an ACCESS token. The old refresh token
// is not invalidated server-side; it stays valid until its own expiry.
func (p *TokenProvider) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := p.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != KindRefresh {
		return nil, ErrWrongTokenKind
	}
	return p.IssuePair(claims.UserID, claims.Username, claims.FullName)
}
