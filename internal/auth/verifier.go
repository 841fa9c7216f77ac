package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSecretNotConfigured indicates the server has no shared secret to verify with.
	ErrSecretNotConfigured = errors.New("JWT secret not configured")
	// ErrInvalidToken indicates a malformed, badly signed or expired token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrMissingSubject indicates a verified token without a subject claim.
	ErrMissingSubject = errors.New("invalid token: missing subject")
)

// Error carries the verification failure kind together with the underlying reason.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Reason)
}

// Unwrap exposes the failure kind to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	ID    string
	Email string
	Role  string
}

// Option customises a Verifier.
type Option func(*Verifier)

// WithAudience requires tokens to carry the given audience.
func WithAudience(audience string) Option {
	return func(v *Verifier) {
		v.audience = strings.TrimSpace(audience)
	}
}

// Verifier validates HS256 tokens signed with the identity provider's shared secret.
type Verifier struct {
	secret   []byte
	audience string
}

// NewVerifier constructs a verifier. An empty secret is accepted; every
// verification then fails with ErrSecretNotConfigured.
func NewVerifier(secret string, opts ...Option) *Verifier {
	v := &Verifier{secret: []byte(secret)}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks the signature and time-based claims and returns the caller identity.
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	if v == nil || len(v.secret) == 0 {
		return Identity{}, &Error{Kind: ErrSecretNotConfigured}
	}

	parserOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(v.audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return v.secret, nil
	}, parserOpts...)
	if err != nil {
		return Identity{}, &Error{Kind: ErrInvalidToken, Reason: err.Error()}
	}
	if !token.Valid {
		return Identity{}, &Error{Kind: ErrInvalidToken}
	}

	subject := subjectFromClaims(claims)
	if subject == "" {
		return Identity{}, &Error{Kind: ErrMissingSubject}
	}

	return Identity{
		ID:    subject,
		Email: stringClaim(claims, "email"),
		Role:  stringClaim(claims, "role"),
	}, nil
}

func subjectFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"sub", "user_id"} {
		value, ok := claims[key]
		if !ok {
			continue
		}
		if subject := normalizeSubject(value); subject != "" {
			return subject
		}
	}
	return ""
}

func normalizeSubject(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return ""
	}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if value, ok := claims[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
