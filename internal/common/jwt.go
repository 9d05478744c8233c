package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the data stored in a bearer token.
type Claims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// UserDirectory resolves a user id to a live directory row. The verifier
// uses it to reject tokens whose subject no longer exists.
type UserDirectory interface {
	Exists(ctx context.Context, tenantID, userID string) (bool, error)
}

// TokenVerifier validates a bearer credential and returns the caller identity.
// Called once per websocket handshake and once per mirror request.
type TokenVerifier interface {
	Verify(ctx context.Context, credential string) (*Identity, error)
}

type jwtVerifier struct {
	secret []byte
	issuer string
	users  UserDirectory
}

// NewTokenVerifier builds the HS256 verifier backed by the user directory.
func NewTokenVerifier(secret, issuer string, users UserDirectory) TokenVerifier {
	return &jwtVerifier{secret: []byte(secret), issuer: issuer, users: users}
}

func (v *jwtVerifier) Verify(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, fmt.Errorf("%w: missing credential", ErrUnauthorized)
	}

	var opts []jwt.ParserOption
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	token, err := jwt.ParseWithClaims(credential, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	if claims.UserID == "" || claims.TenantID == "" {
		return nil, fmt.Errorf("%w: incomplete claims", ErrUnauthorized)
	}

	exists, err := v.users.Exists(ctx, claims.TenantID, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: unknown user %s", ErrUnauthorized, claims.UserID)
	}

	return &Identity{
		ID:       claims.UserID,
		TenantID: claims.TenantID,
		Role:     Role(claims.Role),
	}, nil
}

// GenerateToken issues a signed token for the given identity. Production
// credentials come from the platform's auth service; this helper backs tests
// and local development.
func GenerateToken(secret, issuer string, identity Identity, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:   identity.ID,
		TenantID: identity.TenantID,
		Role:     string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   identity.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}
