package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingToken = errors.New("auth token is required")

// Credential carries the bearer token used for authenticated calls. It is
// passed explicitly to every call that needs it.
type Credential struct {
	Token string
}

func (c Credential) BearerHeader() string {
	return "Bearer " + strings.TrimSpace(c.Token)
}

// Identity is what the client can read from the token without verifying it.
// The server stays the only authority on whether the token is valid.
type Identity struct {
	Subject   string
	Name      string
	ExpiresAt time.Time
}

func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Label is a short description for headers: name, else subject.
func (i Identity) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Subject
}

// Identity decodes the token's claims without checking its signature.
func (c Credential) Identity() (Identity, error) {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return Identity{}, ErrMissingToken
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}

	identity := Identity{Subject: claimString(claims["sub"])}
	for _, key := range []string{"name", "username", "email"} {
		if name := claimString(claims[key]); name != "" {
			identity.Name = name
			break
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		identity.ExpiresAt = exp.Time
	}
	return identity, nil
}

func claimString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
