package ticket

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid ticket token")

// Claims is the QR payload.  It repeats what a controller at the door needs
// so the token can be checked offline.
type Claims struct {
	Film       string   `json:"film"`
	Room       string   `json:"salle"`
	Start      string   `json:"seance"`
	Seats      []string `json:"seats"`
	TotalCents int64    `json:"total_cents"`
	jwt.RegisteredClaims
}

// Signer issues HS256 ticket tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

func NewSigner(secret string, ttl time.Duration) Signer {
	return Signer{secret: []byte(secret), ttl: ttl}
}

// Sign returns the token of t.  The subject is the ticket reference.
func (s Signer) Sign(t Ticket) (string, error) {
	seats := make([]string, len(t.Seats))
	for i, id := range t.Seats {
		seats[i] = string(id)
	}
	claims := Claims{
		Film:       t.Film,
		Room:       t.Room,
		Start:      t.Start,
		Seats:      seats,
		TotalCents: t.TotalCents,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  t.Reference,
			IssuedAt: jwt.NewNumericDate(t.IssuedAt),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(t.IssuedAt.Add(s.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign ticket: %w", err)
	}
	return signed, nil
}

// Verify parses a token issued by Sign.
func (s Signer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
