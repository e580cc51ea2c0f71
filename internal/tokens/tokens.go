package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Subject is a fixed issuer marker carried by every token this service
// signs; anything else in the sub claim is rejected.
const Subject = "someone"

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
	ErrMalformedClaims = errors.New("malformed claims")
)

// Claims is the single claims shape for both audiences. Numeric fields are
// typed here and serialized as strings at the signing boundary, which keeps
// the wire format compatible with older clients.
type Claims struct {
	jwt.RegisteredClaims

	UserID uint   `json:"id,string"`
	Email  string `json:"email"`
	Role   int    `json:"role,string"`

	// hasRole records whether the role key was present at all. Role's zero
	// value is a real role (student), so absence cannot be read off the
	// field itself.
	hasRole bool
}

func (c *Claims) UnmarshalJSON(data []byte) error {
	type plain Claims
	if err := json.Unmarshal(data, (*plain)(c)); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, c.hasRole = keys["role"]
	return nil
}

// Codec signs and verifies token strings. Access and refresh tokens use
// distinct secrets; a token signed for one audience fails verification
// against the other because the signatures diverge.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewCodec(accessSecret, refreshSecret []byte) *Codec {
	return &Codec{accessSecret: accessSecret, refreshSecret: refreshSecret}
}

func (c *Codec) SignAccess(userID uint, email string, role int, exp time.Time) (string, error) {
	return sign(c.accessSecret, userID, email, role, exp, "")
}

func (c *Codec) SignRefresh(userID uint, email string, role int, exp time.Time) (string, error) {
	return sign(c.refreshSecret, userID, email, role, exp, uuid.NewString())
}

func (c *Codec) VerifyAccess(tokenStr string) (*Claims, error) {
	return verify(tokenStr, c.accessSecret)
}

func (c *Codec) VerifyRefresh(tokenStr string) (*Claims, error) {
	return verify(tokenStr, c.refreshSecret)
}

func sign(secret []byte, userID uint, email string, role int, exp time.Time, jti string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   Subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        jti,
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}

	// Every issued token carries all of these; absence means the claim set
	// is malformed, not that a default applies.
	if claims.Subject != Subject {
		return nil, ErrMalformedClaims
	}
	if claims.ExpiresAt == nil {
		return nil, ErrMalformedClaims
	}
	if claims.UserID == 0 || claims.Email == "" {
		return nil, ErrMalformedClaims
	}
	if !claims.hasRole {
		return nil, ErrMalformedClaims
	}

	return &claims, nil
}
