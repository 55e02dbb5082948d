package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest signing secret accepted for session cookies
const MinSecretLength = 16

// InvalidCookieErr is returned for cookies that were not issued by this server or have expired
var InvalidCookieErr = errors.New("invalid session cookie")

type cookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs session identifiers into cookie values so a client cannot
// present an identifier the server never handed out.
type CookieCodec struct {
	secret  []byte
	nowTime func() time.Time
}

func NewCookieCodec(secret []byte) (*CookieCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("[NewCookieCodec] secret must be at least %d bytes", MinSecretLength)
	}
	return &CookieCodec{secret: secret, nowTime: time.Now}, nil
}

// WithNowTime returns a copy of the codec using nowFunc for expiry checks
func (c *CookieCodec) WithNowTime(nowFunc func() time.Time) *CookieCodec {
	cp := *c
	cp.nowTime = nowFunc
	return &cp
}

// Encode returns the cookie value for the session id
func (c *CookieCodec) Encode(sessionID string, expiresAt time.Time) (string, error) {
	if sessionID == "" {
		return "", errors.New("[CookieCodec.Encode] session id is required")
	}
	claims := cookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(c.nowTime()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	value, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("[CookieCodec.Encode] sign: %w", err)
	}
	return value, nil
}

// Decode verifies the cookie value and returns the session id inside it
func (c *CookieCodec) Decode(value string) (string, error) {
	claims := &cookieClaims{}
	_, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.nowTime),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", errors.Join(InvalidCookieErr, err)
	}
	if claims.SessionID == "" {
		return "", InvalidCookieErr
	}
	return claims.SessionID, nil
}
