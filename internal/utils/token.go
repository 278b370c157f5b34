package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

    "courtbook/internal/model"
)

// ErrTokenInvalid is returned by ParseSessionToken when the signature
// does not verify, the token has expired, or the claims are malformed.
var ErrTokenInvalid = errors.New("invalid session token")

// SessionToken represents a signed JWT session token along with its
// expiry.  The Token field contains the JWT string.  Sessions are
// stateless: verification needs only the signing secret, and logout
// merely discards the client-held copy.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Claims is the verified identity carried by a session token.  It is
// the only way request handlers learn who the caller is.
type Claims struct {
    UserID uint64
    Role   model.Role
}

// NewSessionToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's role, and a TTL in minutes.  The
// JWT includes standard claims: subject (sub), role, expiration (exp) and
// issued at (iat).
func NewSessionToken(secret string, userID uint64, role model.Role, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":  userID,
        "role": string(role),
        "exp":  exp.Unix(),
        "iat":  time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a raw token string and extracts the typed
// identity claims.  Any failure (signature, expiry, shape) collapses to
// ErrTokenInvalid so callers never leak the specific reason.
func ParseSessionToken(secret, raw string) (Claims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with a different algorithm.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrTokenInvalid
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return Claims{}, ErrTokenInvalid
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Claims{}, ErrTokenInvalid
    }
    sub, ok := mc["sub"].(float64)
    if !ok || sub <= 0 {
        return Claims{}, ErrTokenInvalid
    }
    roleStr, ok := mc["role"].(string)
    if !ok {
        return Claims{}, ErrTokenInvalid
    }
    role := model.Role(roleStr)
    if !role.Valid() {
        return Claims{}, ErrTokenInvalid
    }
    return Claims{UserID: uint64(sub), Role: role}, nil
}
