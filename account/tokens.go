package account

import (
	"fmt"
	"time"

	"clementus360/goal-tracker/types"

	"github.com/golang-jwt/jwt"
)

// Tokens issues and verifies HS256 access tokens for local accounts. The
// claims mirror what Supabase puts in its own tokens so both backends can
// share ParseClaims.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(user types.SafeUser) (string, error) {
	if len(t.secret) == 0 {
		return "", fmt.Errorf("token secret is not configured")
	}

	now := t.now()
	claims := jwt.MapClaims{
		"sub":           user.ID,
		"email":         user.Email,
		"aud":           "authenticated",
		"role":          "authenticated",
		"iat":           now.Unix(),
		"exp":           now.Add(t.ttl).Unix(),
		"user_metadata": Metadata(user),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Parse verifies signature and expiry and returns the user in the claims.
func (t *Tokens) Parse(tokenString string) (types.SafeUser, error) {
	return ParseHS256(tokenString, t.secret)
}

// ParseHS256 verifies an HS256 token with secret. With an empty secret the
// signature is not checked, which is only acceptable when the token is
// verified again by the backend that issued it.
func ParseHS256(tokenString string, secret []byte) (types.SafeUser, error) {
	claims := jwt.MapClaims{}

	if len(secret) == 0 {
		parser := &jwt.Parser{}
		if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
			return types.SafeUser{}, types.AuthError("Invalid token")
		}
		if err := claims.Valid(); err != nil {
			return types.SafeUser{}, types.AuthError("Token expired")
		}
	} else {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return types.SafeUser{}, types.AuthError("Invalid or expired token")
		}
	}

	return ParseClaims(claims)
}

// ParseClaims extracts the user from sub, email and user_metadata.
func ParseClaims(claims jwt.MapClaims) (types.SafeUser, error) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return types.SafeUser{}, types.AuthError("Token has no subject")
	}
	email, _ := claims["email"].(string)
	meta, _ := claims["user_metadata"].(map[string]interface{})
	return UserFromMetadata(sub, email, meta), nil
}
