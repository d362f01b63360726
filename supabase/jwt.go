package supabase

import (
	"clementus360/goal-tracker/account"
	"clementus360/goal-tracker/types"
)

// ParseAccessToken reads the user out of a Supabase access token. When the
// project JWT secret is known the signature is verified; otherwise the token
// is only decoded and PostgREST rejects forged tokens on first use.
func ParseAccessToken(accessToken, jwtSecret string) (types.SafeUser, error) {
	return account.ParseHS256(accessToken, []byte(jwtSecret))
}
