package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// NewClient builds a client authenticated with the project key only.
func NewClient(apiURL, apiKey string) (*supabase.Client, error) {
	if apiURL == "" || apiKey == "" {
		return nil, fmt.Errorf("SUPABASE_URL or SUPABASE_KEY is missing")
	}

	client, err := supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}

// ClientForToken builds a client that talks to PostgREST as the user who
// owns accessToken, so row-level security applies to every query.
func ClientForToken(apiURL, apiKey, accessToken string) (*supabase.Client, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("missing access token")
	}

	client, err := supabase.NewClient(apiURL, apiKey, &supabase.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return client, nil
}
