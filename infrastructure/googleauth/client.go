package googleauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
)

// DefaultTokenFile is where the OAuth installed-app token is cached
const DefaultTokenFile = "token.json"

// ErrConflictingCredentials is returned when both a service account and an
// OAuth client file are configured
var ErrConflictingCredentials = errors.New("both service account and OAuth credentials configured")

// Credentials selects how Google API calls are authorized. A service account
// key wins over OAuth client credentials; with neither, application default
// credentials are used.
type Credentials struct {
	ServiceAccountFile string
	CredentialsFile    string
	TokenFile          string
}

// Method reports which authorization flow the credentials select
func (c Credentials) Method() string {
	switch {
	case c.ServiceAccountFile != "":
		return "service-account"
	case c.CredentialsFile != "":
		return "oauth"
	default:
		return "application-default"
	}
}

// HTTPClient returns an authorized HTTP client for the given scopes
func HTTPClient(ctx context.Context, creds Credentials, scopes ...string) (*http.Client, error) {
	if creds.ServiceAccountFile != "" && creds.CredentialsFile != "" {
		return nil, ErrConflictingCredentials
	}

	switch creds.Method() {
	case "service-account":
		return serviceAccountClient(ctx, creds.ServiceAccountFile, scopes)
	case "oauth":
		tokenFile := creds.TokenFile
		if tokenFile == "" {
			tokenFile = DefaultTokenFile
		}
		return oauthClient(ctx, creds.CredentialsFile, tokenFile, scopes)
	}

	client, err := google.DefaultClient(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to find default credentials: %w", err)
	}
	return client, nil
}

// serviceAccountClient builds a JWT client from a service account key file
func serviceAccountClient(ctx context.Context, path string, scopes []string) (*http.Client, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account file: %w", err)
	}
	return config.Client(ctx), nil
}
