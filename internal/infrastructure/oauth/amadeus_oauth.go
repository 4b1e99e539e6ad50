package oauth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AmadeusTokenPath is the client-credentials endpoint relative to the API base URL
const AmadeusTokenPath = "/v1/security/oauth2/token"

// NewAmadeusHTTPClient returns an HTTP client that attaches and refreshes
// Amadeus bearer tokens using the client-credentials grant
func NewAmadeusHTTPClient(ctx context.Context, baseURL, clientID, clientSecret string, timeout time.Duration) *http.Client {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     strings.TrimRight(baseURL, "/") + AmadeusTokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})
	client := config.Client(ctx)
	client.Timeout = timeout
	return client
}
