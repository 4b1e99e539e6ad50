package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"airtrip-service/internal/infrastructure/config"
	"airtrip-service/internal/infrastructure/oauth"
	"airtrip-service/pkg/logger"
)

// Prints a Gmail send-scope refresh token for GMAIL_REFRESH_TOKEN.
// Reads GMAIL_CLIENT_ID and GMAIL_CLIENT_SECRET from the environment or .env.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.GmailClientID == "" || cfg.GmailClientSecret == "" {
		log.Fatal("GMAIL_CLIENT_ID and GMAIL_CLIENT_SECRET must be set")
	}

	gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, "", logger.NewLogger("info"))

	// Generate the authorization URL
	fmt.Printf("Open this URL in your browser:\n%s\n\n", gmailOAuth.GenerateAuthURL("airtrip-mailer"))
	fmt.Print("Paste the authorization code: ")

	var code string
	if _, err := fmt.Fscanln(os.Stdin, &code); err != nil {
		log.Fatalf("Failed to read code: %v", err)
	}

	// Exchange the authorization code for a token
	token, err := gmailOAuth.ExchangeCode(context.Background(), code)
	if err != nil {
		log.Fatalf("Failed to exchange code: %v", err)
	}

	out, err := gmailOAuth.TokenToJSON(token)
	if err != nil {
		log.Fatalf("Failed to render token: %v", err)
	}

	fmt.Printf("\nRefresh Token: %s\n\n%s\n", token.RefreshToken, out)
}
