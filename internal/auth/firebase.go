package auth

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ProviderVerifier verifies an external identity-provider token.
// *fbauth.Client satisfies this; tests substitute a fake.
type ProviderVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// InitializeFirebase builds an Auth client from a base64-encoded
// service-account JSON (the FIREBASE_SERVICE_KEY env value).
func InitializeFirebase(ctx context.Context, encodedServiceKey string) (*fbauth.Client, error) {
	if encodedServiceKey == "" {
		return nil, fmt.Errorf("FIREBASE_SERVICE_KEY is required")
	}

	serviceJSON, err := base64.StdEncoding.DecodeString(encodedServiceKey)
	if err != nil {
		return nil, fmt.Errorf("decode service key: %w", err)
	}

	opt := option.WithCredentialsJSON(serviceJSON)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}
