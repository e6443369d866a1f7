package auth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GooglePayload holds the verified claims extracted from a Google ID token.
type GooglePayload struct {
	Subject string
	Email   string
}

// GoogleVerifier validates an ID token issued by Google and returns its
// verified claims. Implementations must reject tokens whose audience does
// not match the configured OAuth client ID.
type GoogleVerifier interface {
	VerifyIDToken(ctx context.Context, token string) (*GooglePayload, error)
}

type googleVerifier struct {
	clientID  string
	validator *idtoken.Validator
}

// NewGoogleVerifier builds a GoogleVerifier backed by Google's token
// validation endpoint. The clientID is the expected audience claim.
func NewGoogleVerifier(ctx context.Context, clientID string) (GoogleVerifier, error) {
	if clientID == "" {
		return nil, errors.New("google client ID is required")
	}
	validator, err := idtoken.NewValidator(ctx)
	if err != nil {
		return nil, fmt.Errorf("init idtoken validator: %w", err)
	}
	return &googleVerifier{clientID: clientID, validator: validator}, nil
}

func (v *googleVerifier) VerifyIDToken(ctx context.Context, token string) (*GooglePayload, error) {
	payload, err := v.validator.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validate google token: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("google token has no email claim")
	}

	return &GooglePayload{
		Subject: payload.Subject,
		Email:   email,
	}, nil
}
