package google

import (
	"context"
	"errors"

	"github.com/vncsmyrnk/pulse/internal/core/ports"
	"google.golang.org/api/idtoken"
)

type GoogleVerifier struct{}

func NewVerifier() *GoogleVerifier {
	return &GoogleVerifier{}
}

// Verify validates a Google ID token. Given and family names are optional claims.
func (v *GoogleVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	payload, err := idtoken.Validate(ctx, token, clientID)
	if err != nil {
		return nil, err
	}
	return payloadFromClaims(payload.Claims)
}

func payloadFromClaims(claims map[string]interface{}) (*ports.TokenPayload, error) {
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, errors.New("email not found in claims")
	}
	if verified, ok := claims["email_verified"].(bool); ok && !verified {
		return nil, errors.New("email not verified")
	}

	firstName, _ := claims["given_name"].(string)
	lastName, _ := claims["family_name"].(string)
	if firstName == "" {
		firstName, _ = claims["name"].(string)
	}
	return &ports.TokenPayload{Email: email, FirstName: firstName, LastName: lastName}, nil
}
