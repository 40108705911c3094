package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"github.com/cinelog/movie-catalog/internal/core/domain"
)

var validIssuers = map[string]bool{
	"accounts.google.com":         true,
	"https://accounts.google.com": true,
}

var (
	errNoClientID    = errors.New("google client id not configured")
	errIssuer        = errors.New("unexpected issuer")
	errEmailVerified = errors.New("email not verified")
	errNoSubject     = errors.New("missing subject")
)

// Config holds the Google client settings.
type Config struct {
	ClientID string

	// HTTPClient fetches Google's signing keys. Overridable for tests.
	HTTPClient *http.Client
}

// Verifier checks Google ID tokens locally: signature against Google's
// published keys, audience and expiry, then issuer and email_verified.
type Verifier struct {
	clientID  string
	validator *idtoken.Validator
}

func NewVerifier(ctx context.Context, config Config) (*Verifier, error) {
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	validator, err := idtoken.NewValidator(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create id token validator: %w", err)
	}
	return &Verifier{clientID: config.ClientID, validator: validator}, nil
}

// Verify returns the identity carried by a valid ID token.
func (v *Verifier) Verify(ctx context.Context, credential string) (*domain.ExternalIdentity, error) {
	// An empty audience would make Validate skip the audience check.
	if v.clientID == "" {
		return nil, errNoClientID
	}

	payload, err := v.validator.Validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validate id token: %w", err)
	}
	if !validIssuers[payload.Issuer] {
		return nil, errIssuer
	}
	if payload.Subject == "" {
		return nil, errNoSubject
	}

	email := stringClaim(payload.Claims, "email")
	if email == "" || !emailVerified(payload.Claims["email_verified"]) {
		return nil, errEmailVerified
	}

	return &domain.ExternalIdentity{
		Subject: payload.Subject,
		Email:   domain.NormalizeEmail(email),
		Name:    stringClaim(payload.Claims, "name"),
	}, nil
}

func stringClaim(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

// Google sends email_verified as a JSON bool; older tokens used the string form.
func emailVerified(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	}
	return false
}
