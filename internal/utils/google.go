package utils

import (
    "context"
    "errors"
    "strings"

    "google.golang.org/api/idtoken"
)

// GoogleClaims carries the identity fields extracted from a verified
// Google ID token. Subject is Google's stable account identifier and
// is what the rest of the system keys users on.
type GoogleClaims struct {
    Subject string
    Email   string
    Name    string
}

// GoogleVerifier validates Google-issued ID tokens against a fixed
// OAuth client audience.
type GoogleVerifier struct {
    audience string
}

// NewGoogleVerifier returns a verifier bound to the given OAuth client ID.
func NewGoogleVerifier(audience string) *GoogleVerifier {
    return &GoogleVerifier{audience: audience}
}

// Verify checks the token's signature, issuer, audience and expiry via
// Google's certificates and returns the identity claims.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (GoogleClaims, error) {
    raw := strings.TrimSpace(rawToken)
    if raw == "" {
        return GoogleClaims{}, errors.New("empty id token")
    }
    payload, err := idtoken.Validate(ctx, raw, v.audience)
    if err != nil {
        return GoogleClaims{}, err
    }
    claims := GoogleClaims{Subject: payload.Subject}
    if email, ok := payload.Claims["email"].(string); ok {
        claims.Email = email
    }
    if name, ok := payload.Claims["name"].(string); ok {
        claims.Name = name
    }
    if claims.Subject == "" {
        return GoogleClaims{}, errors.New("id token missing subject")
    }
    return claims, nil
}
