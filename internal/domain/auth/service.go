package auth

import (
	"context"
)

// AuthService owns login, token rotation and the device-fingerprint
// gate. Non-admin logins from an unrecognized device are queued for
// approval instead of completing.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string, session SessionTrackingRequest) (RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	// GoogleLoginURL returns the redirect URL for the OAuth flow.
	GoogleLoginURL(userAgent string) (string, error)
	// GoogleCallback exchanges the authorization code and logs in the
	// matching, already-provisioned account.
	GoogleCallback(ctx context.Context, code string, session SessionTrackingRequest) (LoginResponse, error)
}
