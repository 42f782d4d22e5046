package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrAccountInactive       = errors.New("this account has been deactivated")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrTokenExpired          = errors.New("token has expired")
	ErrRefreshTokenRevoked   = errors.New("refresh token has been revoked")
	ErrUserNotFound          = errors.New("user not found")
	ErrFingerprintRequired   = errors.New("a device fingerprint is required to sign in")
	ErrDevicePendingApproval = errors.New("this device is awaiting administrator approval")
	ErrOAuthNotConfigured    = errors.New("google sign-in is not configured")
	ErrOAuthEmailNotVerified = errors.New("google account email is not verified")
	ErrOAuthStateMismatch    = errors.New("oauth state mismatch")
)
