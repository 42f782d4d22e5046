package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/device"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendance-backend-go/internal/pkg/oauth"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	device.DeviceRepository
	jwtService    jwt.Service
	jwtRepository postgresql.JWTRepository
	googleService oauth.GoogleService

	// withTx wraps multi-statement flows; swapped out in tests.
	withTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewAuthService(
	db *database.DB,
	userRepository user.UserRepository,
	deviceRepository device.DeviceRepository,
	jwtService jwt.Service,
	jwtRepository postgresql.JWTRepository,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &AuthServiceImpl{
		db:               db,
		UserRepository:   userRepository,
		DeviceRepository: deviceRepository,
		jwtService:       jwtService,
		jwtRepository:    jwtRepository,
		googleService:    googleService,
		withTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

func toUserResponse(account user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:       account.ID,
		Name:     account.Name,
		Email:    account.Email,
		Role:     string(account.Role),
		IsActive: account.IsActive,
	}
}

// checkDevice runs the fingerprint gate for a non-admin account. An
// unknown fingerprint is queued as pending so the admin can approve it;
// the login itself is refused until that happens.
func (a *AuthServiceImpl) checkDevice(ctx context.Context, account user.User, fingerprint string) error {
	if account.IsAdmin() {
		return nil
	}

	if fingerprint == "" {
		return auth.ErrFingerprintRequired
	}

	fp, err := a.DeviceRepository.GetByUserAndFingerprint(ctx, account.ID, fingerprint)
	if err != nil {
		return fmt.Errorf("failed to look up device fingerprint: %w", err)
	}

	if fp == nil {
		_, err := a.DeviceRepository.Create(ctx, device.DeviceFingerprint{
			UserID:      account.ID,
			Fingerprint: fingerprint,
			Status:      device.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to queue device fingerprint: %w", err)
		}
		return auth.ErrDevicePendingApproval
	}

	if fp.Status != device.StatusApproved {
		return auth.ErrDevicePendingApproval
	}

	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, account user.User, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	accessToken, accessExpiresAt, err := a.jwtService.GenerateAccessToken(account.ID, account.Email, account.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := a.jwtRepository.CreateRefreshToken(ctx, account.ID, refreshToken, refreshExpiresAt, session); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.LoginResponse{
		User:                  toUserResponse(account),
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	account, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if !account.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	if err := a.checkDevice(ctx, account, req.Fingerprint); err != nil {
		return auth.LoginResponse{}, err
	}

	return a.issueTokens(ctx, account, session)
}

// Refresh implements auth.AuthService. Rotation: the presented token is
// revoked and a fresh pair is issued.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string, session auth.SessionTrackingRequest) (auth.RefreshResponse, error) {
	userID, err := a.validateRefreshToken(ctx, refreshToken)
	if err != nil {
		return auth.RefreshResponse{}, err
	}

	account, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.RefreshResponse{}, auth.ErrUserNotFound
		}
		return auth.RefreshResponse{}, fmt.Errorf("failed to look up account: %w", err)
	}
	if !account.IsActive {
		return auth.RefreshResponse{}, auth.ErrAccountInactive
	}

	// Revoking the presented token and storing its replacement must not
	// come apart: a revoke without a replacement forces a re-login.
	var login auth.LoginResponse
	err = a.withTx(ctx, func(tx pgx.Tx) error {
		txCtx := postgresql.TxContext(ctx, tx)
		if err := a.jwtRepository.RevokeRefreshToken(txCtx, refreshToken); err != nil {
			return fmt.Errorf("failed to rotate refresh token: %w", err)
		}
		var err error
		login, err = a.issueTokens(txCtx, account, session)
		return err
	})
	if err != nil {
		return auth.RefreshResponse{}, err
	}

	return auth.RefreshResponse{
		AccessToken:           login.AccessToken,
		AccessTokenExpiresIn:  login.AccessTokenExpiresIn,
		RefreshToken:          login.RefreshToken,
		RefreshTokenExpiresIn: login.RefreshTokenExpiresIn,
	}, nil
}

func (a *AuthServiceImpl) validateRefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", auth.ErrInvalidToken
	}

	token, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		return "", auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", auth.ErrInvalidToken
	}

	revoked, err := a.jwtRepository.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	if revoked {
		return "", auth.ErrRefreshTokenRevoked
	}

	return userID, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return a.jwtRepository.RevokeRefreshToken(ctx, refreshToken)
}

// GoogleLoginURL implements auth.AuthService.
func (a *AuthServiceImpl) GoogleLoginURL(userAgent string) (string, error) {
	if a.googleService == nil || !a.googleService.Configured() {
		return "", auth.ErrOAuthNotConfigured
	}
	state := a.googleService.GenerateState(userAgent)
	return a.googleService.RedirectURL(state), nil
}

// GoogleCallback implements auth.AuthService. Google sign-in never
// provisions an account: the email must already exist and be active.
// The device gate does not apply; Google's own session is the second
// factor here.
func (a *AuthServiceImpl) GoogleCallback(ctx context.Context, code string, session auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	if a.googleService == nil || !a.googleService.Configured() {
		return auth.LoginResponse{}, auth.ErrOAuthNotConfigured
	}

	token, err := a.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}

	info, err := a.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to fetch google profile: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.LoginResponse{}, auth.ErrOAuthEmailNotVerified
	}

	account, err := a.UserRepository.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrUserNotFound
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up account: %w", err)
	}
	if !account.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	return a.issueTokens(ctx, account, session)
}
