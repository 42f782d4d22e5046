package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/device"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/jwt"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	users map[string]user.User // keyed by email
}

func (f *fakeUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.Email] = u
	return u, nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.users[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u user.User) error { return nil }
func (f *fakeUserRepository) Delete(ctx context.Context, id string) error   { return nil }
func (f *fakeUserRepository) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

type fakeDeviceRepository struct {
	devices []device.DeviceFingerprint
	nextID  int
}

func (f *fakeDeviceRepository) Create(ctx context.Context, fp device.DeviceFingerprint) (device.DeviceFingerprint, error) {
	f.nextID++
	fp.ID = fmt.Sprintf("device-%d", f.nextID)
	f.devices = append(f.devices, fp)
	return fp, nil
}

func (f *fakeDeviceRepository) GetByID(ctx context.Context, id string) (device.DeviceFingerprint, error) {
	for _, fp := range f.devices {
		if fp.ID == id {
			return fp, nil
		}
	}
	return device.DeviceFingerprint{}, device.ErrDeviceNotFound
}

func (f *fakeDeviceRepository) GetByUserAndFingerprint(ctx context.Context, userID string, fingerprint string) (*device.DeviceFingerprint, error) {
	for _, fp := range f.devices {
		if fp.UserID == userID && fp.Fingerprint == fingerprint {
			found := fp
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeDeviceRepository) List(ctx context.Context, filter device.ListDevicesFilter) ([]device.DeviceFingerprint, error) {
	return f.devices, nil
}

func (f *fakeDeviceRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	for i := range f.devices {
		if f.devices[i].ID == id {
			f.devices[i].Status = status
			return nil
		}
	}
	return device.ErrDeviceNotFound
}

func (f *fakeDeviceRepository) Delete(ctx context.Context, id string) error { return nil }

type fakeJWTRepository struct {
	revoked map[string]bool
	stored  []string
}

func (f *fakeJWTRepository) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	f.stored = append(f.stored, token)
	return nil
}

func (f *fakeJWTRepository) IsRefreshTokenRevoked(ctx context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func (f *fakeJWTRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeJWTRepository) DeleteExpired(ctx context.Context) (int, error) { return 0, nil }

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestAuthService(t *testing.T) (*AuthServiceImpl, *fakeUserRepository, *fakeDeviceRepository, *fakeJWTRepository) {
	t.Helper()

	users := &fakeUserRepository{users: map[string]user.User{}}
	devices := &fakeDeviceRepository{}
	tokens := &fakeJWTRepository{revoked: map[string]bool{}}
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")

	svc := NewAuthService(nil, users, devices, jwtService, tokens, nil).(*AuthServiceImpl)
	svc.withTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}
	return svc, users, devices, tokens
}

func seedUser(t *testing.T, users *fakeUserRepository, id, email string, role user.Role, active bool) {
	t.Helper()
	users.users[email] = user.User{
		ID:           id,
		Name:         "Test User",
		Email:        email,
		PasswordHash: mustHash(t, "correct-password"),
		Role:         role,
		IsActive:     active,
	}
}

func TestLoginAdminSkipsDeviceGate(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)
	seedUser(t, users, "admin-1", "admin@example.com", user.RoleAdmin, true)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "admin", resp.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)
	seedUser(t, users, "user-1", "dina@example.com", user.RoleEmployee, true)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:       "dina@example.com",
		Password:    "wrong-password",
		Fingerprint: "fp-1",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown account reads the same as a wrong password.
	_, err = svc.Login(context.Background(), auth.LoginRequest{
		Email:       "nobody@example.com",
		Password:    "correct-password",
		Fingerprint: "fp-1",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)
	seedUser(t, users, "user-1", "dina@example.com", user.RoleEmployee, false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:       "dina@example.com",
		Password:    "correct-password",
		Fingerprint: "fp-1",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestLoginDeviceGate(t *testing.T) {
	svc, users, devices, _ := newTestAuthService(t)
	seedUser(t, users, "user-1", "dina@example.com", user.RoleEmployee, true)
	ctx := context.Background()

	// No fingerprint at all.
	_, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "dina@example.com",
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrFingerprintRequired)

	// Unknown fingerprint: queued as pending, login refused.
	_, err = svc.Login(ctx, auth.LoginRequest{
		Email:       "dina@example.com",
		Password:    "correct-password",
		Fingerprint: "fp-1",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrDevicePendingApproval)
	require.Len(t, devices.devices, 1)
	assert.Equal(t, device.StatusPending, devices.devices[0].Status)

	// Still pending on the next attempt; no duplicate queued.
	_, err = svc.Login(ctx, auth.LoginRequest{
		Email:       "dina@example.com",
		Password:    "correct-password",
		Fingerprint: "fp-1",
	}, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrDevicePendingApproval)
	assert.Len(t, devices.devices, 1)

	// Approved: login completes.
	require.NoError(t, devices.UpdateStatus(ctx, devices.devices[0].ID, device.StatusApproved))
	resp, err := svc.Login(ctx, auth.LoginRequest{
		Email:       "dina@example.com",
		Password:    "correct-password",
		Fingerprint: "fp-1",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshRotation(t *testing.T) {
	svc, users, _, tokens := newTestAuthService(t)
	seedUser(t, users, "admin-1", "admin@example.com", user.RoleAdmin, true)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEmpty(t, refreshed.RefreshToken)

	// The presented token was revoked by the rotation.
	assert.True(t, tokens.revoked[login.RefreshToken])
	_, err = svc.Refresh(ctx, login.RefreshToken, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, users, _, _ := newTestAuthService(t)
	seedUser(t, users, "admin-1", "admin@example.com", user.RoleAdmin, true)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, login.AccessToken, auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.Refresh(ctx, "garbage", auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokes(t *testing.T) {
	svc, users, _, tokens := newTestAuthService(t)
	seedUser(t, users, "admin-1", "admin@example.com", user.RoleAdmin, true)
	ctx := context.Background()

	login, err := svc.Login(ctx, auth.LoginRequest{
		Email:    "admin@example.com",
		Password: "correct-password",
	}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken))
	assert.True(t, tokens.revoked[login.RefreshToken])

	// Logging out without a cookie is a no-op, not an error.
	assert.NoError(t, svc.Logout(ctx, ""))
}
