package allowedip

import (
	"context"
	"testing"

	"github.com/attendly/attendance-backend-go/internal/domain/allowedip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAllowedIPRepository struct {
	ips []allowedip.AllowedIP
}

func (f *fakeAllowedIPRepository) Create(ctx context.Context, ip allowedip.AllowedIP) (allowedip.AllowedIP, error) {
	for _, existing := range f.ips {
		if existing.Address == ip.Address {
			return allowedip.AllowedIP{}, allowedip.ErrAddressExists
		}
	}
	ip.ID = "ip-" + ip.Address
	f.ips = append(f.ips, ip)
	return ip, nil
}

func (f *fakeAllowedIPRepository) List(ctx context.Context) ([]allowedip.AllowedIP, error) {
	return f.ips, nil
}

func (f *fakeAllowedIPRepository) Delete(ctx context.Context, id string) error {
	for i, ip := range f.ips {
		if ip.ID == id {
			f.ips = append(f.ips[:i], f.ips[i+1:]...)
			return nil
		}
	}
	return allowedip.ErrAllowedIPNotFound
}

func TestAuthorizeEmptyList(t *testing.T) {
	ctx := context.Background()

	open := NewAllowedIPService(nil, &fakeAllowedIPRepository{}, true)
	allowed, err := open.Authorize(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, allowed, "empty allowlist with fail-open authorizes everyone")

	closed := NewAllowedIPService(nil, &fakeAllowedIPRepository{}, false)
	allowed, err = closed.Authorize(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, allowed, "empty allowlist with fail-closed authorizes no one")
}

func TestAuthorizeMembership(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAllowedIPRepository{}
	svc := NewAllowedIPService(nil, repo, true)

	_, err := svc.Add(ctx, allowedip.AddAllowedIPRequest{Address: "192.168.1.100", Description: "office"})
	require.NoError(t, err)

	allowed, err := svc.Authorize(ctx, "192.168.1.100")
	require.NoError(t, err)
	assert.True(t, allowed)

	// Once the list is non-empty, fail-open no longer applies.
	allowed, err = svc.Authorize(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAuthorizeNormalizesAddresses(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAllowedIPRepository{}
	svc := NewAllowedIPService(nil, repo, false)

	_, err := svc.Add(ctx, allowedip.AddAllowedIPRequest{Address: "2001:0db8::0001"})
	require.NoError(t, err)

	allowed, err := svc.Authorize(ctx, "2001:db8::1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAddRejectsInvalidAddress(t *testing.T) {
	svc := NewAllowedIPService(nil, &fakeAllowedIPRepository{}, true)

	_, err := svc.Add(context.Background(), allowedip.AddAllowedIPRequest{Address: "office-lan"})
	assert.Error(t, err)

	_, err = svc.Add(context.Background(), allowedip.AddAllowedIPRequest{Address: "192.168.1.1/24"})
	assert.Error(t, err)
}

func TestAddDuplicate(t *testing.T) {
	svc := NewAllowedIPService(nil, &fakeAllowedIPRepository{}, true)

	_, err := svc.Add(context.Background(), allowedip.AddAllowedIPRequest{Address: "10.0.0.50"})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), allowedip.AddAllowedIPRequest{Address: "10.0.0.50"})
	assert.ErrorIs(t, err, allowedip.ErrAddressExists)
}
