package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func createTestUser(t *testing.T, setup *TestDatabaseSetup, name, email string) user.User {
	t.Helper()

	repo := postgresql.NewUserRepository(setup.DB)
	created, err := repo.Create(context.Background(), user.User{
		Name:         name,
		Email:        email,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         user.RoleEmployee,
		IsActive:     true,
	})
	require.NoError(t, err)
	return created
}

func TestAttendanceRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	defer setup.Close()

	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	account := createTestUser(t, setup, "Dina Cahyani", "dina@example.com")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	created, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:         account.ID,
		Date:           mustDate(t, "2026-03-02"),
		MorningCheckIn: strPtr("09:00:00"),
		Status:         attendance.StatusPresent,
		IPAddress:      "192.168.1.100",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByUserAndDate(ctx, account.ID, "2026-03-02")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	require.NotNil(t, got.MorningCheckIn)
	assert.Equal(t, "09:00:00", *got.MorningCheckIn)
	assert.Nil(t, got.MorningCheckOut)
	require.NotNil(t, got.UserName)
	assert.Equal(t, "Dina Cahyani", *got.UserName)

	// A different day has no record
	none, err := repo.GetByUserAndDate(ctx, account.ID, "2026-03-03")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestAttendanceRepository_DuplicateDay(t *testing.T) {
	setup := NewTestDatabase(t)
	defer setup.Close()

	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	account := createTestUser(t, setup, "Raka Pradana", "raka@example.com")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	day := attendance.AttendanceDay{
		UserID:         account.ID,
		Date:           mustDate(t, "2026-03-02"),
		MorningCheckIn: strPtr("09:00:00"),
		Status:         attendance.StatusPresent,
		IPAddress:      "192.168.1.100",
	}

	_, err := repo.Create(ctx, day)
	require.NoError(t, err)

	_, err = repo.Create(ctx, day)
	assert.ErrorIs(t, err, attendance.ErrDayAlreadyExists)
}

func TestAttendanceRepository_UpdateAndStaleScan(t *testing.T) {
	setup := NewTestDatabase(t)
	defer setup.Close()

	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	account := createTestUser(t, setup, "Sari Wulandari", "sari@example.com")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	created, err := repo.Create(ctx, attendance.AttendanceDay{
		UserID:         account.ID,
		Date:           mustDate(t, "2026-03-02"),
		MorningCheckIn: strPtr("09:00:00"),
		Status:         attendance.StatusPresent,
		IPAddress:      "10.0.0.50",
	})
	require.NoError(t, err)

	// Checkout recorded but working_hours left empty: stale.
	created.MorningCheckOut = strPtr("13:00:00")
	require.NoError(t, repo.Update(ctx, created))

	stale, err := repo.ListStaleWorkingHours(ctx, 10)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, created.ID, stale[0].ID)

	wh := "04:00"
	created.WorkingHours = &wh
	require.NoError(t, repo.Update(ctx, created))

	stale, err = repo.ListStaleWorkingHours(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestAttendanceRepository_ListFilters(t *testing.T) {
	setup := NewTestDatabase(t)
	defer setup.Close()

	ctx := context.Background()
	require.NoError(t, setup.TruncateAllTables(ctx))

	alice := createTestUser(t, setup, "Alice", "alice@example.com")
	bob := createTestUser(t, setup, "Bob", "bob@example.com")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	seed := []attendance.AttendanceDay{
		{UserID: alice.ID, Date: mustDate(t, "2026-03-02"), MorningCheckIn: strPtr("09:00:00"), Status: attendance.StatusPresent, IPAddress: "10.0.0.1"},
		{UserID: alice.ID, Date: mustDate(t, "2026-03-03"), MorningCheckIn: strPtr("09:05:00"), Status: attendance.StatusPartial, IPAddress: "10.0.0.1"},
		{UserID: bob.ID, Date: mustDate(t, "2026-03-02"), MorningCheckIn: strPtr("08:55:00"), Status: attendance.StatusPresent, IPAddress: "10.0.0.2"},
	}
	for _, day := range seed {
		_, err := repo.Create(ctx, day)
		require.NoError(t, err)
	}

	status := attendance.StatusPresent
	days, total, err := repo.List(ctx, attendance.AttendanceFilter{
		Status: &status,
		Page:   1,
		Limit:  10,
		SortBy: "user_name", SortOrder: "asc",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, days, 2)
	assert.Equal(t, "Alice", *days[0].UserName)
	assert.Equal(t, "Bob", *days[1].UserName)

	mine, total, err := repo.ListByUser(ctx, alice.ID, attendance.MyAttendanceFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, mine, 2)
}
