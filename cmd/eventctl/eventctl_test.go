package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/auth"
	"eventhub/internal/bookings"
	"eventhub/internal/shared/config"
	"eventhub/internal/storage"
	"eventhub/pkg/logger"
)

func newTestApp() (*app, *bytes.Buffer) {
	var out bytes.Buffer
	return &app{
		cfg:   &config.Config{},
		log:   logger.Nop(),
		out:   &out,
		store: storage.NewMemoryStore(),
	}, &out
}

func run(t *testing.T, a *app, out *bytes.Buffer, args ...string) (string, error) {
	t.Helper()
	out.Reset()
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedAndListEvents(t *testing.T) {
	a, out := newTestApp()

	got, err := run(t, a, out, "seed", "--occupancy", "0", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, got, "Seeded 3 users and 3 events (0 seats occupied)")

	got, err = run(t, a, out, "events", "list")
	require.NoError(t, err)
	assert.Contains(t, got, "Summer Music Festival")
	assert.Contains(t, got, "150/150")
	assert.Contains(t, got, "₱3,500.00")

	got, err = run(t, a, out, "events", "list", "--category", "Conference")
	require.NoError(t, err)
	assert.Contains(t, got, "Tech Conference")
	assert.NotContains(t, got, "Summer Music Festival")

	got, err = run(t, a, out, "events", "show", "3")
	require.NoError(t, err)
	assert.Contains(t, got, "R1   V V V V V V V V V V")
	assert.Contains(t, got, "60 of 60 seats available")

	_, err = run(t, a, out, "seed", "--occupancy", "2")
	assert.Error(t, err)
}

func TestLoginBookCancelExport(t *testing.T) {
	a, out := newTestApp()
	_, err := run(t, a, out, "seed", "--occupancy", "0", "--seed", "3")
	require.NoError(t, err)

	_, err = run(t, a, out, "book", "1", "R1C1")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = run(t, a, out, "login", "john@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	got, err := run(t, a, out, "login", "JOHN@example.com", "password123")
	require.NoError(t, err)
	assert.Contains(t, got, "Signed in as John Doe")

	got, err = run(t, a, out, "book", "1", "R1C1", "R1C2", "--mobile", "09171234567")
	require.NoError(t, err)
	assert.Contains(t, got, "Booked R1C1, R1C2 for Summer Music Festival")
	assert.Contains(t, got, "Total ₱5,250.00")

	_, err = run(t, a, out, "book", "1", "R1C2", "--mobile", "09171234567")
	assert.ErrorContains(t, err, "seats no longer available: R1C2")

	got, err = run(t, a, out, "events", "list")
	require.NoError(t, err)
	assert.Contains(t, got, "148/150")

	list, err := a.ledger().ListUserBookings(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = run(t, a, out, "bookings", "cancel", "1")
	assert.ErrorIs(t, err, bookings.ErrBookingNotFound)
	got, err = run(t, a, out, "bookings", "cancel", strconv.FormatInt(list[0].ID, 10))
	require.NoError(t, err)
	assert.Contains(t, got, "is cancelled")

	got, err = run(t, a, out, "bookings", "export", "-o", "-")
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewBufferString(got)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "John Doe", rows[1][2])
	assert.Equal(t, "cancelled", rows[1][7])

	got, err = run(t, a, out, "bookings", "list", "--mine")
	require.NoError(t, err)
	assert.Contains(t, got, "1 bookings")

	got, err = run(t, a, out, "logout")
	require.NoError(t, err)
	_, err = run(t, a, out, "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}
