package bookings

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/selection"
	"eventhub/pkg/money"
)

func TestWriteCSVFallsBackToNA(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Booking{{
		TransactionID: "TXN_1_AAAAAAAA",
		UserID:        42,
		Seats:         []selection.SeatSnapshot{{ID: "R3C3"}},
		BookingDate:   time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		TotalAmount:   money.FromCents(123456),
		Status:        StatusCancelled,
	}}, nil)
	require.NoError(t, err)

	assert.Equal(t,
		"Transaction ID,Event,Customer,Seats,Booking Date,Amount,Payment Method,Status\n"+
			"TXN_1_AAAAAAAA,N/A,N/A,R3C3,2026-01-02,\"₱1,234.56\",N/A,cancelled\n",
		buf.String())
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "bookings-export-2026-10-14.csv", ExportFilename(time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)))
}
