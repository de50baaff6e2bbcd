package bookings

import (
	"encoding/csv"
	"io"
	"strings"
	"time"

	"eventhub/pkg/money"
)

const notAvailable = "N/A"

var exportHeader = []string{
	"Transaction ID", "Event", "Customer", "Seats", "Booking Date", "Amount", "Payment Method", "Status",
}

// ExportFilename names a CSV export taken on day.
func ExportFilename(day time.Time) string {
	return "bookings-export-" + day.Format("2006-01-02") + ".csv"
}

// WriteCSV writes one row per booking. customers maps user ids to display names.
func WriteCSV(w io.Writer, list []Booking, customers map[int64]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for i := range list {
		b := &list[i]
		if err := cw.Write([]string{
			b.TransactionID,
			orNA(b.EventTitle),
			orNA(customers[b.UserID]),
			strings.Join(b.SeatIDs(), ", "),
			b.BookingDate.Format("2006-01-02"),
			money.Format(b.TotalAmount),
			orNA(b.PaymentMethod),
			string(b.Status),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
