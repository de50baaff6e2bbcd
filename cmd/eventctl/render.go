package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/internal/seatmap"
	"eventhub/pkg/money"
)

func newTable(out io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func renderEvents(out io.Writer, list []events.Event) {
	t := newTable(out, table.Row{"ID", "Title", "Date", "Category", "From", "Available", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 32},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	for _, e := range list {
		t.AppendRow(table.Row{
			e.ID,
			e.Title,
			e.Date + " " + e.Time,
			e.Category,
			money.Format(e.Price),
			fmt.Sprintf("%d/%d", e.AvailableSeats, e.TotalSeats),
			e.Status(),
		})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d events", len(list))})
	t.Render()
}

func renderEvent(out io.Writer, e *events.Event) {
	fmt.Fprintf(out, "%s (#%d)\n%s %s at %s\n\n", e.Title, e.ID, e.Date, e.Time, e.Location)

	prices := newTable(out, table.Row{"Tier", "Price"})
	for _, tier := range seatmap.Tiers() {
		prices.AppendRow(table.Row{tier, money.Format(e.PriceFor(tier))})
	}
	prices.Render()

	fmt.Fprintln(out)
	fmt.Fprint(out, seatMapText(e.SeatMap))
	fmt.Fprintf(out, "\n%d of %d seats available\n", e.AvailableSeats, e.TotalSeats)
}

// seatMapText draws one line per row. Available seats show their tier
// initial, occupied seats show x.
func seatMapText(g seatmap.Grid) string {
	var b strings.Builder
	for _, row := range g {
		if len(row) == 0 {
			continue
		}
		fmt.Fprintf(&b, "R%-3d", row[0].Row)
		for _, s := range row {
			mark := string(s.Tier)[:1]
			if s.Occupied {
				mark = "x"
			}
			b.WriteString(" " + mark)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func renderBookings(out io.Writer, list []bookings.Booking, customers map[int64]string) {
	t := newTable(out, table.Row{"ID", "Transaction", "Event", "Customer", "Seats", "Date", "Amount", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: 24},
		{Number: 7, Align: text.AlignRight},
	})
	var total money.Amount
	for _, b := range list {
		customer := customers[b.UserID]
		if customer == "" {
			customer = "N/A"
		}
		if b.IsConfirmed() {
			total += b.TotalAmount
		}
		t.AppendRow(table.Row{
			b.ID,
			b.TransactionID,
			b.EventTitle,
			customer,
			strings.Join(b.SeatIDs(), ", "),
			b.BookingDate.Format("2006-01-02"),
			money.Format(b.TotalAmount),
			b.Status,
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("%d bookings", len(list)), "Confirmed", money.Format(total)})
	t.Render()
}
