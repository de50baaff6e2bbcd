// Package tui is the terminal seat picker: it renders an event's seat map,
// keeps a selection session in sync with the cursor and commits it.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"eventhub/internal/bookings"
	"eventhub/internal/events"
	"eventhub/internal/payments"
	"eventhub/internal/seatmap"
	"eventhub/internal/selection"
	"eventhub/internal/users"
	"eventhub/pkg/money"
)

type appState int

const (
	stateLoading appState = iota
	stateSelecting
	stateCommitting
	stateBooked
	stateError
)

// EventLoader reads the live event.
type EventLoader interface {
	GetEvent(ctx context.Context, id int64) (*events.Event, error)
}

// PaymentProcessor charges the selection total before commit.
type PaymentProcessor interface {
	Process(ctx context.Context, details payments.Details, amount money.Amount) (*payments.Receipt, error)
}

// Config wires the picker to the booking engine.
type Config struct {
	EventID   int64
	User      *users.User
	Payment   payments.Details
	Events    EventLoader
	Ledger    bookings.Service
	Processor PaymentProcessor
}

type Model struct {
	cfg Config

	state   appState
	err     error
	notice  string
	event   *events.Event
	session *selection.Session
	booking *bookings.Booking

	row, col int
}

type eventMsg struct {
	event *events.Event
	err   error
}

type commitMsg struct {
	booking *bookings.Booking
	err     error
}

func New(cfg Config) Model {
	return Model{cfg: cfg, state: stateLoading}
}

func (m Model) Init() tea.Cmd {
	return m.loadEventCmd()
}

func (m Model) loadEventCmd() tea.Cmd {
	loader, id := m.cfg.Events, m.cfg.EventID
	return func() tea.Msg {
		e, err := loader.GetEvent(context.Background(), id)
		return eventMsg{event: e, err: err}
	}
}

// commitCmd runs payment then the ledger commit for the current selection.
func (m Model) commitCmd() tea.Cmd {
	cfg, sel := m.cfg, m.session
	total := sel.Summary().Total
	return func() tea.Msg {
		ctx := context.Background()
		receipt, err := cfg.Processor.Process(ctx, cfg.Payment, total)
		if err != nil {
			return commitMsg{err: err}
		}
		b, err := cfg.Ledger.Commit(ctx, cfg.User.ID, cfg.EventID, sel, receipt.Method)
		return commitMsg{booking: b, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m.handleEvent(msg), nil

	case commitMsg:
		return m.handleCommit(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleEvent(msg eventMsg) Model {
	if msg.err != nil {
		m.state, m.err = stateError, msg.err
		return m
	}

	// Keep whatever is still pickable from the previous selection.
	var keep []string
	if m.session != nil {
		keep = m.session.SeatIDs()
	}
	m.event = msg.event
	m.session, _ = selection.FromSeatIDs(m.event, keep)
	m.state = stateSelecting
	m.clampCursor()
	return m
}

func (m Model) handleCommit(msg commitMsg) (tea.Model, tea.Cmd) {
	var taken *bookings.SeatAlreadyTakenError
	switch {
	case msg.err == nil:
		m.state, m.booking = stateBooked, msg.booking
		return m, nil
	case errors.As(msg.err, &taken):
		m.state = stateLoading
		m.notice = "Seats no longer available: " + strings.Join(taken.SeatIDs, ", ")
		return m, m.loadEventCmd()
	case payments.IsInvalid(msg.err):
		m.state = stateSelecting
		m.notice = "Payment rejected: " + msg.err.Error()
		return m, nil
	default:
		m.state, m.err = stateError, msg.err
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}
	if m.state != stateSelecting {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		m.row--
	case "down", "j":
		m.row++
	case "left", "h":
		m.col--
	case "right", "l":
		m.col++
	case " ", "x":
		if seat := m.cursorSeat(); seat != nil {
			if m.session.Toggle(seat.ID) {
				m.notice = ""
			} else {
				m.notice = seat.ID + " is already taken"
			}
		}
	case "c":
		m.session.Clear()
		m.notice = ""
	case "enter":
		switch {
		case m.session.Len() == 0:
			m.notice = "Pick at least one seat"
		case m.cfg.User == nil:
			m.notice = "Sign in with eventctl login to book"
		default:
			m.state = stateCommitting
			m.notice = ""
			return m, m.commitCmd()
		}
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) clampCursor() {
	if m.event == nil || len(m.event.SeatMap) == 0 {
		m.row, m.col = 0, 0
		return
	}
	m.row = clamp(m.row, 0, len(m.event.SeatMap)-1)
	m.col = clamp(m.col, 0, len(m.event.SeatMap[m.row])-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

func (m Model) cursorSeat() *seatmap.Seat {
	if m.event == nil || m.row >= len(m.event.SeatMap) || m.col >= len(m.event.SeatMap[m.row]) {
		return nil
	}
	return &m.event.SeatMap[m.row][m.col]
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	occupiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	stageStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))

	tierStyles = map[seatmap.Tier]lipgloss.Style{
		seatmap.TierVIP:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		seatmap.TierPremium:  lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		seatmap.TierStandard: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
)

func (m Model) View() string {
	switch m.state {
	case stateLoading:
		return "Loading seat map...\n"
	case stateError:
		return errorStyle.Render(m.err.Error()) + "\n\n" + faintStyle.Render("Press q to quit.") + "\n"
	case stateBooked:
		return m.renderReceipt()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.event.Title))
	b.WriteString("\n" + faintStyle.Render(fmt.Sprintf("%s %s  %s", m.event.Date, m.event.Time, m.event.Location)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSeatMap(), "  ", m.renderSummary()))
	b.WriteString("\n")
	if m.state == stateCommitting {
		b.WriteString("\n" + noticeStyle.Render("Processing payment..."))
	}
	if m.notice != "" {
		b.WriteString("\n" + noticeStyle.Render(m.notice))
	}
	b.WriteString("\n" + faintStyle.Render("arrows move  space toggle  c clear  enter book  q quit") + "\n")
	return b.String()
}

func (m Model) renderSeatMap() string {
	var b strings.Builder
	width := 0
	for r, row := range m.event.SeatMap {
		if len(row) > 0 {
			fmt.Fprintf(&b, "%-3s ", fmt.Sprintf("R%d", row[0].Row))
		}
		for c, seat := range row {
			cell := m.seatCell(seat)
			if r == m.row && c == m.col {
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell)
			if c < len(row)-1 {
				b.WriteString(" ")
			}
		}
		width = max(width, len(row)*3-1)
		b.WriteString("\n")
	}
	b.WriteString("\n    " + stageStyle.Render(center("STAGE", width)) + "\n")
	return b.String()
}

func (m Model) seatCell(seat seatmap.Seat) string {
	switch {
	case seat.Occupied:
		return occupiedStyle.Render("XX")
	case m.session.IsSelected(seat.ID):
		return selectedStyle.Render("[]")
	default:
		return tierStyles[seat.Tier].Render("[]")
	}
}

func (m Model) renderSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your selection") + "\n")
	if seat := m.cursorSeat(); seat != nil {
		b.WriteString(faintStyle.Render(fmt.Sprintf("%s %s %s", seat.ID, seat.Tier, money.Format(m.event.PriceFor(seat.Tier)))) + "\n")
	}
	b.WriteString("\n")
	seats := m.session.Seats()
	if len(seats) == 0 {
		b.WriteString(faintStyle.Render("No seats selected") + "\n")
	}
	for _, s := range seats {
		fmt.Fprintf(&b, "%-6s %-9s %12s\n", s.ID, s.Tier, money.Format(s.Price))
	}
	q := m.session.Summary()
	fmt.Fprintf(&b, "\n%-16s %12s\n", "Subtotal", money.Format(q.Subtotal))
	fmt.Fprintf(&b, "%-16s %12s\n", "Service fee (5%)", money.Format(q.ServiceFee))
	fmt.Fprintf(&b, "%-16s %12s\n", "Total", money.Format(q.Total))
	fmt.Fprintf(&b, "\n%d of %d seats available", m.event.AvailableSeats, m.event.TotalSeats)

	for _, tier := range seatmap.Tiers() {
		fmt.Fprintf(&b, "\n%s %s %s", tierStyles[tier].Render("[]"), tier, money.Format(m.event.PriceFor(tier)))
	}
	return panelStyle.Render(b.String())
}

func (m Model) renderReceipt() string {
	bk := m.booking
	var b strings.Builder
	b.WriteString(titleStyle.Render("Booking confirmed") + "\n\n")
	fmt.Fprintf(&b, "Event        %s\n", bk.EventTitle)
	fmt.Fprintf(&b, "Seats        %s\n", strings.Join(bk.SeatIDs(), ", "))
	fmt.Fprintf(&b, "Payment      %s\n", bk.PaymentMethod)
	fmt.Fprintf(&b, "Total        %s\n", money.Format(bk.TotalAmount))
	fmt.Fprintf(&b, "Transaction  %s\n", bk.TransactionID)
	return panelStyle.Render(b.String()) + "\n" + faintStyle.Render("Press q to quit.") + "\n"
}

func center(s string, width int) string {
	if width <= len(s) {
		return s
	}
	pad := width - len(s)
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// Booking is the committed booking once the picker has finished, if any.
func (m Model) Booking() *bookings.Booking {
	return m.booking
}
