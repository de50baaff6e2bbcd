package bookings

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"eventhub/internal/payments"
	"eventhub/internal/shared/middleware"
	"eventhub/internal/shared/utils/response"
	"eventhub/pkg/logger"
	"eventhub/pkg/money"
)

// PaymentProcessor charges the selection total before it is committed.
type PaymentProcessor interface {
	Process(ctx context.Context, details payments.Details, amount money.Amount) (*payments.Receipt, error)
}

// UserDirectory resolves customer names for admin views.
type UserDirectory interface {
	DisplayNames(ctx context.Context) (map[int64]string, error)
}

type Controller struct {
	service   Service
	payments  PaymentProcessor
	directory UserDirectory
	log       *logger.Logger
}

func NewController(service Service, processor PaymentProcessor, directory UserDirectory, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.GetDefault()
	}
	return &Controller{service: service, payments: processor, directory: directory, log: log}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	// Step 1: Build the selection from the live seat map
	sel, err := c.service.Prepare(ctx.Request.Context(), req.EventID, req.SeatIDs)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	// Step 2: Simulated payment for the selection total
	receipt, err := c.payments.Process(ctx.Request.Context(), req.Payment, sel.Summary().Total)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	// Step 3: Commit, revalidating availability
	booking, err := c.service.Commit(ctx.Request.Context(), userID, req.EventID, sel, req.Payment.Method)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	response.Created(ctx, "Booking confirmed successfully", BookingResponse{Booking: booking, Payment: receipt})
}

// Quote handles POST /api/v1/events/:id/quote
func (c *Controller) Quote(ctx *gin.Context) {
	eventID, ok := parseID(ctx, "Invalid event ID")
	if !ok {
		return
	}

	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	quote, err := c.service.Quote(ctx.Request.Context(), eventID, req.SeatIDs)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	response.OK(ctx, "Quote calculated", quote)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	bookingID, ok := parseID(ctx, "Invalid booking ID")
	if !ok {
		return
	}
	booking, err := c.service.GetBooking(ctx.Request.Context(), bookingID, actorOf(ctx))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	response.OK(ctx, "Booking retrieved successfully", booking)
}

// GetMyBookings handles GET /api/v1/bookings/me
func (c *Controller) GetMyBookings(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}
	list, err := c.service.ListUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	response.OK(ctx, "Bookings retrieved successfully", gin.H{
		"bookings": list,
		"count":    len(list),
	})
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	bookingID, ok := parseID(ctx, "Invalid booking ID")
	if !ok {
		return
	}
	booking, err := c.service.Cancel(ctx.Request.Context(), bookingID, actorOf(ctx))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	response.OK(ctx, "Booking cancelled successfully", booking)
}

// ListBookings handles GET /api/v1/bookings (admin)
func (c *Controller) ListBookings(ctx *gin.Context) {
	var query ListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}
	list, err := c.service.ListBookings(ctx.Request.Context(), query)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	names, err := c.customerNames(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	response.OK(ctx, "Bookings retrieved successfully", gin.H{
		"bookings":  list,
		"customers": names,
		"count":     len(list),
	})
}

// ExportBookings handles GET /api/v1/bookings/export (admin)
func (c *Controller) ExportBookings(ctx *gin.Context) {
	list, err := c.service.ListBookings(ctx.Request.Context(), ListQuery{})
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	names, err := c.customerNames(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", `attachment; filename="`+ExportFilename(time.Now())+`"`)
	ctx.Status(http.StatusOK)
	if err := WriteCSV(ctx.Writer, list, names); err != nil {
		c.log.ErrorWithContext(ctx.Request.Context(), "Failed to write bookings export", err, nil)
	}
}

func (c *Controller) customerNames(ctx context.Context) (map[int64]string, error) {
	if c.directory == nil {
		return map[int64]string{}, nil
	}
	return c.directory.DisplayNames(ctx)
}

func (c *Controller) writeError(ctx *gin.Context, err error) {
	var conflict *SeatAlreadyTakenError
	switch {
	case errors.As(err, &conflict):
		response.Error(ctx, http.StatusConflict, "Some seats are no longer available", ConflictDetails{SeatIDs: conflict.SeatIDs})
	case errors.Is(err, ErrEmptySelection):
		response.Error(ctx, http.StatusBadRequest, "Please select at least one seat", nil)
	case errors.Is(err, ErrDuplicateSeat):
		response.Error(ctx, http.StatusBadRequest, "Each seat can only be selected once", err.Error())
	case errors.Is(err, ErrInvalidEventReference):
		response.Error(ctx, http.StatusNotFound, "Event not found", nil)
	case errors.Is(err, ErrBookingNotFound):
		response.Error(ctx, http.StatusNotFound, "Booking not found", nil)
	case errors.Is(err, ErrForbidden):
		response.Error(ctx, http.StatusForbidden, "Access denied", nil)
	case payments.IsInvalid(err):
		response.Error(ctx, http.StatusBadRequest, "Payment details rejected", err.Error())
	default:
		c.log.LogHTTPError(ctx, err, http.StatusInternalServerError)
		response.Error(ctx, http.StatusInternalServerError, "Internal server error", nil)
	}
}

func actorOf(ctx *gin.Context) Actor {
	userID, _ := middleware.CurrentUserID(ctx)
	return Actor{UserID: userID, Admin: middleware.IsAdmin(ctx)}
}

func parseID(ctx *gin.Context, msg string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(ctx, http.StatusBadRequest, msg, nil)
		return 0, false
	}
	return id, true
}
