// Package payments simulates the checkout payment step. Nothing is charged;
// details are validated and processing succeeds after a fixed delay.
package payments

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"eventhub/pkg/idgen"
	"eventhub/pkg/money"
)

// Supported payment methods.
const (
	MethodCreditCard = "Credit Card"
	MethodGCash      = "GCash"
	MethodPayMaya    = "PayMaya"
)

var (
	ErrUnsupportedMethod   = errors.New("unsupported payment method")
	ErrInvalidCardNumber   = errors.New("invalid card number")
	ErrInvalidExpiry       = errors.New("invalid expiry date (MM/YY)")
	ErrInvalidCVV          = errors.New("invalid CVV")
	ErrInvalidMobileNumber = errors.New("invalid mobile number")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// Methods lists the accepted methods in display order.
func Methods() []string {
	return []string{MethodCreditCard, MethodGCash, MethodPayMaya}
}

// Details is what the customer typed at checkout. Card fields apply to
// credit cards, MobileNumber to wallets.
type Details struct {
	Method       string `json:"method" binding:"required"`
	CardNumber   string `json:"card_number,omitempty"`
	CardName     string `json:"card_name,omitempty"`
	Expiry       string `json:"expiry,omitempty"`
	CVV          string `json:"cvv,omitempty"`
	MobileNumber string `json:"mobile_number,omitempty"`
}

type cardInput struct {
	Number string `validate:"len=16,numeric"`
	Expiry string `validate:"mmyy"`
	CVV    string `validate:"len=3,numeric"`
}

type mobileInput struct {
	Number string `validate:"len=11,numeric"`
}

var expiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("mmyy", func(fl validator.FieldLevel) bool {
		return expiryPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the details for the chosen method against the amount due.
func Validate(d Details, amount money.Amount) error {
	switch d.Method {
	case MethodCreditCard:
		return validateCard(d)
	case MethodGCash, MethodPayMaya:
		return validateMobile(d, amount)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, d.Method)
	}
}

func validateCard(d Details) error {
	in := cardInput{
		Number: strings.ReplaceAll(d.CardNumber, " ", ""),
		Expiry: strings.TrimSpace(d.Expiry),
		CVV:    strings.TrimSpace(d.CVV),
	}
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].Field() {
	case "Number":
		return ErrInvalidCardNumber
	case "Expiry":
		return ErrInvalidExpiry
	default:
		return ErrInvalidCVV
	}
}

func validateMobile(d Details, amount money.Amount) error {
	if err := validate.Struct(mobileInput{Number: strings.TrimSpace(d.MobileNumber)}); err != nil {
		return ErrInvalidMobileNumber
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Receipt is the outcome of a simulated charge.
type Receipt struct {
	Method      string       `json:"method"`
	Amount      money.Amount `json:"amount"`
	Reference   string       `json:"reference"`
	ProcessedAt time.Time    `json:"processed_at"`
	Message     string       `json:"message"`
}

// Processor simulates a payment gateway.
type Processor struct {
	delay time.Duration
	now   func() time.Time
}

func NewProcessor(delay time.Duration) *Processor {
	return &Processor{delay: delay, now: time.Now}
}

// Process validates the details, waits for the configured delay and always
// succeeds unless ctx is done first.
func (p *Processor) Process(ctx context.Context, d Details, amount money.Amount) (*Receipt, error) {
	if err := Validate(d, amount); err != nil {
		return nil, err
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("payment interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}

	now := p.now()
	return &Receipt{
		Method:      d.Method,
		Amount:      amount,
		Reference:   idgen.TransactionID(now),
		ProcessedAt: now,
		Message:     "Payment successful",
	}, nil
}

// IsInvalid reports whether err is a rejection of the customer's details.
func IsInvalid(err error) bool {
	for _, target := range []error{
		ErrUnsupportedMethod, ErrInvalidCardNumber, ErrInvalidExpiry,
		ErrInvalidCVV, ErrInvalidMobileNumber, ErrInvalidAmount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
