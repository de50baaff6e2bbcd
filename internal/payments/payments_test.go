package payments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/pkg/money"
)

func TestValidate(t *testing.T) {
	card := Details{Method: MethodCreditCard, CardNumber: "4111 1111 1111 1111", Expiry: "12/27", CVV: "123"}
	due := money.FromUnits(6090)

	tests := []struct {
		name    string
		details Details
		amount  money.Amount
		wantErr error
	}{
		{"valid card", card, due, nil},
		{"card too short", Details{Method: MethodCreditCard, CardNumber: "4111", Expiry: "12/27", CVV: "123"}, due, ErrInvalidCardNumber},
		{"card with letters", Details{Method: MethodCreditCard, CardNumber: "4111 1111 1111 111a", Expiry: "12/27", CVV: "123"}, due, ErrInvalidCardNumber},
		{"bad expiry", Details{Method: MethodCreditCard, CardNumber: "4111111111111111", Expiry: "1227", CVV: "123"}, due, ErrInvalidExpiry},
		{"bad cvv", Details{Method: MethodCreditCard, CardNumber: "4111111111111111", Expiry: "12/27", CVV: "12"}, due, ErrInvalidCVV},
		{"valid gcash", Details{Method: MethodGCash, MobileNumber: "09171234567"}, due, nil},
		{"valid paymaya", Details{Method: MethodPayMaya, MobileNumber: "09181234567"}, due, nil},
		{"short mobile", Details{Method: MethodGCash, MobileNumber: "0917123"}, due, ErrInvalidMobileNumber},
		{"zero amount", Details{Method: MethodPayMaya, MobileNumber: "09181234567"}, 0, ErrInvalidAmount},
		{"unknown method", Details{Method: "Cash"}, due, ErrUnsupportedMethod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.details, tt.amount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcess(t *testing.T) {
	p := NewProcessor(0)
	receipt, err := p.Process(context.Background(), Details{Method: MethodGCash, MobileNumber: "09171234567"}, money.FromUnits(100))
	require.NoError(t, err)
	assert.Equal(t, MethodGCash, receipt.Method)
	assert.True(t, strings.HasPrefix(receipt.Reference, "TXN_"))
	assert.Equal(t, "Payment successful", receipt.Message)
}

func TestProcessRejectsInvalidDetails(t *testing.T) {
	p := NewProcessor(time.Hour)
	_, err := p.Process(context.Background(), Details{Method: MethodGCash}, money.FromUnits(100))
	assert.ErrorIs(t, err, ErrInvalidMobileNumber)
}

func TestProcessHonoursCancellation(t *testing.T) {
	p := NewProcessor(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, Details{Method: MethodGCash, MobileNumber: "09171234567"}, money.FromUnits(100))
	assert.ErrorIs(t, err, context.Canceled)
}
