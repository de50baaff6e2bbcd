// Package idgen produces identifiers that are unique for the lifetime of a process.
package idgen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionID returns an id of the form TXN_{unixMillis}_{8 hex}. The random
// suffix keeps ids distinct when several are minted within the same millisecond.
func TransactionID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TXN_%d_%s", now.UnixMilli(), suffix)
}

// RequestID returns a random request identifier.
func RequestID() string {
	return uuid.NewString()
}

// NextSequential returns a time-based id strictly greater than last.
func NextSequential(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}
