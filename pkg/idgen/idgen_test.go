package idgen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransactionIDUniqueWithinSameTick(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	pattern := regexp.MustCompile(`^TXN_1700000000000_[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		id := TransactionID(now)
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id], "duplicate transaction id %s", id)
		seen[id] = true
	}
}

func TestNextSequential(t *testing.T) {
	now := time.UnixMilli(1000)
	assert.Equal(t, int64(1000), NextSequential(now, 0))
	assert.Equal(t, int64(1001), NextSequential(now, 1000))
	assert.Equal(t, int64(1501), NextSequential(now, 1500))
}
