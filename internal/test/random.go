package test

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ordermesh/fulfillment/internal/domain/model"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomASCIIString returns a pseudo-random ASCII string within the provided bounds.
// When maxLen equals minLen the resulting string always has that exact length.
func RandomASCIIString(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen
	if maxLen > minLen {
		length += randomIntn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = asciiLetters[randomIntn(len(asciiLetters))]
	}
	return string(buf)
}

// RandomOrderItems produces a random non-empty item set with consistent
// totals, for property checks over the money identity.
func RandomOrderItems(maxItems int) []model.OrderItem {
	if maxItems < 1 {
		maxItems = 1
	}
	count := 1 + randomIntn(maxItems)
	items := make([]model.OrderItem, 0, count)
	for i := 0; i < count; i++ {
		quantity := int64(1 + randomIntn(5))
		unitPrice := int64(randomIntn(100_000))
		items = append(items, model.OrderItem{
			ProductID:  int64(1 + randomIntn(1000)),
			SellerID:   int64(1 + randomIntn(100)),
			Quantity:   quantity,
			UnitPrice:  unitPrice,
			TotalPrice: quantity * unitPrice,
		})
	}
	return items
}

// RandomAmount returns a non-negative amount in minor units below limit.
func RandomAmount(limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return int64(randomIntn(int(limit)))
}

func randomIntn(n int) int {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Intn(n)
}
