package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber returns ORD-<unix millis>-<5 base36 chars>. Uniqueness
// is not checked against the store.
func GenerateOrderNumber(now time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		suffix[i] = base36Upper[rand.IntN(len(base36Upper))]
	}

	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
