package invoice

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateNumber returns a human readable invoice number in the form
// INV-<6 digit timestamp>-<3 digit random>. Not guaranteed globally unique
// but practically so; the ULID on the record is the real identity.
func GenerateNumber(now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	return fmt.Sprintf("INV-%s-%03d", millis[len(millis)-6:], rand.Intn(1000))
}
