package utils

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// GenerateBusinessNumber produces a human-readable record code of the form
// PREFIX-<base36 timestamp>-<3 base36 chars>, uppercase, e.g. ORD-M2K3F1A9-X7Q.
// The format is not collision-proof; the database unique constraint is the
// authority, and callers retry with a fresh number on a duplicate-key insert.
func GenerateBusinessNumber(prefix string) string {
	timestamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	random := strings.ToUpper(randomBase36(3))
	return fmt.Sprintf("%s-%s-%s", prefix, timestamp, random)
}

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(base36Chars[rand.Intn(len(base36Chars))])
	}
	return b.String()
}
