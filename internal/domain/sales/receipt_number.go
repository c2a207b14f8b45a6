package sales

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const refSuffixChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateReceiptNumber produces a receipt reference in the shop's
// established format: RCP-<base36 timestamp>-<4 random chars>.
func GenerateReceiptNumber() string {
	return "RCP-" + base36Now() + "-" + randomSuffix(4)
}

func base36Now() string {
	return strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = refSuffixChars[rand.Intn(len(refSuffixChars))]
	}
	return string(b)
}
