package returns

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const refSuffixChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

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
