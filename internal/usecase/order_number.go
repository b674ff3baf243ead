package usecase

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const base36Digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// 注文番号の試行回数（unique違反時に振り直す）
const orderNumberAttempts = 3

// ORD-<unix msのbase36>-<ランダム4桁>
func NewOrderNumber(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	var suffix [4]byte
	for i := range suffix {
		suffix[i] = base36Digits[rand.IntN(len(base36Digits))]
	}
	return "ORD-" + ts + "-" + string(suffix[:])
}
