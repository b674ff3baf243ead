package usecase

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-[0-9A-Z]+-[0-9A-Z]{4}$`)

func TestNewOrderNumber_Format(t *testing.T) {
	n := NewOrderNumber(checkoutNow)
	assert.Regexp(t, orderNumberPattern, n)
}

func TestNewOrderNumber_VariesWithinSameMillisecond(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[NewOrderNumber(checkoutNow)] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
