package payment

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	CardNumberMaxLen = 19 // 16 digits + 3 spaces
	ExpiryMaxLen     = 5
	CVVMaxLen        = 3
)

// MaskCardNumber removes all whitespace and inserts a space after every run
// of four digits that is followed by another digit. It never truncates.
func MaskCardNumber(raw string) string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	var b strings.Builder
	b.Grow(len(compact) + len(compact)/4)
	for i := 0; i < len(compact); {
		if i+4 < len(compact) && allDigits(compact[i:i+5]) {
			b.WriteString(compact[i : i+4])
			b.WriteByte(' ')
			i += 4
			continue
		}
		b.WriteByte(compact[i])
		i++
	}
	return b.String()
}

// MaskExpiry keeps digits only and shapes them as MM/YY. The second return
// value reports a complete value whose month is above 12.
func MaskExpiry(raw string) (string, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	value := digits
	if len(value) > 2 {
		value = value[:2] + "/" + value[2:min(len(value), 4)]
	}
	if len(value) > ExpiryMaxLen {
		value = value[:ExpiryMaxLen]
	}
	return value, len(value) == ExpiryMaxLen && monthOutOfRange(value[:2])
}

func monthOutOfRange(month string) bool {
	n, err := strconv.Atoi(month)
	if err != nil {
		return false
	}
	return n > 12
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
