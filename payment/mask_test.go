package payment

import (
	"math/rand"
	"regexp"
	"strings"
	"testing"
)

func TestMaskCardNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "partial group", raw: "123", want: "123"},
		{name: "full group without follower", raw: "1234", want: "1234"},
		{name: "group with follower", raw: "12345", want: "1234 5"},
		{name: "sixteen digits", raw: "1234567890123456", want: "1234 5678 9012 3456"},
		{name: "already masked", raw: "1234 5678 9012 3456", want: "1234 5678 9012 3456"},
		{name: "irregular spacing", raw: " 12 3456\t78 ", want: "1234 5678"},
		{name: "non digit breaks run", raw: "12a45678", want: "12a4567 8"},
		{name: "no truncation", raw: "12345678901234567", want: "1234 5678 9012 3456 7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskCardNumber(tt.raw); got != tt.want {
				t.Fatalf("MaskCardNumber(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMaskCardNumber_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		digits := randomDigits(rng, rng.Intn(20))
		once := MaskCardNumber(digits)
		twice := MaskCardNumber(once)
		if once != twice {
			t.Fatalf("mask not idempotent for %q: %q then %q", digits, once, twice)
		}
	}
}

func TestMaskExpiry(t *testing.T) {
	tests := []struct {
		raw      string
		want     string
		badMonth bool
	}{
		{raw: "", want: ""},
		{raw: "1", want: "1"},
		{raw: "12", want: "12"},
		{raw: "123", want: "12/3"},
		{raw: "1225", want: "12/25"},
		{raw: "12/25", want: "12/25"},
		{raw: "12/256", want: "12/25"},
		{raw: "ab", want: ""},
		{raw: "1a2b", want: "12"},
		{raw: "13/25", want: "13/25", badMonth: true},
		{raw: "13/2", want: "13/2"},
		{raw: "00/25", want: "00/25"},
	}
	for _, tt := range tests {
		got, badMonth := MaskExpiry(tt.raw)
		if got != tt.want || badMonth != tt.badMonth {
			t.Fatalf("MaskExpiry(%q) = (%q, %v), want (%q, %v)", tt.raw, got, badMonth, tt.want, tt.badMonth)
		}
	}
}

func TestMaskExpiry_ShapeAtEveryKeystroke(t *testing.T) {
	partial := regexp.MustCompile(`^\d{0,2}(/\d{0,2})?$`)
	complete := regexp.MustCompile(`^\d{2}/\d{2}$`)
	alphabet := "0123456789/ -x"
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 100; run++ {
		value := ""
		for step := 0; step < 12; step++ {
			if value != "" && rng.Intn(5) == 0 {
				value = value[:len(value)-1]
			} else {
				value += string(alphabet[rng.Intn(len(alphabet))])
			}
			value, _ = MaskExpiry(value)
			if len(value) > ExpiryMaxLen {
				t.Fatalf("value too long: %q", value)
			}
			if !partial.MatchString(value) {
				t.Fatalf("value %q does not match partial shape", value)
			}
			if len(value) == ExpiryMaxLen && !complete.MatchString(value) {
				t.Fatalf("complete value %q is not MM/YY", value)
			}
		}
	}
}

func randomDigits(rng *rand.Rand, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rng.Intn(10)))
	}
	return b.String()
}
