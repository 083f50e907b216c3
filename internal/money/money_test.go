// internal/money/money_test.go

package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	cases := map[string]string{
		"100.834":  "100.83",
		"100.835":  "100.84",
		"1008.333": "1008.33",
		"-0.005":   "-0.01",
		"42":       "42",
	}
	for in, want := range cases {
		got := Round(decimal.RequireFromString(in))
		assert.Truef(t, got.Equal(decimal.RequireFromString(want)), "Round(%s)=%s want %s", in, got, want)
	}
}

func TestAccrue(t *testing.T) {
	cases := []struct {
		amount, rate, want string
	}{
		{"1000", "0.10", "1008.33"},
		{"2000", "0.105", "2017.5"},
		{"5000", "0.05", "5020.83"},
		{"10000", "0.05", "10041.67"},
		{"15000", "0.055", "15068.75"},
		{"100", "0.10", "100.83"},
		{"50", "0.05", "50.21"},
		{"0", "0.05", "0"},
	}
	for _, c := range cases {
		got := Accrue(decimal.RequireFromString(c.amount), decimal.RequireFromString(c.rate))
		assert.Truef(t, got.Equal(decimal.RequireFromString(c.want)),
			"Accrue(%s, %s)=%s want %s", c.amount, c.rate, got, c.want)
	}
}

func TestSumRoundsEachStep(t *testing.T) {
	got := Sum(MustParse("0.1"), MustParse("0.2"), MustParse("0.3"))
	assert.True(t, got.Equal(MustParse("0.6")), "got %s", got)
	assert.True(t, Sum().IsZero())

	sub := decimal.RequireFromString("0.004")
	assert.True(t, Sum(sub, sub, sub).IsZero())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "€1234.50", Format(MustParse("1234.5")))
	assert.Equal(t, "10.5%", Percent(decimal.RequireFromString("0.105")))
}
