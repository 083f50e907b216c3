// internal/bank/savings_test.go

package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavingsInitialRate(t *testing.T) {
	assert.True(t, NewSavingsAccount(d("9999.99")).Rate().Equal(SavingsRateBase))
	assert.True(t, NewSavingsAccount(d("10000")).Rate().Equal(SavingsRatePremium))
	assert.True(t, NewSavingsAccount(d("0")).Rate().Equal(SavingsRateBase))
}

func TestSavingsDepositLimits(t *testing.T) {
	s := NewSavingsAccount(d("0"))
	assert.ErrorIs(t, s.Deposit(d("0")), ErrInvalidAmount)
	assert.ErrorIs(t, s.Deposit(d("-5")), ErrInvalidAmount)
	assert.ErrorIs(t, s.Deposit(d("1000000.01")), ErrInvalidAmount)
	require.NoError(t, s.Deposit(d("1000000")))
	assertMoney(t, "1000000", s.Balance())
}

// 存款不會立即調整利率，只留下待調整的狀態。
func TestSavingsDepositKeepsStaleRate(t *testing.T) {
	s := NewSavingsAccount(d("9000"))
	require.NoError(t, s.Deposit(d("2000")))
	assertMoney(t, "11000", s.Balance())
	assert.True(t, s.Rate().Equal(SavingsRateBase))
	assert.True(t, s.NeedsRateReadjustment())
}

func TestSavingsWithdraw(t *testing.T) {
	s := NewSavingsAccount(d("100"))
	assert.ErrorIs(t, s.Withdraw(d("100.01")), ErrInsufficientFunds)
	require.NoError(t, s.Withdraw(d("40.5")))
	assertMoney(t, "59.5", s.Balance())
}

func TestSavingsInterestAndReadjust(t *testing.T) {
	cases := []struct {
		name     string
		balance  string
		rate     string
		want     string
		wantRate string
	}{
		{"base tier", "5000", "0.05", "5020.83", "0.05"},
		{"crosses into premium", "10000", "0.05", "10041.67", "0.055"},
		{"premium tier", "15000", "0.055", "15068.75", "0.055"},
		{"stale base rate on premium balance", "15000", "0.05", "15062.5", "0.055"},
		{"base tier small", "1000", "0.05", "1004.17", "0.05"},
		{"stale premium rate on base balance", "1000", "0.055", "1004.58", "0.05"},
		{"near threshold", "9995", "0.05", "10036.65", "0.055"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &SavingsAccount{balance: d(tc.balance), rate: rate(tc.rate)}
			s.ApplyMonthlyInterestAndReadjustRate()
			assertMoney(t, tc.want, s.Balance())
			assert.True(t, s.Rate().Equal(rate(tc.wantRate)), "rate %s", s.Rate())
			assert.False(t, s.NeedsRateReadjustment())
		})
	}
}

func TestSavingsRejectsSubCentAmounts(t *testing.T) {
	s := NewSavingsAccount(d("100"))
	assert.ErrorIs(t, s.Deposit(exact("0.004")), ErrInvalidAmount)
	assert.ErrorIs(t, s.Withdraw(exact("0.004")), ErrInvalidAmount)
	assertMoney(t, "100", s.Balance())

	require.NoError(t, s.Deposit(exact("0.005")))
	assertMoney(t, "100.01", s.Balance())
}
