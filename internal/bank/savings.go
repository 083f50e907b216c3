// internal/bank/savings.go

package bank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"banksim/internal/money"
)

var (
	MaxDeposit            = money.FromInt(1_000_000)
	premiumSavingsBalance = money.FromInt(10_000)
	SavingsRateBase       = decimal.RequireFromString("0.05")
	SavingsRatePremium    = decimal.RequireFromString("0.055")
)

// RateForBalance 為儲蓄分級利率：餘額 ≥ 10000 為 5.5%，否則 5%。
func RateForBalance(balance decimal.Decimal) decimal.Decimal {
	if balance.GreaterThanOrEqual(premiumSavingsBalance) {
		return SavingsRatePremium
	}
	return SavingsRateBase
}

// SavingsAccount 為客戶的儲蓄帳戶。
// 利率只在每月計息時重新評估，存提款後可能暫時與餘額不一致。
type SavingsAccount struct {
	balance decimal.Decimal
	rate    decimal.Decimal
}

// NewSavingsAccount 以初始餘額建立帳戶，利率依分級規則決定。
func NewSavingsAccount(initial decimal.Decimal) *SavingsAccount {
	initial = money.Round(initial)
	return &SavingsAccount{balance: initial, rate: RateForBalance(initial)}
}

func (s *SavingsAccount) Balance() decimal.Decimal { return s.balance }
func (s *SavingsAccount) Rate() decimal.Decimal { return s.rate }

// Deposit 存入 0 < amount ≤ 1,000,000（取整後判斷）。不重新評估利率。
func (s *SavingsAccount) Deposit(amount decimal.Decimal) error {
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return invalidAmount("deposit amount can not be negative or zero")
	}
	if amount.GreaterThan(MaxDeposit) {
		return invalidAmount("deposit amount can not be more than %s", money.Format(MaxDeposit))
	}
	s.balance = money.Round(s.balance.Add(amount))
	return nil
}

// Withdraw 提領 amount，超過餘額時回傳 ErrInsufficientFunds。
func (s *SavingsAccount) Withdraw(amount decimal.Decimal) error {
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return invalidAmount("withdrawal amount can not be negative or zero")
	}
	if amount.GreaterThan(s.balance) {
		return fmt.Errorf("%w: asked for %s, savings hold %s",
			ErrInsufficientFunds, money.Format(amount), money.Format(s.balance))
	}
	s.balance = money.Round(s.balance.Sub(amount))
	return nil
}

// credit 為放款入帳，不受存款上限限制。
func (s *SavingsAccount) credit(amount decimal.Decimal) {
	s.balance = money.Round(s.balance.Add(amount))
}

// ApplyMonthlyInterestAndReadjustRate 先以舊利率計息，再依新餘額決定下月利率。
func (s *SavingsAccount) ApplyMonthlyInterestAndReadjustRate() {
	s.balance = money.Accrue(s.balance, s.rate)
	s.rate = RateForBalance(s.balance)
}

// NeedsRateReadjustment 回報目前利率是否與餘額所屬分級不符。
func (s *SavingsAccount) NeedsRateReadjustment() bool {
	return !s.rate.Equal(RateForBalance(s.balance))
}

func (s *SavingsAccount) Clone() *SavingsAccount {
	cp := *s
	return &cp
}

func (s *SavingsAccount) String() string {
	return fmt.Sprintf("Savings: %s at interest rate of %s", money.Format(s.balance), money.Percent(s.rate))
}
