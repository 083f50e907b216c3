// internal/bank/loan.go

package bank

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banksim/internal/money"
)

// LoanTermMonths 為貸款期限；到期月份（含）起即視為逾期。
const LoanTermMonths = 12

var (
	MaxLoanAmount       = money.FromInt(10_000)
	largeLoanThreshold  = money.FromInt(2_000)
	LoanRateStandard    = decimal.RequireFromString("0.10")
	LoanRateLargeAmount = decimal.RequireFromString("0.105")
)

// Loan 為固定 12 個月期限的貸款。利率與起始月份建立後不可變。
type Loan struct {
	id         string
	sum        decimal.Decimal
	originated int
	rate       decimal.Decimal
	status     LoanStatus
}

// NewLoan 先取整到分，再驗證 0 < amount ≤ 10000 後建立貸款：
// 金額未滿 2000 年利率 10%，2000 以上 10.5%。
func NewLoan(amount decimal.Decimal, originationMonth int) (*Loan, error) {
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return nil, invalidAmount("loan amount can not be negative or zero")
	}
	if amount.GreaterThan(MaxLoanAmount) {
		return nil, invalidAmount("bank does not give loans above %s", money.Format(MaxLoanAmount))
	}
	rate := LoanRateStandard
	if amount.GreaterThanOrEqual(largeLoanThreshold) {
		rate = LoanRateLargeAmount
	}
	return &Loan{
		id:         uuid.NewString(),
		sum:        amount,
		originated: originationMonth,
		rate:       rate,
		status:     LoanActive,
	}, nil
}

func (l *Loan) ID() string { return l.id }
func (l *Loan) Sum() decimal.Decimal { return l.sum }
func (l *Loan) OriginatedAt() int { return l.originated }
func (l *Loan) Rate() decimal.Decimal { return l.rate }
func (l *Loan) Status() LoanStatus { return l.status }
func (l *Loan) DueMonth() int { return l.originated + LoanTermMonths }
func (l *Loan) IsExpired(now int) bool { return l.DueMonth() <= now }
func (l *Loan) IsPaid() bool { return l.status == LoanPaid }

// MonthsUntilExpiry 回傳距到期的月數，已到期則為 0。
func (l *Loan) MonthsUntilExpiry(now int) int {
	return max(0, l.DueMonth()-now)
}

// ApplyMonthlyInterest 以月利率 rate/12 計息一次。
func (l *Loan) ApplyMonthlyInterest() {
	l.sum = money.Accrue(l.sum, l.rate)
}

// Pay 扣減未償金額；扣至 0 以下時歸零並設為 PAID。
// 這是唯一能讓貸款變成 PAID 的操作。
func (l *Loan) Pay(amount decimal.Decimal) (LoanStatus, error) {
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return l.status, invalidAmount("payment amount can not be negative or zero")
	}
	l.sum = money.Round(l.sum.Sub(amount))
	if !l.sum.IsPositive() {
		l.sum = money.Zero
		l.status = LoanPaid
	}
	return l.status, nil
}

// Clone 回傳完全獨立的副本（含相同 ID）。
func (l *Loan) Clone() *Loan {
	cp := *l
	return &cp
}

func (l *Loan) String() string {
	return fmt.Sprintf("Loan: %s, initiated at month %d at interest rate of %s",
		money.Format(l.sum), l.originated, money.Percent(l.rate))
}
