// Package bank 定義核心領域模型與業務規則。
// 本檔定義對外輸出的唯讀視圖（view）與客戶日誌 Log 結構，不含任何 HTTP 或儲存細節。

package bank

import "github.com/shopspring/decimal"

// Log kinds.
const (
	LogDeposit    = "deposit"
	LogWithdraw   = "withdraw"
	LogLoanIssued = "loan_issued"
	LogRepayment  = "repayment"
	LogInterest   = "interest"
	LogStatus     = "status"
	LogAutoPay    = "autopay"
	LogRateNotice = "rate_notice"
)

// Log represents one journal entry of a customer.
type Log struct {
	Month  int             `json:"month"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
	LoanID string          `json:"loan_id,omitempty"`
	Note   string          `json:"note"`
}

// LoanView represents a loan as seen by the current clock.
type LoanView struct {
	ID                string          `json:"id"`
	Sum               decimal.Decimal `json:"sum"`
	OriginatedAt      int             `json:"originated_at"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	Status            LoanStatus      `json:"status"`
	Expired           bool            `json:"expired"`
	MonthsUntilExpiry int             `json:"months_until_expiry"`
}

// CustomerView represents a customer with savings and loan detail.
type CustomerView struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Username              string          `json:"username"`
	Status                CustomerStatus  `json:"status"`
	Savings               decimal.Decimal `json:"savings"`
	SavingsRate           decimal.Decimal `json:"savings_rate"`
	RateAdjustmentPending bool            `json:"rate_adjustment_pending"`
	Loans                 []LoanView      `json:"loans"`
	TotalLoans            decimal.Decimal `json:"total_loans"`
	PersonalSavings       decimal.Decimal `json:"personal_savings"`
}

// Totals represents ledger-wide aggregates.
type Totals struct {
	Month           int             `json:"month"`
	Customers       int             `json:"customers"`
	InitialCapital  decimal.Decimal `json:"initial_capital"`
	Capital         decimal.Decimal `json:"capital"`
	TotalSavings    decimal.Decimal `json:"total_savings"`
	TotalLoans      decimal.Decimal `json:"total_loans"`
	PersonalSavings decimal.Decimal `json:"personal_savings"`
}

func viewLoan(l *Loan, now int) LoanView {
	return LoanView{
		ID:                l.ID(),
		Sum:               l.Sum(),
		OriginatedAt:      l.OriginatedAt(),
		InterestRate:      l.Rate(),
		Status:            l.Status(),
		Expired:           l.IsExpired(now),
		MonthsUntilExpiry: l.MonthsUntilExpiry(now),
	}
}

func viewCustomer(c *Customer, now int) *CustomerView {
	v := &CustomerView{
		ID:                    c.ID(),
		Name:                  c.Name(),
		Username:              c.Username(),
		Status:                c.Status(),
		Savings:               c.Savings().Balance(),
		SavingsRate:           c.Savings().Rate(),
		RateAdjustmentPending: c.NeedsRateReadjustment(),
		Loans:                 make([]LoanView, 0, len(c.loans)),
		TotalLoans:            c.TotalLoans(),
		PersonalSavings:       c.PersonalSavings(),
	}
	for _, l := range c.loans {
		v.Loans = append(v.Loans, viewLoan(l, now))
	}
	return v
}
