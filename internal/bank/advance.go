// internal/bank/advance.go
//
// 每月推進引擎：時鐘 +1 後，依名冊順序對每位客戶套用一次狀態轉移。
// 固定順序：寬限期判定 → 鎖定即停止 → 計息 → 逾期偵測 → 逾期代扣。

package bank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"banksim/internal/money"
)

// MonthSummary 彙整一次推進的結果。
type MonthSummary struct {
	Month          int             `json:"month"`
	Active         int             `json:"active"`
	OverdueLoans   int             `json:"overdue_loans"`
	Locked         int             `json:"locked"`
	NewlyOverdue   []string        `json:"newly_overdue"`
	NewlyLocked    []string        `json:"newly_locked"`
	Recovered      []string        `json:"recovered"`
	LoansServiced  int             `json:"loans_serviced"`
	AmountServiced decimal.Decimal `json:"amount_serviced"`
	Capital        decimal.Decimal `json:"capital"`
}

type customerOutcome struct {
	from, to CustomerStatus
	serviced int
	amount   decimal.Decimal
}

// AdvanceOneMonth 將時鐘加一，並對每位客戶執行每月狀態轉移。
func (l *Ledger) AdvanceOneMonth() MonthSummary {
	l.month++
	sum := MonthSummary{
		Month:          l.month,
		NewlyOverdue:   []string{},
		NewlyLocked:    []string{},
		Recovered:      []string{},
		AmountServiced: money.Zero,
	}
	for _, c := range l.customers {
		out := advanceCustomer(c, l.month)
		switch {
		case out.from != StatusLocked && out.to == StatusLocked:
			sum.NewlyLocked = append(sum.NewlyLocked, c.ID())
		case out.from == StatusActive && out.to == StatusOverdueLoans:
			sum.NewlyOverdue = append(sum.NewlyOverdue, c.ID())
		case out.from == StatusOverdueLoans && out.to == StatusActive:
			sum.Recovered = append(sum.Recovered, c.ID())
		}
		sum.LoansServiced += out.serviced
		sum.AmountServiced = money.Round(sum.AmountServiced.Add(out.amount))

		switch c.Status() {
		case StatusActive:
			sum.Active++
		case StatusOverdueLoans:
			sum.OverdueLoans++
		case StatusLocked:
			sum.Locked++
		}
	}
	sum.Capital = l.Capital()
	return sum
}

// advanceCustomer 對單一客戶套用一次每月轉移；now 為已遞增的月份。
func advanceCustomer(c *Customer, now int) customerOutcome {
	out := customerOutcome{from: c.status, amount: money.Zero}

	// 1. 寬限期：上個月已進入 OVERDUE_LOANS，本月仍有逾期即鎖定。
	if c.status == StatusOverdueLoans {
		if c.HasOverdueLoan(now) {
			c.setStatus(now, StatusLocked, "overdue loans unpaid after grace period")
			out.to = c.status
			return out
		}
		c.setStatus(now, StatusActive, "no overdue loans left")
	}

	// 2. LOCKED 為終止狀態。
	if c.status == StatusLocked {
		out.to = c.status
		return out
	}

	// 3. 計息：貸款與儲蓄（先以舊利率計息，再依新餘額調整利率）。
	for _, l := range c.loans {
		before := l.Sum()
		l.ApplyMonthlyInterest()
		c.record(now, LogInterest, money.Round(l.Sum().Sub(before)), l.ID(), "loan interest accrued")
	}
	before, oldRate := c.savings.Balance(), c.savings.Rate()
	c.savings.ApplyMonthlyInterestAndReadjustRate()
	if earned := money.Round(c.savings.Balance().Sub(before)); earned.IsPositive() {
		c.record(now, LogInterest, earned, "", "savings interest earned")
	}
	if !oldRate.Equal(c.savings.Rate()) {
		c.record(now, LogRateNotice, money.Zero, "",
			fmt.Sprintf("savings rate adjusted from %s to %s", money.Percent(oldRate), money.Percent(c.savings.Rate())))
	}

	// 4. 逾期偵測。
	if c.status == StatusActive && c.HasOverdueLoan(now) {
		c.setStatus(now, StatusOverdueLoans, "loan term expired")
	}

	// 5. 逾期代扣：依序處理逾期貸款，儲蓄不足即停止。
	if c.status == StatusOverdueLoans {
		out.serviced, out.amount = serviceOverdueLoans(c, now)
		c.removePaidLoans()
		if c.HasNoOverdueLoans(now) {
			c.setStatus(now, StatusActive, "overdue loans serviced from savings")
		}
	}

	out.to = c.status
	return out
}

// serviceOverdueLoans 以儲蓄全額清償逾期貸款，遇到第一筆無法全額清償的即停止。
func serviceOverdueLoans(c *Customer, now int) (int, decimal.Decimal) {
	paid, total := 0, money.Zero
	for _, l := range c.loans {
		if !l.IsExpired(now) {
			continue
		}
		due := l.Sum()
		if c.savings.Balance().LessThan(due) {
			break
		}
		if err := c.savings.Withdraw(due); err != nil {
			break
		}
		if _, err := l.Pay(due); err != nil {
			break
		}
		c.record(now, LogAutoPay, due, l.ID(), "overdue loan paid in full from savings")
		paid++
		total = money.Round(total.Add(due))
	}
	return paid, total
}
