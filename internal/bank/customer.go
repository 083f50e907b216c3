// internal/bank/customer.go

package bank

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banksim/internal/money"
)

// MaxLoansPerCustomer 為客戶可同時持有的貸款上限。
const MaxLoansPerCustomer = 3

// Session 為客戶操作所需的帳本能力：目前月份與銀行資本。
// *Ledger 實作此介面。
type Session interface {
	Now() int
	Capital() decimal.Decimal
}

// Customer 擁有一個儲蓄帳戶與最多 3 筆依起始順序排列的貸款。
type Customer struct {
	id       string
	name     string
	username string
	savings  *SavingsAccount
	loans    []*Loan
	status   CustomerStatus
	logs     []Log
}

// NewCustomer 建立 ACTIVE 客戶；初始餘額不得為負，貸款不得超過 3 筆。
// 傳入的貸款視為既有債務，不會再入帳到儲蓄。
func NewCustomer(name string, savings decimal.Decimal, loans ...*Loan) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if savings.IsNegative() {
		return nil, invalidAmount("initial savings can not be negative")
	}
	if len(loans) > MaxLoansPerCustomer {
		return nil, ErrLoanLimitExceeded
	}
	return &Customer{
		id:       uuid.NewString(),
		name:     name,
		username: Username(name),
		savings:  NewSavingsAccount(savings),
		loans:    slices.Clone(loans),
		status:   StatusActive,
	}, nil
}

// Username 由姓名推導登入名稱，例如 "Ada Lovelace" → "ada_lovelace"。
func Username(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

func (c *Customer) ID() string { return c.id }
func (c *Customer) Name() string { return c.name }
func (c *Customer) Username() string { return c.username }
func (c *Customer) Status() CustomerStatus { return c.status }
func (c *Customer) Savings() *SavingsAccount { return c.savings }
func (c *Customer) Loans() []*Loan { return slices.Clone(c.loans) }
func (c *Customer) Logs() []Log { return slices.Clone(c.logs) }

// Loan 依 ID 找出客戶持有的貸款。
func (c *Customer) Loan(id string) (*Loan, bool) {
	for _, l := range c.loans {
		if l.ID() == id {
			return l, true
		}
	}
	return nil, false
}

// TotalLoans 為所有未償貸款總額。
func (c *Customer) TotalLoans() decimal.Decimal {
	sums := make([]decimal.Decimal, len(c.loans))
	for i, l := range c.loans {
		sums[i] = l.Sum()
	}
	return money.Sum(sums...)
}

// PersonalSavings 為儲蓄扣除貸款後的淨額。
func (c *Customer) PersonalSavings() decimal.Decimal {
	return money.Round(c.savings.Balance().Sub(c.TotalLoans()))
}

// HasOverdueLoan 回報是否至少有一筆貸款已逾期；無貸款時為 false。
func (c *Customer) HasOverdueLoan(now int) bool {
	return slices.ContainsFunc(c.loans, func(l *Loan) bool { return l.IsExpired(now) })
}

// HasNoOverdueLoans 回報是否沒有任何逾期貸款；無貸款時為 true。
func (c *Customer) HasNoOverdueLoans(now int) bool {
	return !c.HasOverdueLoan(now)
}

// NeedsRateReadjustment 為純診斷：儲蓄利率是否會在下次計息時調整。
func (c *Customer) NeedsRateReadjustment() bool {
	return c.savings.NeedsRateReadjustment()
}

// Deposit 存款；僅 LOCKED 時拒絕。
func (c *Customer) Deposit(s Session, amount decimal.Decimal) error {
	if err := c.status.authorize(OpDeposit); err != nil {
		return err
	}
	amount = money.Round(amount)
	if err := c.savings.Deposit(amount); err != nil {
		return err
	}
	c.record(s.Now(), LogDeposit, amount, "", "deposited to savings")
	c.noticeRate(s.Now())
	return nil
}

// Withdraw 提款；需狀態允許、餘額足夠且銀行資本足以支應。
func (c *Customer) Withdraw(s Session, amount decimal.Decimal) error {
	if err := c.status.authorize(OpWithdraw); err != nil {
		return err
	}
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return invalidAmount("withdrawal amount can not be negative or zero")
	}
	if amount.GreaterThan(c.savings.Balance()) {
		return fmt.Errorf("%w: not enough savings to withdraw %s", ErrInsufficientFunds, money.Format(amount))
	}
	if available := s.Capital(); available.LessThan(amount) {
		return capitalShortfall(amount, available)
	}
	if err := c.savings.Withdraw(amount); err != nil {
		return err
	}
	c.record(s.Now(), LogWithdraw, amount, "", "withdrawn from savings")
	c.noticeRate(s.Now())
	return nil
}

// Borrow 取得新貸款，本金直接入帳到儲蓄。利率此時不重新評估。
func (c *Customer) Borrow(s Session, loan *Loan) error {
	if err := c.status.authorize(OpBorrow); err != nil {
		return err
	}
	if len(c.loans) >= MaxLoansPerCustomer {
		return ErrLoanLimitExceeded
	}
	if available := s.Capital(); available.LessThan(loan.Sum()) {
		return capitalShortfall(loan.Sum(), available)
	}
	c.loans = append(c.loans, loan)
	c.savings.credit(loan.Sum())
	c.record(s.Now(), LogLoanIssued, loan.Sum(), loan.ID(),
		fmt.Sprintf("loan at %s credited to savings", money.Percent(loan.Rate())))
	c.noticeRate(s.Now())
	return nil
}

// Repay 以儲蓄償還貸款。還清的貸款自集合移除；
// 若因此不再有逾期貸款且狀態為 OVERDUE_LOANS，狀態回到 ACTIVE。
func (c *Customer) Repay(s Session, loan *Loan, amount decimal.Decimal) (LoanStatus, error) {
	if err := c.status.authorize(OpRepay); err != nil {
		return "", err
	}
	if !slices.Contains(c.loans, loan) {
		return "", ErrLoanNotFound
	}
	amount = money.Round(amount)
	if !amount.IsPositive() {
		return loan.Status(), invalidAmount("payment amount can not be negative or zero")
	}
	if amount.GreaterThan(loan.Sum()) {
		return loan.Status(), invalidAmount("payment %s exceeds outstanding %s",
			money.Format(amount), money.Format(loan.Sum()))
	}
	if amount.GreaterThan(c.savings.Balance()) {
		return loan.Status(), fmt.Errorf("%w: not enough savings to pay %s", ErrInsufficientFunds, money.Format(amount))
	}

	now := s.Now()
	status, err := loan.Pay(amount)
	if err != nil {
		return status, err
	}
	if err := c.savings.Withdraw(amount); err != nil {
		return status, err
	}
	note := fmt.Sprintf("loan partially paid, %s outstanding", money.Format(loan.Sum()))
	if status == LoanPaid {
		c.removePaidLoans()
		note = "loan paid in full and closed"
	}
	c.record(now, LogRepayment, amount, loan.ID(), note)

	if c.status == StatusOverdueLoans && c.HasNoOverdueLoans(now) {
		c.setStatus(now, StatusActive, "all overdue loans paid")
	}
	c.noticeRate(now)
	return status, nil
}

func (c *Customer) removePaidLoans() int {
	before := len(c.loans)
	c.loans = slices.DeleteFunc(c.loans, (*Loan).IsPaid)
	return before - len(c.loans)
}

func (c *Customer) setStatus(now int, to CustomerStatus, reason string) {
	if c.status == to {
		return
	}
	c.record(now, LogStatus, money.Zero, "", fmt.Sprintf("%s -> %s: %s", c.status, to, reason))
	c.status = to
}

func (c *Customer) noticeRate(now int) {
	if !c.savings.NeedsRateReadjustment() {
		return
	}
	c.record(now, LogRateNotice, money.Zero, "",
		fmt.Sprintf("savings rate will be adjusted to %s next month", money.Percent(RateForBalance(c.savings.Balance()))))
}

func (c *Customer) record(month int, kind string, amount decimal.Decimal, loanID, note string) {
	c.logs = append(c.logs, Log{Month: month, Kind: kind, Amount: amount, LoanID: loanID, Note: note})
}

// Clone 深拷貝客戶、儲蓄帳戶、貸款與日誌，副本與原物件不共用任何可變狀態。
func (c *Customer) Clone() *Customer {
	cp := *c
	cp.savings = c.savings.Clone()
	cp.loans = make([]*Loan, len(c.loans))
	for i, l := range c.loans {
		cp.loans[i] = l.Clone()
	}
	cp.logs = slices.Clone(c.logs)
	return &cp
}

func (c *Customer) String() string {
	return fmt.Sprintf("%s (%s), %s, %d loan(s), status %s",
		c.name, c.username, c.savings, len(c.loans), c.status)
}
