// internal/bank/bank.go

// Bank 為聚合根 (Aggregate Root)：以單一互斥鎖包住 Ledger，
// 讓 HTTP 等並行呼叫端看到的仍是「一次只有一個變更者」的模型。
// 對外一律回傳值視圖（CustomerView、Totals），不暴露內部指標。
package bank

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banksim/internal/money"
	"banksim/internal/storage"
)

type Bank struct {
	mu     sync.Mutex
	ledger *Ledger
	logger *slog.Logger
}

// NewBank 建立空白銀行。logger 為 nil 時不輸出日誌。
func NewBank(initialCapital decimal.Decimal, logger *slog.Logger) *Bank {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Bank{logger: logger}
	b.attach(NewLedger(initialCapital))
	return b
}

func (b *Bank) attach(l *Ledger) {
	l.OnCapitalAnomaly(func(a CapitalAnomaly) {
		b.logger.Error("capital anomaly", "month", a.Month, "capital", a.Capital, "error", a.Error())
	})
	b.ledger = l
}

// Now 回傳目前月份。
func (b *Bank) Now() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Now()
}

// Open 以姓名與初始儲蓄開立客戶，需通過銀行資本檢查。
func (b *Bank) Open(name string, savings decimal.Decimal) (*CustomerView, error) {
	c, err := NewCustomer(name, savings)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ledger.Enroll(c); err != nil {
		return nil, err
	}
	b.logger.Info("customer opened", "customer", c.ID(), "name", c.Name(), "savings", c.Savings().Balance())
	return viewCustomer(c, b.ledger.Now()), nil
}

// Enroll 加入一位已建立的客戶（例如隨機產生的示範客戶）。
func (b *Bank) Enroll(c *Customer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ledger.Enroll(c); err != nil {
		return err
	}
	b.logger.Debug("customer enrolled", "customer", c.ID(), "name", c.Name(), "loans", len(c.loans))
	return nil
}

// Get 依 ID 取得客戶視圖。
func (b *Bank) Get(id string) (*CustomerView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.ledger.Customer(id)
	if !ok {
		return nil, ErrNotFound
	}
	return viewCustomer(c, b.ledger.Now()), nil
}

// List 依名冊順序回傳所有客戶視圖。
func (b *Bank) List() []*CustomerView {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*CustomerView, 0, b.ledger.Len())
	for _, c := range b.ledger.customers {
		out = append(out, viewCustomer(c, b.ledger.Now()))
	}
	return out
}

// Deposit 存款。
func (b *Bank) Deposit(id string, amt decimal.Decimal) (*CustomerView, error) {
	return b.mutate(id, "deposit", amt, func(c *Customer) error {
		return c.Deposit(b.ledger, amt)
	})
}

// Withdraw 提款。
func (b *Bank) Withdraw(id string, amt decimal.Decimal) (*CustomerView, error) {
	return b.mutate(id, "withdraw", amt, func(c *Customer) error {
		return c.Withdraw(b.ledger, amt)
	})
}

// Borrow 以目前月份為起始建立貸款並撥款至儲蓄。
func (b *Bank) Borrow(id string, amt decimal.Decimal) (*CustomerView, error) {
	return b.mutate(id, "borrow", amt, func(c *Customer) error {
		loan, err := NewLoan(amt, b.ledger.Now())
		if err != nil {
			return err
		}
		return c.Borrow(b.ledger, loan)
	})
}

// Repay 以儲蓄償還指定貸款。
func (b *Bank) Repay(id, loanID string, amt decimal.Decimal) (*CustomerView, error) {
	return b.mutate(id, "repay", amt, func(c *Customer) error {
		loan, ok := c.Loan(loanID)
		if !ok {
			return ErrLoanNotFound
		}
		_, err := c.Repay(b.ledger, loan, amt)
		return err
	})
}

// mutate 在臨界區內找出客戶並執行 fn，成功或失敗皆留下日誌。
func (b *Bank) mutate(id, op string, amt decimal.Decimal, fn func(*Customer) error) (*CustomerView, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.ledger.Customer(id)
	if !ok {
		return nil, ErrNotFound
	}
	if err := fn(c); err != nil {
		b.logger.Warn(op+" refused", "customer", id, "amount", amt, "status", c.Status(), "error", err)
		return nil, err
	}
	b.logger.Info(op, "customer", id, "amount", amt, "savings", c.Savings().Balance())
	return viewCustomer(c, b.ledger.Now()), nil
}

// Logs 回傳客戶日誌副本。
func (b *Bank) Logs(id string) ([]Log, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.ledger.Customer(id)
	if !ok {
		return nil, ErrNotFound
	}
	return c.Logs(), nil
}

// Totals 回傳帳本層級彙總。
func (b *Bank) Totals() Totals {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ledger.Totals()
}

// Advance 推進一個月。
func (b *Bank) Advance() MonthSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	sum := b.ledger.AdvanceOneMonth()
	b.logger.Info("advanced one month",
		"month", sum.Month,
		"active", sum.Active,
		"overdue", sum.OverdueLoans,
		"locked", sum.Locked,
		"newly_locked", len(sum.NewlyLocked),
		"loans_serviced", sum.LoansServiced,
		"capital", sum.Capital,
	)
	return sum
}

// Simulate 在臨界區內複製帳本，之後於鎖外推進副本，真實帳本不受影響。
func (b *Bank) Simulate(months int) ([]Projection, error) {
	b.mu.Lock()
	sim, err := Simulate(b.ledger, months)
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]Projection, 0, months)
	for p := range sim.Projections() {
		out = append(out, p)
	}
	b.logger.Info("simulation finished", "from_month", sim.StartMonth(), "months", len(out))
	return out, nil
}

// Snapshot 匯出目前帳本為情境檔格式。
func (b *Bank) Snapshot() storage.Scenario {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := storage.Scenario{
		Meta: storage.Meta{
			Storage: storage.KindScenario,
			Version: storage.Version,
		},
		Month:          b.ledger.Now(),
		InitialCapital: b.ledger.InitialCapital(),
	}
	for _, c := range b.ledger.customers {
		pc := storage.PersistCustomer{
			ID:          c.ID(),
			Name:        c.Name(),
			Savings:     c.Savings().Balance(),
			SavingsRate: c.Savings().Rate(),
			Status:      string(c.Status()),
			Loans:       make([]storage.PersistLoan, 0, len(c.loans)),
		}
		for _, l := range c.loans {
			pc.Loans = append(pc.Loans, storage.PersistLoan{
				ID:           l.ID(),
				Sum:          l.Sum(),
				OriginatedAt: l.OriginatedAt(),
				InterestRate: l.Rate(),
				Status:       string(l.Status()),
			})
		}
		s.Customers = append(s.Customers, pc)
	}
	return s
}

// Restore 由情境檔重建帳本；任何欄位不合法即整份拒絕，原帳本維持不變。
func (b *Bank) Restore(s storage.Scenario) error {
	if s.Month < 0 {
		return fmt.Errorf("scenario month %d is negative", s.Month)
	}
	l := NewLedger(s.InitialCapital)
	l.month = s.Month
	for i, pc := range s.Customers {
		c, err := restoreCustomer(pc)
		if err != nil {
			return fmt.Errorf("customer #%d (%s): %w", i+1, pc.Name, err)
		}
		if _, dup := l.byID[c.id]; dup {
			return fmt.Errorf("customer #%d: duplicate id %s", i+1, c.id)
		}
		l.customers = append(l.customers, c)
		l.byID[c.id] = c
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.attach(l)
	b.logger.Info("ledger restored", "month", l.month, "customers", l.Len())
	return nil
}

func restoreCustomer(pc storage.PersistCustomer) (*Customer, error) {
	status := CustomerStatus(pc.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", pc.Status)
	}
	if len(pc.Loans) > MaxLoansPerCustomer {
		return nil, ErrLoanLimitExceeded
	}
	c, err := NewCustomer(pc.Name, pc.Savings)
	if err != nil {
		return nil, err
	}
	if pc.ID != "" {
		c.id = pc.ID
	}
	if !pc.SavingsRate.IsZero() {
		if !pc.SavingsRate.Equal(SavingsRateBase) && !pc.SavingsRate.Equal(SavingsRatePremium) {
			return nil, fmt.Errorf("savings rate %s is not a known tier", pc.SavingsRate)
		}
		c.savings.rate = pc.SavingsRate
	}
	c.status = status
	for _, pl := range pc.Loans {
		l, err := restoreLoan(pl)
		if err != nil {
			return nil, err
		}
		c.loans = append(c.loans, l)
	}
	return c, nil
}

func restoreLoan(pl storage.PersistLoan) (*Loan, error) {
	if pl.Status != "" && LoanStatus(pl.Status) != LoanActive {
		return nil, errors.New("only ACTIVE loans can be held by a customer")
	}
	if pl.OriginatedAt < 0 {
		return nil, fmt.Errorf("loan origination month %d is negative", pl.OriginatedAt)
	}
	l, err := NewLoan(pl.Sum, pl.OriginatedAt)
	if err != nil {
		// 已計息的貸款可能超過放款上限，只要求為正數。
		if !money.Round(pl.Sum).IsPositive() {
			return nil, err
		}
		l = &Loan{id: uuid.NewString(), sum: money.Round(pl.Sum), originated: pl.OriginatedAt, rate: LoanRateLargeAmount, status: LoanActive}
	}
	if pl.ID != "" {
		l.id = pl.ID
	}
	if !pl.InterestRate.IsZero() {
		if !pl.InterestRate.Equal(LoanRateStandard) && !pl.InterestRate.Equal(LoanRateLargeAmount) {
			return nil, fmt.Errorf("loan rate %s is not a known tier", pl.InterestRate)
		}
		l.rate = pl.InterestRate
	}
	return l, nil
}
