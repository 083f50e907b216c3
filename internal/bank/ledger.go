// internal/bank/ledger.go

package bank

import (
	"fmt"

	"github.com/shopspring/decimal"

	"banksim/internal/money"
)

// DefaultInitialCapital 為銀行開業時自有資金（十萬歐元）。
var DefaultInitialCapital = money.FromInt(100_000)

// Ledger 保存全域月份時鐘、客戶名冊與銀行初始資本。
// 衍生數字（資本、總儲蓄、總貸款）每次讀取時重新計算，不儲存。
type Ledger struct {
	month          int
	initialCapital decimal.Decimal
	customers      []*Customer
	byID           map[string]*Customer
	onAnomaly      func(CapitalAnomaly)
}

// NewLedger 建立月份為 0、沒有客戶的帳本。
func NewLedger(initialCapital decimal.Decimal) *Ledger {
	return &Ledger{
		initialCapital: money.Round(initialCapital),
		byID:           make(map[string]*Customer),
	}
}

// Now 回傳目前月份。
func (l *Ledger) Now() int { return l.month }

func (l *Ledger) InitialCapital() decimal.Decimal { return l.initialCapital }

// Customer 依 ID 取得客戶。
func (l *Ledger) Customer(id string) (*Customer, bool) {
	c, ok := l.byID[id]
	return c, ok
}

// Len 回傳客戶數。
func (l *Ledger) Len() int { return len(l.customers) }

// OnCapitalAnomaly 設定負資本的回報函式。Clone 不會複製此設定。
func (l *Ledger) OnCapitalAnomaly(fn func(CapitalAnomaly)) {
	l.onAnomaly = fn
}

// Enroll 將客戶加入名冊；若加入後銀行資本會變成負數則拒絕。
func (l *Ledger) Enroll(c *Customer) error {
	if _, exists := l.byID[c.ID()]; exists {
		return fmt.Errorf("customer %s already enrolled", c.ID())
	}
	projected := money.Round(l.capital().Add(c.PersonalSavings()))
	if projected.IsNegative() {
		return fmt.Errorf("%w: enrolling %s would leave the bank at %s",
			ErrInsufficientBankCapital, c.Name(), money.Format(projected))
	}
	l.customers = append(l.customers, c)
	l.byID[c.ID()] = c
	return nil
}

// TotalSavings 為所有客戶儲蓄餘額總和。
func (l *Ledger) TotalSavings() decimal.Decimal {
	return l.sum(func(c *Customer) decimal.Decimal { return c.Savings().Balance() })
}

// TotalLoans 為所有客戶未償貸款總和。
func (l *Ledger) TotalLoans() decimal.Decimal {
	return l.sum((*Customer).TotalLoans)
}

func (l *Ledger) sum(of func(*Customer) decimal.Decimal) decimal.Decimal {
	values := make([]decimal.Decimal, len(l.customers))
	for i, c := range l.customers {
		values[i] = of(c)
	}
	return money.Sum(values...)
}

// PersonalSavings 為總儲蓄扣除總貸款。
func (l *Ledger) PersonalSavings() decimal.Decimal {
	return money.Round(l.TotalSavings().Sub(l.TotalLoans()))
}

// Capital = 初始資本 + 總儲蓄 − 總貸款。
// 結果為負時回報 CapitalAnomaly，但不阻擋也不修正。
func (l *Ledger) Capital() decimal.Decimal {
	capital := l.capital()
	if capital.IsNegative() && l.onAnomaly != nil {
		l.onAnomaly(CapitalAnomaly{Month: l.month, Capital: capital})
	}
	return capital
}

func (l *Ledger) capital() decimal.Decimal {
	return money.Round(l.initialCapital.Add(l.TotalSavings()).Sub(l.TotalLoans()))
}

// Totals 彙整帳本層級數字。
func (l *Ledger) Totals() Totals {
	return Totals{
		Month:           l.month,
		Customers:       len(l.customers),
		InitialCapital:  l.initialCapital,
		Capital:         l.Capital(),
		TotalSavings:    l.TotalSavings(),
		TotalLoans:      l.TotalLoans(),
		PersonalSavings: l.PersonalSavings(),
	}
}

// Clone 建立完整深拷貝：客戶、貸款、儲蓄帳戶皆為副本，與原帳本沒有共用。
func (l *Ledger) Clone() *Ledger {
	cp := &Ledger{
		month:          l.month,
		initialCapital: l.initialCapital,
		customers:      make([]*Customer, len(l.customers)),
		byID:           make(map[string]*Customer, len(l.customers)),
	}
	for i, c := range l.customers {
		cc := c.Clone()
		cp.customers[i] = cc
		cp.byID[cc.ID()] = cc
	}
	return cp
}
