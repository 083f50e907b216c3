// internal/bank/simulate.go

package bank

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// MaxSimulationMonths 為前瞻模擬的最大月數。
const MaxSimulationMonths = 30

// CustomerProjection 為模擬中單一客戶的預估狀態。
type CustomerProjection struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Status     CustomerStatus  `json:"status"`
	Savings    decimal.Decimal `json:"savings"`
	TotalLoans decimal.Decimal `json:"total_loans"`
}

// Projection 為模擬推進一個月後的彙整報告。
type Projection struct {
	Month     int                  `json:"month"`
	Offset    int                  `json:"offset"`
	Capital   decimal.Decimal      `json:"capital"`
	Summary   MonthSummary         `json:"summary"`
	Customers []CustomerProjection `json:"customers"`
}

// Simulation 在帳本的深拷貝上逐月推進，真實帳本不受影響。
// 序列為惰性、有限且不可重來：每次 Next 完成一整個月才回傳。
type Simulation struct {
	ledger  *Ledger
	horizon int
	offset  int
}

// Simulate 準備 1..30 個月的前瞻模擬。
func Simulate(l *Ledger, months int) (*Simulation, error) {
	if months < 1 || months > MaxSimulationMonths {
		return nil, fmt.Errorf("%w: months must be between 1 and %d, got %d",
			ErrInvalidHorizon, MaxSimulationMonths, months)
	}
	return &Simulation{ledger: l.Clone(), horizon: months}, nil
}

// StartMonth 回傳模擬起點的真實月份。
func (s *Simulation) StartMonth() int { return s.ledger.Now() - s.offset }

// Remaining 回傳尚未推進的月數。
func (s *Simulation) Remaining() int { return s.horizon - s.offset }

// Next 推進一個月並回傳報告；達到上限後回傳 false。
func (s *Simulation) Next() (Projection, bool) {
	if s.offset >= s.horizon {
		return Projection{}, false
	}
	summary := s.ledger.AdvanceOneMonth()
	s.offset++

	p := Projection{
		Month:     s.ledger.Now(),
		Offset:    s.offset,
		Capital:   summary.Capital,
		Summary:   summary,
		Customers: make([]CustomerProjection, 0, s.ledger.Len()),
	}
	for _, c := range s.ledger.customers {
		p.Customers = append(p.Customers, CustomerProjection{
			ID:         c.ID(),
			Name:       c.Name(),
			Status:     c.Status(),
			Savings:    c.Savings().Balance(),
			TotalLoans: c.TotalLoans(),
		})
	}
	return p, true
}

// Projections 以 range-over-func 形式消耗同一個游標；提前 break 不會留下半個月。
func (s *Simulation) Projections() iter.Seq[Projection] {
	return func(yield func(Projection) bool) {
		for {
			p, ok := s.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}
