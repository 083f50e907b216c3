// internal/generator/generator.go
//
// 產生隨機示範客戶：不重複的姓名、0–30000 的儲蓄，以及 0–3 筆 1–10000 的既有貸款。

package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"banksim/internal/bank"
)

// Config drives the customer generator.
type Config struct {
	Customers     int
	MaxSavings    int
	MaxLoanAmount int
	Seed          uint64 // 0 表示每次不同
}

// DefaultConfig returns the settings used to seed a fresh bank.
func DefaultConfig() Config {
	return Config{
		Customers:     10,
		MaxSavings:    30_000,
		MaxLoanAmount: 10_000,
	}
}

// Enroller 為可接收新客戶的對象；*bank.Ledger 與 *bank.Bank 皆實作此介面。
type Enroller interface {
	Now() int
	Enroll(*bank.Customer) error
}

// Result 彙整一次 Populate 的結果。
type Result struct {
	Enrolled []string `json:"enrolled"`
	Skipped  int      `json:"skipped"`
}

// Generator produces random customers.
type Generator struct {
	cfg   Config
	faker *gofakeit.Faker
	names map[string]struct{}
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Customers < 0 {
		cfg.Customers = 0
	}
	if cfg.MaxSavings <= 0 {
		cfg.MaxSavings = def.MaxSavings
	}
	if cfg.MaxLoanAmount <= 0 || cfg.MaxLoanAmount > def.MaxLoanAmount {
		cfg.MaxLoanAmount = def.MaxLoanAmount
	}
	return &Generator{
		cfg:   cfg,
		faker: gofakeit.New(cfg.Seed),
		names: make(map[string]struct{}),
	}
}

// Customer 產生一位客戶，其貸款以 month 為起始月份。
func (g *Generator) Customer(month int) (*bank.Customer, error) {
	loans := make([]*bank.Loan, g.faker.IntRange(0, bank.MaxLoansPerCustomer))
	for i := range loans {
		amount := decimal.NewFromInt(int64(g.faker.IntRange(1, g.cfg.MaxLoanAmount)))
		l, err := bank.NewLoan(amount, month)
		if err != nil {
			return nil, err
		}
		loans[i] = l
	}
	savings := decimal.NewFromInt(int64(g.faker.IntRange(0, g.cfg.MaxSavings)))
	return bank.NewCustomer(g.uniqueName(), savings, loans...)
}

// Populate 產生 cfg.Customers 位候選客戶並逐一加入 e。
// 會讓銀行資本變負的候選者略過並計數，其他錯誤直接回傳。
func (g *Generator) Populate(ctx context.Context, e Enroller) (Result, error) {
	res := Result{Enrolled: make([]string, 0, g.cfg.Customers)}
	for range g.cfg.Customers {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		c, err := g.Customer(e.Now())
		if err != nil {
			return res, err
		}
		if err := e.Enroll(c); err != nil {
			if errors.Is(err, bank.ErrInsufficientBankCapital) {
				res.Skipped++
				continue
			}
			return res, err
		}
		res.Enrolled = append(res.Enrolled, c.ID())
	}
	return res, nil
}

func (g *Generator) uniqueName() string {
	var name string
	for attempt := 0; ; attempt++ {
		name = g.faker.FirstName() + " " + g.faker.LastName()
		if attempt >= 20 {
			name = fmt.Sprintf("%s %d", name, len(g.names)+1)
		}
		if _, taken := g.names[name]; !taken {
			break
		}
	}
	g.names[name] = struct{}{}
	return name
}
