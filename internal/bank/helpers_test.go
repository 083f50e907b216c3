// internal/bank/helpers_test.go
//
// 測試共用的小工具。

package bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banksim/internal/money"
)

// d 為 money.MustParse 的縮寫。
func d(s string) decimal.Decimal { return money.MustParse(s) }

// rate 解析利率，不取整。
func rate(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// exact 解析未取整的金額，用來模擬分以下的輸入。
func exact(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertMoney 以 decimal 等值比較金額，失敗訊息顯示兩邊的字串。
func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

// fakeSession 為固定月份與資本的 Session。
type fakeSession struct {
	now     int
	capital decimal.Decimal
}

func (f fakeSession) Now() int                 { return f.now }
func (f fakeSession) Capital() decimal.Decimal { return f.capital }

func richSession(now int) fakeSession {
	return fakeSession{now: now, capital: money.FromInt(1_000_000)}
}

func mustLoan(t *testing.T, amount string, month int) *Loan {
	t.Helper()
	l, err := NewLoan(d(amount), month)
	require.NoError(t, err)
	return l
}

func mustCustomer(t *testing.T, name, savings string, loans ...*Loan) *Customer {
	t.Helper()
	c, err := NewCustomer(name, d(savings), loans...)
	require.NoError(t, err)
	return c
}
