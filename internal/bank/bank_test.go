// internal/bank/bank_test.go
//
// Bank 聚合根的測試：以客戶 ID 操作、並行安全、模擬隔離與情境檔的匯出匯入。
// 全部為 in-memory 執行，不依賴外部服務。

package bank

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banksim/internal/storage"
)

func open(t *testing.T, b *Bank, name, savings string) *CustomerView {
	t.Helper()
	v, err := b.Open(name, d(savings))
	require.NoError(t, err)
	return v
}

func TestOpenGetList(t *testing.T) {
	b := NewBank(DefaultInitialCapital, nil)
	a := open(t, b, "Ada Lovelace", "1000")
	c := open(t, b, "Alan Turing", "500")

	assert.NotEqual(t, a.ID, c.ID)
	assert.Equal(t, "ada_lovelace", a.Username)
	assert.Equal(t, StatusActive, a.Status)

	all := b.List()
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)

	got, err := b.Get(c.ID)
	require.NoError(t, err)
	assertMoney(t, "500", got.Savings)

	_, err = b.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = b.Open("Bad", d("-1"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestBankOperations(t *testing.T) {
	b := NewBank(DefaultInitialCapital, nil)
	a := open(t, b, "Ada", "1000")

	v, err := b.Deposit(a.ID, d("200"))
	require.NoError(t, err)
	assertMoney(t, "1200", v.Savings)

	v, err = b.Withdraw(a.ID, d("100"))
	require.NoError(t, err)
	assertMoney(t, "1100", v.Savings)

	v, err = b.Borrow(a.ID, d("800"))
	require.NoError(t, err)
	require.Len(t, v.Loans, 1)
	loanID := v.Loans[0].ID
	assertMoney(t, "1900", v.Savings)
	assert.Equal(t, 12, v.Loans[0].MonthsUntilExpiry)

	v, err = b.Repay(a.ID, loanID, d("500"))
	require.NoError(t, err)
	assertMoney(t, "300", v.Loans[0].Sum)
	assertMoney(t, "1400", v.Savings)

	_, err = b.Repay(a.ID, "no-such-loan", d("1"))
	assert.ErrorIs(t, err, ErrLoanNotFound)
	_, err = b.Deposit("missing", d("1"))
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = b.Borrow(a.ID, d("10000.01"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	logs, err := b.Logs(a.ID)
	require.NoError(t, err)
	kinds := make([]string, 0, len(logs))
	for _, lg := range logs {
		kinds = append(kinds, lg.Kind)
	}
	assert.Equal(t, []string{LogDeposit, LogWithdraw, LogLoanIssued, LogRepayment}, kinds)

	tot := b.Totals()
	assertMoney(t, "1400", tot.TotalSavings)
	assertMoney(t, "300", tot.TotalLoans)
	assertMoney(t, "101100", tot.Capital)
}

func TestBankAdvanceAndSimulate(t *testing.T) {
	b := NewBank(DefaultInitialCapital, nil)
	a := open(t, b, "Ada", "1000")

	sum := b.Advance()
	assert.Equal(t, 1, sum.Month)
	assert.Equal(t, 1, b.Now())

	got, err := b.Get(a.ID)
	require.NoError(t, err)
	assertMoney(t, "1004.17", got.Savings)

	projections, err := b.Simulate(6)
	require.NoError(t, err)
	require.Len(t, projections, 6)
	assert.Equal(t, 7, projections[5].Month)
	assert.Equal(t, 1, b.Now(), "simulation leaves the real clock alone")

	again, err := b.Get(a.ID)
	require.NoError(t, err)
	assertMoney(t, "1004.17", again.Savings)

	_, err = b.Simulate(31)
	assert.ErrorIs(t, err, ErrInvalidHorizon)
}

func TestConcurrentDepositsRaceSafety(t *testing.T) {
	b := NewBank(DefaultInitialCapital, nil)
	a := open(t, b, "Ada", "0")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = b.Deposit(a.ID, d("10"))
		}()
	}
	wg.Wait()

	got, err := b.Get(a.ID)
	require.NoError(t, err)
	assertMoney(t, "500", got.Savings)
}

func TestSnapshotRestore(t *testing.T) {
	b := NewBank(d("50000"), nil)
	a := open(t, b, "Ada", "12000")
	_, err := b.Borrow(a.ID, d("2500"))
	require.NoError(t, err)
	b.Advance()

	snap := b.Snapshot()
	assert.Equal(t, storage.KindScenario, snap.Meta.Storage)
	assert.Equal(t, 1, snap.Month)
	require.Len(t, snap.Customers, 1)
	require.Len(t, snap.Customers[0].Loans, 1)

	restored := NewBank(DefaultInitialCapital, nil)
	require.NoError(t, restored.Restore(snap))
	assert.Equal(t, 1, restored.Now())

	want, err := b.Get(a.ID)
	require.NoError(t, err)
	got, err := restored.Get(a.ID)
	require.NoError(t, err)
	assert.True(t, want.Savings.Equal(got.Savings))
	assert.True(t, want.SavingsRate.Equal(got.SavingsRate))
	assert.Equal(t, want.Loans[0].ID, got.Loans[0].ID)
	assert.True(t, want.Loans[0].Sum.Equal(got.Loans[0].Sum))
	assert.True(t, want.Loans[0].InterestRate.Equal(got.Loans[0].InterestRate))
	assert.True(t, b.Totals().Capital.Equal(restored.Totals().Capital))
}

func TestRestoreRejectsBadScenario(t *testing.T) {
	b := NewBank(DefaultInitialCapital, nil)
	a := open(t, b, "Ada", "10")

	bad := []storage.Scenario{
		{Month: -1},
		{Customers: []storage.PersistCustomer{{Name: "X", Status: "FROZEN"}}},
		{Customers: []storage.PersistCustomer{{Name: "X", Status: "ACTIVE", Savings: d("-5")}}},
		{Customers: []storage.PersistCustomer{{Name: "X", Status: "ACTIVE", Loans: []storage.PersistLoan{{Sum: d("0")}}}}},
		{Customers: []storage.PersistCustomer{{Name: "X", Status: "ACTIVE", Loans: []storage.PersistLoan{{Sum: d("10"), Status: "PAID"}}}}},
		{Customers: []storage.PersistCustomer{{Name: "X", Status: "ACTIVE", Loans: []storage.PersistLoan{{Sum: d("10"), InterestRate: rate("0.2")}}}}},
		{Customers: []storage.PersistCustomer{
			{ID: "same", Name: "X", Status: "ACTIVE"},
			{ID: "same", Name: "Y", Status: "ACTIVE"},
		}},
	}
	for i, s := range bad {
		assert.Error(t, b.Restore(s), "scenario #%d", i)
	}

	_, err := b.Get(a.ID)
	assert.NoError(t, err, "failed restore keeps the previous ledger")
}

// 已計息超過放款上限的貸款仍可由情境檔載入。
func TestRestoreAcceptsAccruedLoanAboveLimit(t *testing.T) {
	b := NewBank(DefaultInitialCapital, nil)
	require.NoError(t, b.Restore(storage.Scenario{
		Month:          20,
		InitialCapital: DefaultInitialCapital,
		Customers: []storage.PersistCustomer{{
			Name: "Ada", Status: "OVERDUE_LOANS",
			Loans: []storage.PersistLoan{{ID: "l1", Sum: d("10500.25"), OriginatedAt: 8, InterestRate: rate("0.105")}},
		}},
	}))

	all := b.List()
	require.Len(t, all, 1)
	assert.Equal(t, StatusOverdueLoans, all[0].Status)
	require.Len(t, all[0].Loans, 1)
	assert.Equal(t, "l1", all[0].Loans[0].ID)
	assert.True(t, all[0].Loans[0].Expired)
}

func TestCapitalAnomalyIsLogged(t *testing.T) {
	var buf bytes.Buffer
	b := NewBank(DefaultInitialCapital, slog.New(slog.NewTextHandler(&buf, nil)))
	require.NoError(t, b.Restore(storage.Scenario{
		InitialCapital: d("0"),
		Customers: []storage.PersistCustomer{{
			Name: "Ada", Status: "ACTIVE",
			Loans: []storage.PersistLoan{{Sum: d("500")}},
		}},
	}))

	tot := b.Totals()
	assertMoney(t, "-500", tot.Capital)
	assert.Contains(t, buf.String(), "capital anomaly")
	assert.Contains(t, buf.String(), "level=ERROR")
}

// 分以下的借款被拒絕，客戶之後照常計息、不會被鎖定。
func TestSubCentBorrowNeverLocksCustomer(t *testing.T) {
	b := NewBank(DefaultInitialCapital, nil)
	a := open(t, b, "Ada", "5000")

	_, err := b.Borrow(a.ID, exact("0.004"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	for range 13 {
		b.Advance()
	}

	got, err := b.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, got.Status)
	assert.Empty(t, got.Loans)
	assert.True(t, got.Savings.GreaterThan(d("5000")))
}

func TestRestoreRejectsLoanRoundingToZero(t *testing.T) {
	b := NewBank(DefaultInitialCapital, nil)
	err := b.Restore(storage.Scenario{
		Customers: []storage.PersistCustomer{{
			Name: "Ada", Status: "ACTIVE",
			Loans: []storage.PersistLoan{{Sum: exact("0.004")}},
		}},
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Empty(t, b.List())
}
