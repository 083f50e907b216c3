// internal/generator/generator_test.go

package generator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banksim/internal/bank"
)

func TestCustomerBounds(t *testing.T) {
	g := New(Config{Customers: 1, Seed: 11})
	for range 200 {
		c, err := g.Customer(4)
		require.NoError(t, err)

		bal := c.Savings().Balance()
		assert.False(t, bal.IsNegative())
		assert.LessOrEqual(t, bal.IntPart(), int64(30_000), "savings %s", bal)

		loans := c.Loans()
		assert.LessOrEqual(t, len(loans), bank.MaxLoansPerCustomer)
		for _, l := range loans {
			assert.True(t, l.Sum().IsPositive())
			assert.True(t, l.Sum().LessThanOrEqual(bank.MaxLoanAmount))
			assert.Equal(t, 4, l.OriginatedAt())
		}
	}
}

func TestNamesAreUnique(t *testing.T) {
	g := New(Config{Seed: 3})
	seen := map[string]bool{}
	for range 500 {
		c, err := g.Customer(0)
		require.NoError(t, err)
		assert.False(t, seen[c.Name()], "duplicate name %q", c.Name())
		seen[c.Name()] = true
	}
}

func TestSameSeedSameCustomers(t *testing.T) {
	a, b := New(Config{Seed: 42}), New(Config{Seed: 42})
	for range 20 {
		ca, err := a.Customer(0)
		require.NoError(t, err)
		cb, err := b.Customer(0)
		require.NoError(t, err)

		assert.Equal(t, ca.Name(), cb.Name())
		assert.True(t, ca.Savings().Balance().Equal(cb.Savings().Balance()))
		assert.True(t, ca.TotalLoans().Equal(cb.TotalLoans()))
		assert.NotEqual(t, ca.ID(), cb.ID())
	}
}

func TestPopulateLedger(t *testing.T) {
	l := bank.NewLedger(bank.DefaultInitialCapital)
	res, err := New(Config{Customers: 10, Seed: 7}).Populate(context.Background(), l)
	require.NoError(t, err)

	assert.Equal(t, 10, len(res.Enrolled)+res.Skipped)
	assert.Equal(t, len(res.Enrolled), l.Len())
	assert.False(t, l.Capital().IsNegative())
}

type rejecting struct{ err error }

func (r rejecting) Now() int                    { return 0 }
func (r rejecting) Enroll(*bank.Customer) error { return r.err }

func TestPopulateSkipsCapitalRejections(t *testing.T) {
	e := rejecting{err: fmt.Errorf("%w: no room", bank.ErrInsufficientBankCapital)}
	res, err := New(Config{Customers: 5, Seed: 1}).Populate(context.Background(), e)
	require.NoError(t, err)
	assert.Empty(t, res.Enrolled)
	assert.Equal(t, 5, res.Skipped)
}

func TestPopulateStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(Config{Customers: 5, Seed: 1}).Populate(context.Background(), rejecting{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestPopulateHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New(Config{Customers: 5}).Populate(ctx, bank.NewLedger(bank.DefaultInitialCapital))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, res.Enrolled)
}
