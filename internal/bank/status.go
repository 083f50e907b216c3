// internal/bank/status.go

package bank

import "fmt"

// CustomerStatus 為客戶狀態機的狀態。
type CustomerStatus string

const (
	StatusActive       CustomerStatus = "ACTIVE"
	StatusOverdueLoans CustomerStatus = "OVERDUE_LOANS"
	StatusLocked       CustomerStatus = "LOCKED"
)

// LoanStatus 為單筆貸款狀態。
type LoanStatus string

const (
	LoanActive LoanStatus = "ACTIVE"
	LoanPaid   LoanStatus = "PAID"
)

// Operation 為客戶可發起、受狀態管制的操作。
type Operation string

const (
	OpDeposit  Operation = "deposit"
	OpWithdraw Operation = "withdraw"
	OpBorrow   Operation = "borrow"
	OpRepay    Operation = "repay"
)

// permissions 是各狀態允許的操作表。LOCKED 不允許任何操作。
var permissions = map[CustomerStatus]map[Operation]bool{
	StatusActive: {
		OpDeposit:  true,
		OpWithdraw: true,
		OpBorrow:   true,
		OpRepay:    true,
	},
	StatusOverdueLoans: {
		OpDeposit: true,
		OpRepay:   true,
	},
	StatusLocked: {},
}

// Allows 回報此狀態下是否允許 op。
func (s CustomerStatus) Allows(op Operation) bool {
	return permissions[s][op]
}

// authorize 依操作表檢查權限，失敗時回傳 ErrAuthorizationDenied。
func (s CustomerStatus) authorize(op Operation) error {
	if s.Allows(op) {
		return nil
	}
	switch s {
	case StatusLocked:
		return fmt.Errorf("%w: customer is locked, %s refused", ErrAuthorizationDenied, op)
	case StatusOverdueLoans:
		return fmt.Errorf("%w: customer has overdue loans, %s refused", ErrAuthorizationDenied, op)
	default:
		return fmt.Errorf("%w: %s refused in status %s", ErrAuthorizationDenied, op, s)
	}
}

// Valid 回報 s 是否為已知狀態。
func (s CustomerStatus) Valid() bool {
	_, ok := permissions[s]
	return ok
}
