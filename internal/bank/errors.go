// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 全部屬於可恢復的驗證失敗，由呼叫端（HTTP handler、CLI）決定如何回應。

package bank

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"banksim/internal/money"
)

var (
	// ErrNotFound 代表客戶不存在。對應 404。
	ErrNotFound = errors.New("customer not found")

	// ErrLoanNotFound 代表指定貸款不屬於該客戶。對應 404。
	ErrLoanNotFound = errors.New("loan not found")

	// ErrInvalidAmount 代表金額非正數或超出上下限。對應 400。
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAuthorizationDenied 代表客戶狀態不允許此操作。對應 403。
	ErrAuthorizationDenied = errors.New("operation not allowed for customer status")

	// ErrLoanLimitExceeded 代表已持有 3 筆貸款。對應 409。
	ErrLoanLimitExceeded = errors.New("customer can not have more than 3 loans concurrently")

	// ErrInsufficientFunds 代表儲蓄餘額不足以提款或還款。對應 409。
	ErrInsufficientFunds = errors.New("insufficient savings")

	// ErrInsufficientBankCapital 代表銀行資本不足以放款或支應提款。對應 409。
	ErrInsufficientBankCapital = errors.New("insufficient bank capital")

	// ErrInvalidHorizon 代表模擬月數不在 1..30。對應 400。
	ErrInvalidHorizon = errors.New("invalid simulation horizon")
)

func invalidAmount(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidAmount, fmt.Sprintf(format, args...))
}

func capitalShortfall(requested, available decimal.Decimal) error {
	return fmt.Errorf("%w: requested %s but bank has only %s (short by %s)",
		ErrInsufficientBankCapital,
		money.Format(requested), money.Format(available),
		money.Format(money.Round(requested.Sub(available))))
}

// CapitalAnomaly 記錄一次觀察到的負資本。
// 只會被回報與記錄，不會由任何變更操作回傳。
type CapitalAnomaly struct {
	Month   int
	Capital decimal.Decimal
}

func (a CapitalAnomaly) Error() string {
	return fmt.Sprintf("critical: bank capital is %s at month %d, capital can not be negative",
		money.Format(a.Capital), a.Month)
}
