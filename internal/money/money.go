// internal/money/money.go

// Package money 集中處理金額運算：所有金額以 decimal.Decimal 表示，
// 每一步運算後都四捨五入到小數點後兩位（分）。
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Places 為金額保留的小數位數。
const Places = 2

var monthsPerYear = decimal.NewFromInt(12)

// Zero 為零元。
var Zero = decimal.Zero

// Round 將金額正規化為兩位小數（四捨五入，遠離零）。
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// FromInt 由整數建立金額。
func FromInt(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

// MustParse 解析字串金額；格式錯誤時 panic，僅供常數與測試使用。
func MustParse(s string) decimal.Decimal {
	return Round(decimal.RequireFromString(s))
}

// Sum 逐筆相加，每加一次就取整一次，避免累積誤差。
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := Zero
	for _, v := range values {
		total = Round(total.Add(v))
	}
	return total
}

// Accrue 套用一個月的利息：amount × (1 + annualRate/12)，結果取整。
func Accrue(amount, annualRate decimal.Decimal) decimal.Decimal {
	interest := amount.Mul(annualRate).Div(monthsPerYear)
	return Round(amount.Add(interest))
}

// Format 以歐元格式輸出，例如 €1234.50。
func Format(d decimal.Decimal) string {
	return fmt.Sprintf("€%s", d.StringFixed(Places))
}

// Percent 將年利率轉為百分比字串，例如 0.105 → "10.5%"。
func Percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
