// internal/storage/model.go
//
// 定義情境檔（scenario）與匯出檔的 JSON 結構。
// 此層只描述資料格式，不涉入商業邏輯；由 bank 層負責轉換。
package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindScenario = "json_scenario"
	KindExport   = "json_export"

	// Version 為目前的檔案結構版本。
	Version = 1
)

// Meta 為所有檔案的中繼資料。
type Meta struct {
	Storage   string    `json:"storage"`        // 檔案類型，例如 "json_scenario"
	Version   int       `json:"version"`        // 結構版本號
	Timestamp time.Time `json:"timestamp"`      // 寫入時間
	Note      string    `json:"note,omitempty"` // 備註
}

// PersistLoan 為貸款的序列化格式。
type PersistLoan struct {
	ID           string          `json:"id"`
	Sum          decimal.Decimal `json:"sum"`
	OriginatedAt int             `json:"originated_at"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Status       string          `json:"status"`
}

// PersistCustomer 為客戶的序列化格式。
type PersistCustomer struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Savings     decimal.Decimal `json:"savings"`
	SavingsRate decimal.Decimal `json:"savings_rate"`
	Status      string          `json:"status"`
	Loans       []PersistLoan   `json:"loans"`
}

// Scenario 為一份可重現的帳本情境，供 what-if 模擬載入。
type Scenario struct {
	Meta           Meta              `json:"_meta"`
	Month          int               `json:"month"`
	InitialCapital decimal.Decimal   `json:"initial_capital"`
	Customers      []PersistCustomer `json:"customers"`
}

// Export 包裝任意報表內容（例如模擬結果）並附上中繼資料。
type Export struct {
	Meta    Meta `json:"_meta"`
	Payload any  `json:"payload"`
}
