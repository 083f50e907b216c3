// internal/server/response.go
//
// 統一 HTTP 回應格式：成功回傳 JSON 本體，錯誤回傳 {"error": "..."}。
// 領域錯誤到狀態碼的對應集中在 statusFor。
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"banksim/internal/bank"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// writeJSON 統一輸出成功回應。
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr 依領域錯誤決定狀態碼。
func writeErr(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorBody{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bank.ErrNotFound), errors.Is(err, bank.ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, bank.ErrAuthorizationDenied):
		return http.StatusForbidden
	case errors.Is(err, bank.ErrInsufficientFunds),
		errors.Is(err, bank.ErrInsufficientBankCapital),
		errors.Is(err, bank.ErrLoanLimitExceeded):
		return http.StatusConflict
	default:
		// 金額、模擬月數與其他輸入錯誤。
		return http.StatusBadRequest
	}
}
