// internal/server/handler.go
//
// Package server
// ─────────────────────────────────────────────
// 提供 HTTP RESTful 介面，作為 bank 模組的應用層。
// 每個 handler 僅負責：
//  1. 解析並驗證請求
//  2. 呼叫 bank 層
//  3. 回傳標準化 JSON 回應
//
// 即時帳本只存在記憶體中；情境檔匯出入只透過 /ledger/scenario。
package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"banksim/internal/bank"
	"banksim/internal/storage"
)

// defaultSimulationMonths 為未指定 months 時的模擬月數。
const defaultSimulationMonths = 12

// Server 為 HTTP 層核心結構，注入銀行核心與 logger。
type Server struct {
	bank     *bank.Bank
	validate *validator.Validate
	logger   *slog.Logger
}

// NewServer 建立新的 HTTP handler 集合。
func NewServer(b *bank.Bank, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{bank: b, validate: newValidator(), logger: logger}
}

type openRequest struct {
	Name    string          `json:"name" validate:"required,max=120"`
	Savings decimal.Decimal `json:"savings" validate:"gte=0"`
}

type depositRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0,lte=1000000"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

type loanRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0,lte=10000"`
}

// GET /customers
func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.List())
}

// POST /customers
func (s *Server) openCustomer(w http.ResponseWriter, r *http.Request) {
	var req openRequest
	if !s.decode(w, r, &req) {
		return
	}
	c, err := s.bank.Open(req.Name, req.Savings)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// GET /customers/{id}
func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := s.bank.Get(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// POST /customers/{id}/deposit
func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	var req depositRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, http.StatusOK)(s.bank.Deposit(mux.Vars(r)["id"], req.Amount))
}

// POST /customers/{id}/withdraw
func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, http.StatusOK)(s.bank.Withdraw(mux.Vars(r)["id"], req.Amount))
}

// POST /customers/{id}/loans
func (s *Server) borrow(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, http.StatusCreated)(s.bank.Borrow(mux.Vars(r)["id"], req.Amount))
}

// POST /customers/{id}/loans/{loanID}/repay
func (s *Server) repay(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if !s.decode(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	s.respond(w, http.StatusOK)(s.bank.Repay(vars["id"], vars["loanID"], req.Amount))
}

// GET /customers/{id}/logs
func (s *Server) logs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.bank.Logs(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

// GET /ledger
func (s *Server) totals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.Totals())
}

// POST /ledger/advance
func (s *Server) advance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.Advance())
}

// GET /ledger/simulate?months=N
func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	months := defaultSimulationMonths
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "months must be an integer")
			return
		}
		months = n
	}
	projections, err := s.bank.Simulate(months)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projections)
}

// GET /ledger/scenario
func (s *Server) exportScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.bank.Snapshot())
}

// PUT /ledger/scenario
func (s *Server) importScenario(w http.ResponseWriter, r *http.Request) {
	var sc storage.Scenario
	if !s.decode(w, r, &sc) {
		return
	}
	if sc.Meta.Version > storage.Version {
		writeError(w, http.StatusBadRequest, "scenario version is newer than supported")
		return
	}
	if err := s.bank.Restore(sc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.bank.Totals())
}

// health 提供健康檢查端點：GET /health。
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "month": s.bank.Now()})
}

// respond 將 (view, err) 轉成回應。
func (s *Server) respond(w http.ResponseWriter, code int) func(*bank.CustomerView, error) {
	return func(c *bank.CustomerView, err error) {
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, code, c)
	}
}
