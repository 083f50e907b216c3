// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊，與 handler.go 分離：
//   - handler.go 定義「如何處理請求」
//   - router.go 定義「請求如何被導向」與中介層順序
package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// maxBodyBytes 為請求本體上限。
const maxBodyBytes = 1 << 20

// Router 建立並回傳整個 HTTP 處理鏈。
// 同一組路由同時掛在根路徑與 /api/v1 之下。
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(recovery(s.logger))
	r.Use(requestLogger(s.logger))
	r.Use(bodyLimit(maxBodyBytes))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	s.routes(r.PathPrefix("/api/v1").Subrouter())
	s.routes(r)
	return r
}

func (s *Server) routes(r *mux.Router) {
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	// 客戶
	r.HandleFunc("/customers", s.listCustomers).Methods(http.MethodGet)
	r.HandleFunc("/customers", s.openCustomer).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id}", s.getCustomer).Methods(http.MethodGet)
	r.HandleFunc("/customers/{id}/deposit", s.deposit).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id}/withdraw", s.withdraw).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id}/loans", s.borrow).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id}/loans/{loanID}/repay", s.repay).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id}/logs", s.logs).Methods(http.MethodGet)

	// 帳本
	r.HandleFunc("/ledger", s.totals).Methods(http.MethodGet)
	r.HandleFunc("/ledger/advance", s.advance).Methods(http.MethodPost)
	r.HandleFunc("/ledger/simulate", s.simulate).Methods(http.MethodGet)
	r.HandleFunc("/ledger/scenario", s.exportScenario).Methods(http.MethodGet)
	r.HandleFunc("/ledger/scenario", s.importScenario).Methods(http.MethodPut)
}
