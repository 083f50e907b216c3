// internal/logging/logger.go
//
// 建立全服務共用的 slog.Logger。
// 格式（text / json）與等級由 LOG_* 設定決定；decimal 金額欄位一律輸出兩位小數，
// 讓 log 與 API 回應的金額字串一致。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"banksim/internal/config"
	"banksim/internal/money"
)

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// New 建立輸出到 stdout 的 logger（HTTP 服務使用）。
func New(cfg config.LoggingConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter 依設定建立 logger 並輸出到 w。
// CLI 傳入 stderr 以免混入報表，測試傳入 buffer。
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(cfg.Level),
		AddSource:   cfg.IncludeCaller,
		ReplaceAttr: moneyAttr,
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// parseLevel 不認得的等級一律視為 info。
func parseLevel(level string) slog.Level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return slog.LevelInfo
}

func moneyAttr(_ []string, a slog.Attr) slog.Attr {
	if d, ok := a.Value.Any().(decimal.Decimal); ok {
		return slog.String(a.Key, d.StringFixed(money.Places))
	}
	return a
}
