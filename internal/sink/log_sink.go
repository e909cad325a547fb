package sink

import (
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/domain"
)

// LogSink formats the same multi-line record as
// original_source/backend/signal/sender.py's LogSender, via zap instead
// of loguru.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink builds a LogSink. A nil logger defaults to zap.NewNop().
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Send implements SignalSink: always succeeds.
func (s *LogSink) Send(signal domain.TradingSignal) bool {
	s.logger.Info("trading signal",
		zap.String("stock", signal.StockName),
		zap.String("stock_code", signal.StockCode),
		zap.String("etf", signal.ETFName),
		zap.String("etf_code", signal.ETFCode),
		zap.Float64("price", signal.StockPrice),
		zap.Float64("change_pct", signal.ChangePct*100),
		zap.Float64("weight_pct", signal.ETFWeight*100),
		zap.Int("rank", signal.WeightRank),
		zap.String("confidence", string(signal.Confidence)),
		zap.String("risk", string(signal.RiskLevel)),
		zap.String("reason", signal.Reason),
	)
	return true
}
