// Package chain implements the ChainExecutor that runs one full scan of
// one security at one instant through the detector/selector/filter/
// evaluator pipeline.
package chain

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/etfarb/arbscan/internal/clock"
	"github.com/etfarb/arbscan/internal/detector"
	"github.com/etfarb/arbscan/internal/domain"
	arberrors "github.com/etfarb/arbscan/internal/errors"
	"github.com/etfarb/arbscan/internal/evaluator"
	"github.com/etfarb/arbscan/internal/filter"
	"github.com/etfarb/arbscan/internal/provider"
	"github.com/etfarb/arbscan/internal/selector"
)

// Executor runs the strategy chain: EventDetector -> FundSelector ->
// SignalFilter* -> SignalEvaluator. Ported step-for-step from
// original_source/backend/arbitrage/engine/strategy_executor.py's
// StrategyExecutor.execute/validate.
type Executor struct {
	Detector  detector.EventDetector
	Selector  selector.FundSelector
	Filters   []filter.SignalFilter
	Evaluator evaluator.SignalEvaluator // nil is valid: confidence/risk stay unset
}

// New builds an Executor. evaluator may be nil.
func New(d detector.EventDetector, s selector.FundSelector, filters []filter.SignalFilter, ev evaluator.SignalEvaluator) *Executor {
	return &Executor{Detector: d, Selector: s, Filters: filters, Evaluator: ev}
}

// Validate reports whether the chain has the minimum required components
// (a detector and a selector), plus a warning-grade message when no
// filters are configured.
func (x *Executor) Validate() (ok bool, messages []string) {
	if x.Detector == nil {
		messages = append(messages, "missing event detector")
	}
	if x.Selector == nil {
		messages = append(messages, "missing fund selector")
	}
	ok = x.Detector != nil && x.Selector != nil
	if len(x.Filters) == 0 {
		messages = append(messages, "no signal filters configured (consider at least a time filter)")
	}
	return ok, messages
}

// Execute runs one scan of securityCode at the providers' current
// instant. Provider errors are captured as typed errors describing their
// origin and degrade to a NoSignal outcome; they never propagate as a Go
// error to the caller, matching spec §7's "no signal, reason=..."
// recovery policy.
func (x *Executor) Execute(ctx context.Context, quotes provider.QuoteProvider, holdings provider.HoldingProvider, securityCode string) (Outcome, []string) {
	correlationID := uuid.NewString()
	log := []string{fmt.Sprintf("execution %s: scanning %s", correlationID, securityCode)}

	quote, err := quotes.Quote(ctx, securityCode)
	if err != nil {
		wrapped := arberrors.Wrap(err, arberrors.ProviderTimeout, "quote provider failed").WithDetail("stage", "quote")
		log = append(log, wrapped.Error())
		return noSignal("no quote"), log
	}
	if quote == nil {
		return noSignal("no quote"), append(log, "no quote available")
	}

	event, detected := x.Detector.Detect(*quote)
	if !detected {
		return noSignal("event not detected"), append(log, "no event detected")
	}
	if !x.Detector.IsValid(*event) {
		return noSignal("event invalid"), append(log, fmt.Sprintf("event validation failed: %s", event.EventType))
	}
	log = append(log, fmt.Sprintf("detected event: %s - %s (+%.2f%%, price %.2f)",
		event.EventType, event.SecurityName, event.ChangePct*100, event.Price))

	eligible, err := holdings.HoldingsFor(ctx, event.SecurityCode)
	if err != nil {
		wrapped := arberrors.Wrap(err, arberrors.ProviderTimeout, "holding provider failed").WithDetail("stage", "holdings")
		log = append(log, wrapped.Error())
		return noSignal("no eligible funds"), log
	}
	if len(eligible) == 0 {
		return noSignal("no eligible funds"), append(log, "no eligible funds for security")
	}

	selected, ok := x.Selector.Select(eligible, *event)
	if !ok {
		return noSignal("no fund selected"), append(log, fmt.Sprintf("fund selector declined among %d candidates", len(eligible)))
	}
	log = append(log, fmt.Sprintf("selected fund: %s (%s)", selected.ETFName, x.Selector.Reason(*selected)))

	etfQuote, err := quotes.Quote(ctx, selected.ETFCode)
	if err != nil {
		wrapped := arberrors.Wrap(err, arberrors.ProviderTimeout, "etf quote provider failed").WithDetail("stage", "etf-quote")
		log = append(log, wrapped.Error())
		return noSignal("no etf quote"), log
	}
	if etfQuote == nil {
		return noSignal("no etf quote"), append(log, fmt.Sprintf("no quote for fund %s", selected.ETFCode))
	}

	now := clock.Active().Now(clock.CHINA)
	signal := domain.TradingSignal{
		SignalID:       domain.NewSignalID(now, event.SecurityCode),
		Timestamp:      now,
		StockCode:      event.SecurityCode,
		StockName:      event.SecurityName,
		StockPrice:     event.Price,
		ChangePct:      event.ChangePct,
		LimitTime:      event.TriggerTime.Format("15:04:05"),
		SealAmount:     event.MetaFloat("seal_amount"),
		ETFCode:        selected.ETFCode,
		ETFName:        selected.ETFName,
		ETFWeight:      selected.Weight,
		ETFPrice:       etfQuote.Price,
		ETFPremium:     etfQuote.Premium,
		ETFDailyAmount: etfQuote.Amount,
		ActualWeight:   selected.Weight,
		WeightRank:     selected.Rank,
		Top10Ratio:     selected.Top10Ratio,
		Reason: fmt.Sprintf("%s %s (%.2f%%), held at %.2f%% in %s (rank %d)",
			event.SecurityName, event.EventType, event.ChangePct*100, selected.WeightPct(), selected.ETFName, selected.Rank),
	}

	for _, f := range x.Filters {
		reject, reason := f.Filter(*event, *selected, signal)
		if !reject {
			continue
		}
		if f.IsRequired() {
			msg := fmt.Sprintf("rejected by %s: %s", f.Name(), reason)
			return noSignal(msg), append(log, msg)
		}
		log = append(log, fmt.Sprintf("warning: %s: %s", f.Name(), reason))
	}

	if x.Evaluator != nil {
		confidence, risk := x.Evaluator.Evaluate(*event, *selected)
		signal.Confidence = confidence
		signal.RiskLevel = risk
		log = append(log, fmt.Sprintf("evaluated: confidence=%s risk=%s", confidence, risk))
	}

	log = append(log, fmt.Sprintf("signal generated: %s -> %s", signal.StockName, signal.ETFName))
	return signalOutcome(signal), log
}
