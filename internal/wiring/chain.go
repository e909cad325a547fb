// Package wiring turns the declarative internal/config records into the
// live internal/chain.Executor and internal/sink.SignalSink instances
// both cmd entrypoints need, the way the teacher's fx "Module" functions
// turn config into live components.
package wiring

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/pkg/nats"
	natsgo "github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/chain"
	"github.com/etfarb/arbscan/internal/config"
	"github.com/etfarb/arbscan/internal/detector"
	arberrors "github.com/etfarb/arbscan/internal/errors"
	"github.com/etfarb/arbscan/internal/evaluator"
	"github.com/etfarb/arbscan/internal/filter"
	"github.com/etfarb/arbscan/internal/selector"
	"github.com/etfarb/arbscan/internal/sink"
)

// BuildChain resolves cfg's declarative plugin names into a
// chain.Executor. Unknown names are a Config error, fatal at startup per
// spec §7.
func BuildChain(cfg config.ChainConfig) (*chain.Executor, error) {
	det, err := buildDetector(cfg.EventDetector)
	if err != nil {
		return nil, err
	}
	sel, err := buildSelector(cfg.FundSelector)
	if err != nil {
		return nil, err
	}
	filters, err := buildFilters(cfg.SignalFilters)
	if err != nil {
		return nil, err
	}
	eval := buildEvaluator(cfg.EvaluatorType)

	exec := chain.New(det, sel, filters, eval)
	if ok, messages := exec.Validate(); !ok {
		return nil, arberrors.Newf(arberrors.Config, "invalid chain configuration: %v", messages)
	}
	return exec, nil
}

func buildDetector(name string) (detector.EventDetector, error) {
	switch name {
	case "", "limit_up":
		return detector.NewLimitUp(), nil
	case "breakout":
		return detector.NewBreakout(), nil
	default:
		return nil, arberrors.Newf(arberrors.Config, "unknown event_detector %q", name)
	}
}

func buildSelector(name string) (selector.FundSelector, error) {
	switch name {
	case "", "highest_weight":
		return selector.HighestWeight{}, nil
	case "best_liquidity":
		return selector.BestLiquidity{}, nil
	case "lowest_premium":
		return selector.LowestPremium{}, nil
	default:
		return nil, arberrors.Newf(arberrors.Config, "unknown fund_selector %q", name)
	}
}

func buildFilters(names []string) ([]filter.SignalFilter, error) {
	if len(names) == 0 {
		names = []string{"time_filter", "liquidity_filter"}
	}
	filters := make([]filter.SignalFilter, 0, len(names))
	for _, name := range names {
		switch name {
		case "time_filter":
			filters = append(filters, filter.NewTimeFilterCN())
		case "liquidity_filter":
			filters = append(filters, filter.NewLiquidityFilter())
		case "risk_filter":
			filters = append(filters, filter.NewRiskFilter())
		case "confidence_filter":
			filters = append(filters, filter.NewConfidenceFilter())
		default:
			return nil, arberrors.Newf(arberrors.Config, "unknown signal_filter %q", name)
		}
	}
	return filters, nil
}

func buildEvaluator(evaluatorType string) evaluator.SignalEvaluator {
	switch evaluatorType {
	case "conservative":
		return evaluator.NewConservative()
	case "aggressive":
		return evaluator.NewAggressive()
	default:
		return evaluator.NewDefault()
	}
}

// BuildSink resolves cfg's alert sink choice into a live sink.SignalSink.
// When cfg.Enabled is false, a sink.NullSink is returned regardless of
// cfg.Sink, per original_source/backend/signal/sender.py's
// create_sender_from_config's "disabled -> null sender" short-circuit.
func BuildSink(cfg config.AlertConfig, natsURL, topic string, logger *zap.Logger) (sink.SignalSink, error) {
	if !cfg.Enabled {
		return sink.NullSink{}, nil
	}
	switch cfg.Sink {
	case "", "log":
		return sink.NewLogSink(logger), nil
	case "null":
		return sink.NullSink{}, nil
	case "bus":
		return buildMessageBusSink(natsURL, topic, logger)
	default:
		return nil, arberrors.Newf(arberrors.Config, "unknown alert.sink %q", cfg.Sink)
	}
}

func buildMessageBusSink(natsURL, topic string, logger *zap.Logger) (sink.SignalSink, error) {
	if natsURL == "" {
		natsURL = natsgo.DefaultURL
	}
	publisherConfig := nats.PublisherConfig{
		URL:       natsURL,
		Marshaler: nats.GobMarshaler{},
	}
	publisher, err := nats.NewPublisher(publisherConfig, watermill.NewStdLogger(false, false))
	if err != nil {
		return nil, fmt.Errorf("wiring: building nats publisher: %w", err)
	}
	return sink.NewMessageBusSink(publisher, topic, logger), nil
}
