package sink

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/etfarb/arbscan/internal/domain"
)

func TestNullSinkAlwaysSucceeds(t *testing.T) {
	assert.True(t, NullSink{}.Send(domain.TradingSignal{SignalID: "x"}))
}

func TestLogSinkAlwaysSucceeds(t *testing.T) {
	s := NewLogSink(nil)
	assert.True(t, s.Send(domain.TradingSignal{SignalID: "x", StockName: "Moutai", ETFName: "Liquor ETF"}))
}

type recordingPublisher struct {
	topic string
	msgs  []*message.Message
	err   error
}

func (p *recordingPublisher) Publish(topic string, messages ...*message.Message) error {
	if p.err != nil {
		return p.err
	}
	p.topic = topic
	p.msgs = append(p.msgs, messages...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestMessageBusSinkPublishesJSONPayload(t *testing.T) {
	pub := &recordingPublisher{}
	s := NewMessageBusSink(pub, "signals.generated", nil)

	ok := s.Send(domain.TradingSignal{SignalID: "SIG_1", StockCode: "600519"})

	require.True(t, ok)
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "signals.generated", pub.topic)
	assert.Contains(t, string(pub.msgs[0].Payload), "SIG_1")
}

func TestMessageBusSinkPublishFailureReturnsFalse(t *testing.T) {
	pub := &recordingPublisher{err: assertErr{}}
	s := NewMessageBusSink(pub, "signals.generated", nil)

	ok := s.Send(domain.TradingSignal{SignalID: "SIG_1"})

	assert.False(t, ok)
}

type assertErr struct{}

func (assertErr) Error() string { return "publish failed" }
