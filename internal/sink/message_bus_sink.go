package sink

import (
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/domain"
)

// MessageBusSink publishes signals as JSON-encoded watermill messages on a
// fixed topic. Grounded on the teacher's
// internal/architecture/cqrs/eventbus watermill adapters (PublishEvent:
// build a message.Message keyed by a fresh UUID, hand it to a
// message.Publisher). The publisher itself (NATS-backed, via
// watermill-nats) is supplied by the caller so this sink stays
// transport-agnostic.
type MessageBusSink struct {
	publisher message.Publisher
	topic     string
	logger    *zap.Logger
}

// NewMessageBusSink builds a MessageBusSink publishing to topic via pub.
func NewMessageBusSink(pub message.Publisher, topic string, logger *zap.Logger) *MessageBusSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageBusSink{publisher: pub, topic: topic, logger: logger}
}

// Send implements SignalSink. A publish failure is logged and reported as
// a false return; the caller's ScanCoordinator treats sink failures as
// non-fatal (spec §7).
func (s *MessageBusSink) Send(signal domain.TradingSignal) bool {
	payload, err := json.Marshal(signal)
	if err != nil {
		s.logger.Error("signal marshal failed", zap.Error(err))
		return false
	}

	msg := message.NewMessage(uuid.NewString(), payload)
	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.logger.Error("signal publish failed", zap.Error(err),
			zap.String("topic", s.topic), zap.String("signal_id", signal.SignalID))
		return false
	}
	return true
}
