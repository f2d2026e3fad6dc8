package notification

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// Notifier publishes domain events. Publishing is best effort: callers
// log failures and carry on.
type Notifier interface {
	ReservaStatusChanged(ctx context.Context, ev ReservaStatusChanged) error
	FacturaAnnulled(ctx context.Context, ev FacturaAnnulled) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaNotifier struct {
	writer messageWriter
	log    *zap.Logger
}

func NewKafkaNotifier(brokers []string, topic string, log *zap.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		log: log,
	}
}

func (n *KafkaNotifier) ReservaStatusChanged(ctx context.Context, ev ReservaStatusChanged) error {
	ev.Type = TypeReservaStatusChanged
	return n.publish(ctx, "reserva-"+strconv.FormatInt(ev.ReservaID, 10), ev.Type, ev)
}

func (n *KafkaNotifier) FacturaAnnulled(ctx context.Context, ev FacturaAnnulled) error {
	ev.Type = TypeFacturaAnnulled
	return n.publish(ctx, "factura-"+strconv.FormatInt(ev.FacturaID, 10), ev.Type, ev)
}

// publish keys messages by entity so all events for one reservation land
// on the same partition in order.
func (n *KafkaNotifier) publish(ctx context.Context, key, eventType string, payload any) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	value, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}
	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   value,
		Headers: []kafka.Header{{Key: "type", Value: []byte(eventType)}},
	})
	if err != nil {
		return errors.Wrapf(err, "publish %s", eventType)
	}
	n.log.Debug("event published", zap.String("type", eventType), zap.String("key", key))
	return nil
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}

// NopNotifier drops every event. Used when no brokers are configured.
type NopNotifier struct{}

func (NopNotifier) ReservaStatusChanged(context.Context, ReservaStatusChanged) error { return nil }
func (NopNotifier) FacturaAnnulled(context.Context, FacturaAnnulled) error           { return nil }
func (NopNotifier) Close() error                                                     { return nil }
