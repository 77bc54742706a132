package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/surf-forecast-service/internal/config"
	"github.com/couchcryptid/surf-forecast-service/internal/domain"
	"github.com/couchcryptid/surf-forecast-service/internal/observability"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes served forecasts to a Kafka topic, one message per time slot.
// It implements http.ForecastPublisher.
type Writer struct {
	writer  messageWriter
	clock   clockwork.Clock
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured forecast topic.
func NewWriter(cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaForecastTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, clock: clock, metrics: metrics, logger: logger}
}

// PublishForecast serializes each TimeForecast and writes them in a single
// WriteMessages call. An empty forecast publishes nothing.
func (w *Writer) PublishForecast(ctx context.Context, userID string, forecast []domain.TimeForecast) error {
	if len(forecast) == 0 {
		return nil
	}
	publishedAt := w.clock.Now()
	msgs := make([]kafkago.Message, len(forecast))
	for i := range forecast {
		msg, err := serializeToMessage(userID, forecast[i], publishedAt)
		if err != nil {
			w.metrics.ForecastPublishes.WithLabelValues("error").Inc()
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		w.metrics.ForecastPublishes.WithLabelValues("error").Inc()
		return fmt.Errorf("publish forecast: %w", err)
	}
	w.metrics.ForecastPublishes.WithLabelValues("success").Inc()
	w.logger.Debug("forecast published", "user_id", userID, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a TimeForecast into a Kafka message keyed by its time.
func serializeToMessage(userID string, forecast domain.TimeForecast, publishedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(forecast)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize time forecast: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(forecast.Time),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "user_id", Value: []byte(userID)},
			{Key: "published_at", Value: []byte(publishedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
