package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/quakemap/internal/config"
	"github.com/couchcryptid/quakemap/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Message headers attached to every published marker.
const (
	HeaderSnapshotID  = "snapshot_id"
	HeaderGeneratedAt = "generated_at"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes map markers to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured marker topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish sends every marker of the earthquake overlay in a single
// WriteMessages call. Marker order is preserved.
func (w *Writer) Publish(ctx context.Context, view *domain.MapView) error {
	layer, ok := view.Overlay(domain.EarthquakesLayer)
	if !ok || len(layer.Markers) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(layer.Markers))
	for i := range layer.Markers {
		msg, err := serializeToMessage(view, i, layer.Markers[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write markers: %w", err)
	}
	w.logger.Info("markers published", "count", len(msgs), "snapshot_id", view.ID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Marker into a Kafka message keyed by feature
// id, or by its index when the feature had none.
func serializeToMessage(view *domain.MapView, index int, m domain.Marker) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize marker: %w", err)
	}
	key := m.FeatureID
	if key == "" {
		key = strconv.Itoa(index)
	}
	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderSnapshotID, Value: []byte(view.ID)},
			{Key: HeaderGeneratedAt, Value: []byte(view.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
