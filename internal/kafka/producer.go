package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-analysis-service/internal/models"
)

// Event type constants
const (
	EventReportSaved    = "REPORT_SAVED"
	EventPositionOpened = "POSITION_OPENED"
	EventPositionClosed = "POSITION_CLOSED"
)

// AnalysisEvent is the envelope published for report and position changes
type AnalysisEvent struct {
	EventType string                    `json:"event_type"`
	Symbol    string                    `json:"symbol"`
	Report    *models.Report            `json:"report,omitempty"`
	Position  *models.PortfolioPosition `json:"position,omitempty"`
	Timestamp time.Time                 `json:"timestamp"`
}

// Producer handles publishing lifecycle events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishReportSaved publishes a report saved event
func (p *Producer) PublishReportSaved(ctx context.Context, report *models.Report) error {
	event := AnalysisEvent{
		EventType: EventReportSaved,
		Symbol:    report.Symbol,
		Report:    report,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, report.Symbol, event)
}

// PublishPositionOpened publishes a position opened event
func (p *Producer) PublishPositionOpened(ctx context.Context, position *models.PortfolioPosition) error {
	event := AnalysisEvent{
		EventType: EventPositionOpened,
		Symbol:    position.Symbol,
		Position:  position,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, position.Symbol, event)
}

// PublishPositionClosed publishes a position closed event
func (p *Producer) PublishPositionClosed(ctx context.Context, position *models.PortfolioPosition) error {
	event := AnalysisEvent{
		EventType: EventPositionClosed,
		Symbol:    position.Symbol,
		Position:  position,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, position.Symbol, event)
}

func (p *Producer) publish(ctx context.Context, key string, event AnalysisEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
