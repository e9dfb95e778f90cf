package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Inventario-kardex/internal/application/inventory"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

var _ inventory.AuditSink = (*KafkaSink)(nil)

// messageWriter lo que el sink necesita de *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publica cada evento en un tópico. La clave es la empresa para
// conservar el orden de los eventos de un mismo tenant en una partición.
type KafkaSink struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaSink crea el writer síncrono (RequireAll) hacia brokers/topic.
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return newKafkaSink(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	})
}

func newKafkaSink(w messageWriter) *KafkaSink {
	return &KafkaSink{writer: w, timeout: 5 * time.Second}
}

// Record publica el evento. Lo llama el motor después del commit; un error aquí
// se registra pero no revierte la operación.
func (s *KafkaSink) Record(ctx context.Context, ev entity.AuditEvent) error {
	msg, err := encodeEvent(ev)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar evento de auditoría: %w", err)
	}
	return nil
}

// Close libera el writer.
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}

type eventPayload struct {
	ID         string         `json:"id"`
	CompanyID  string         `json:"company_id"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Before     map[string]any `json:"before,omitempty"`
	After      map[string]any `json:"after,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func encodeEvent(ev entity.AuditEvent) (kafka.Message, error) {
	data, err := json.Marshal(eventPayload{
		ID:         ev.ID,
		CompanyID:  ev.CompanyID,
		ActorID:    ev.ActorID,
		Action:     ev.Action,
		EntityType: ev.EntityType,
		EntityID:   ev.EntityID,
		Before:     ev.Before,
		After:      ev.After,
		OccurredAt: ev.OccurredAt,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("serializar evento: %w", err)
	}
	return kafka.Message{
		Key:   []byte(ev.CompanyID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event-action", Value: []byte(ev.Action)},
			{Key: "entity-type", Value: []byte(ev.EntityType)},
			{Key: "content-type", Value: []byte("application/json")},
		},
		Time: ev.OccurredAt,
	}, nil
}
