package audit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func sampleEvent() entity.AuditEvent {
	return entity.AuditEvent{
		ID:         "ev-1",
		CompanyID:  "company-a",
		ActorID:    "user-1",
		Action:     entity.AuditActionMovementOut,
		EntityType: "movement",
		EntityID:   "mov-1",
		Before:     map[string]any{"balances": map[string]int64{"w1": 10}},
		After:      map[string]any{"balances": map[string]int64{"w1": 7}},
		OccurredAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestKafkaSink_PublishesKeyedByCompany(t *testing.T) {
	w := &fakeWriter{}
	sink := newKafkaSink(w)

	require.NoError(t, sink.Record(context.Background(), sampleEvent()))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "company-a", string(msg.Key))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "MOVEMENT_OUT", payload["action"])
	assert.Equal(t, "mov-1", payload["entity_id"])
	assert.Equal(t, map[string]any{"balances": map[string]any{"w1": float64(7)}}, payload["after"])
}

func TestKafkaSink_WriterError(t *testing.T) {
	sink := newKafkaSink(&fakeWriter{err: errors.New("broker caído")})

	err := sink.Record(context.Background(), sampleEvent())

	assert.ErrorContains(t, err, "broker caído")
}

type recordingSink struct{ events []entity.AuditEvent }

func (s *recordingSink) Record(_ context.Context, ev entity.AuditEvent) error {
	s.events = append(s.events, ev)
	return nil
}

func TestMultiSink_DeliversToAllEvenOnFailure(t *testing.T) {
	store := &recordingSink{}
	broken := newKafkaSink(&fakeWriter{err: errors.New("broker caído")})

	err := MultiSink{broken, store}.Record(context.Background(), sampleEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker caído")
	require.Len(t, store.events, 1, "el fallo de un destino no impide los demás")
	assert.Equal(t, "ev-1", store.events[0].ID)
	assert.NoError(t, MultiSink{store}.Record(context.Background(), sampleEvent()))
}
