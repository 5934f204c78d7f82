package util

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

var _ MessagePublisher = (*KafkaProducer)(nil)

func TestKafkaProducer_PublishMessage(t *testing.T) {
	writer := &fakeWriter{}
	producer := newKafkaProducerWithWriter(writer, "catalog_events")

	err := producer.PublishMessage(context.Background(), "product-1", []byte(`{"event_type":"PRODUCT_CREATED"}`))
	require.NoError(t, err)

	require.Len(t, writer.messages, 1)
	assert.Equal(t, []byte("product-1"), writer.messages[0].Key)
	assert.JSONEq(t, `{"event_type":"PRODUCT_CREATED"}`, string(writer.messages[0].Value))
	assert.False(t, writer.messages[0].Time.IsZero())
}

func TestKafkaProducer_PublishMessageError(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	producer := newKafkaProducerWithWriter(writer, "catalog_events")

	err := producer.PublishMessage(context.Background(), "product-1", []byte("{}"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestKafkaProducer_Close(t *testing.T) {
	writer := &fakeWriter{}
	producer := newKafkaProducerWithWriter(writer, "catalog_events")

	require.NoError(t, producer.Close())
	assert.True(t, writer.closed)
}
