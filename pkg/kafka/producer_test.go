package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerValidates(t *testing.T) {
	_, err := NewProducer(WithTopic("mandi.snapshots"))
	assert.Error(t, err)

	_, err = NewProducer(WithBrokers([]string{"localhost:9092"}))
	assert.Error(t, err)
}

func TestNewProducerAppliesOptions(t *testing.T) {
	p, err := NewProducer(
		WithBrokers([]string{"localhost:9092"}),
		WithTopic("mandi.snapshots"),
		WithCompression("zstd"),
		WithRequiredAcks(1),
		WithMaxAttempts(5),
		WithAsync(true),
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "mandi.snapshots", p.Topic())
	assert.Equal(t, "mandi.snapshots", p.writer.Topic)
	assert.Equal(t, kafka.Zstd, p.writer.Compression)
	assert.Equal(t, kafka.RequireOne, p.writer.RequiredAcks)
	assert.Equal(t, 5, p.writer.MaxAttempts)
	assert.True(t, p.writer.Async)
}

func TestEncode(t *testing.T) {
	b, err := encode(map[string]int{"records": 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":3}`, string(b))

	b, err = encode("raw")
	require.NoError(t, err)
	assert.Equal(t, "raw", string(b))
}
