package kafka

import (
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)
}

func TestNewProducerAppliesOptions(t *testing.T) {
	p, err := NewProducer(
		WithBrokers([]string{"localhost:9092"}),
		WithCompression("zstd"),
		WithHashByKey(true),
		WithAsync(true),
		WithMaxAttempts(0),
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, kafka.Zstd, p.writer.Compression)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
	assert.Equal(t, 3, p.writer.MaxAttempts)
	assert.NotNil(t, p.writer.Completion)
}

func TestEncodeMessage(t *testing.T) {
	msg, err := encodeMessage("memeiq.analysis", []byte("Mint111"), map[string]int{"overall": 82})
	require.NoError(t, err)
	assert.JSONEq(t, `{"overall":82}`, string(msg.Value))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "application/json", string(msg.Headers[0].Value))

	msg, err = encodeMessage("t", nil, "raw")
	require.NoError(t, err)
	assert.Equal(t, "raw", string(msg.Value))
	assert.Empty(t, msg.Headers)

	_, err = encodeMessage("t", nil, func() {})
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	assert.Equal(t, kafka.Gzip, parseCompression("gzip"))
	assert.Equal(t, kafka.Lz4, parseCompression("lz4"))
	assert.Equal(t, kafka.Snappy, parseCompression("bogus"))
}
