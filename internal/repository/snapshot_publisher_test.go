package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CropAdvisor/internal/domain/models"
)

type fakeWriter struct {
	keys   []string
	values []interface{}
	err    error
	closed bool
}

func (f *fakeWriter) Publish(_ context.Context, key []byte, value interface{}) error {
	f.keys = append(f.keys, string(key))
	f.values = append(f.values, value)
	return f.err
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaSnapshotPublisherKeysByScope(t *testing.T) {
	w := &fakeWriter{}
	pub := NewKafkaSnapshotPublisher(w)

	ev := &models.SnapshotEvent{
		ID:        "0b6a6e52-4f7f-4b8f-9d5e-1f3c2a9e7d10",
		Scope:     "state:punjab",
		Source:    models.SourceGovernment,
		FetchedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		Records:   42,
	}
	require.NoError(t, pub.PublishSnapshot(context.Background(), ev))
	require.NoError(t, pub.PublishSnapshot(context.Background(), nil))

	assert.Equal(t, []string{"state:punjab"}, w.keys)
	assert.Same(t, ev, w.values[0])

	require.NoError(t, pub.Close())
	assert.True(t, w.closed)
}

func TestKafkaSnapshotPublisherWrapsErrors(t *testing.T) {
	boom := errors.New("leader not available")
	pub := NewKafkaSnapshotPublisher(&fakeWriter{err: boom})

	err := pub.PublishSnapshot(context.Background(), &models.SnapshotEvent{ID: "e1", Scope: "all"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "e1")
}

func TestNoopSnapshotPublisher(t *testing.T) {
	pub := NewNoopSnapshotPublisher()
	assert.NoError(t, pub.PublishSnapshot(context.Background(), &models.SnapshotEvent{}))
	assert.NoError(t, pub.Close())
}
