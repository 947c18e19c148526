package repository

import (
	"context"
	"fmt"

	"CropAdvisor/internal/domain/models"
	"CropAdvisor/internal/domain/repository"
)

// messageWriter is the subset of pkg/kafka.Producer the publisher needs.
type messageWriter interface {
	Publish(ctx context.Context, key []byte, value interface{}) error
	Close() error
}

// KafkaSnapshotPublisher publishes snapshot events keyed by scope, so events
// for one scope stay ordered on a partition.
type KafkaSnapshotPublisher struct {
	producer messageWriter
}

// NewKafkaSnapshotPublisher creates a Kafka-backed SnapshotPublisher.
func NewKafkaSnapshotPublisher(p messageWriter) repository.SnapshotPublisher {
	return &KafkaSnapshotPublisher{producer: p}
}

func (k *KafkaSnapshotPublisher) PublishSnapshot(ctx context.Context, ev *models.SnapshotEvent) error {
	if ev == nil {
		return nil
	}
	if err := k.producer.Publish(ctx, []byte(ev.Scope), ev); err != nil {
		return fmt.Errorf("publish snapshot %s: %w", ev.ID, err)
	}
	return nil
}

func (k *KafkaSnapshotPublisher) Close() error {
	return k.producer.Close()
}

// NoopSnapshotPublisher drops every event. Used when Kafka is disabled.
type NoopSnapshotPublisher struct{}

func NewNoopSnapshotPublisher() repository.SnapshotPublisher { return NoopSnapshotPublisher{} }

func (NoopSnapshotPublisher) PublishSnapshot(context.Context, *models.SnapshotEvent) error {
	return nil
}

func (NoopSnapshotPublisher) Close() error { return nil }
