package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CropAdvisor/internal/domain/models"
	"CropAdvisor/pkg/cache"
	"CropAdvisor/pkg/config"
	xhttp "CropAdvisor/pkg/http"
	applogger "CropAdvisor/pkg/logger"
)

type closingPublisher struct{ closed bool }

func (p *closingPublisher) PublishSnapshot(context.Context, *models.SnapshotEvent) error {
	return nil
}

func (p *closingPublisher) Close() error {
	p.closed = true
	return errors.New("already closed")
}

func TestRunContextShutsDownAndClosesResources(t *testing.T) {
	cfg, err := config.Parse([]byte("server:\n  port: 0\n  shutdown_timeout: 2s\n"))
	require.NoError(t, err)

	srv := xhttp.NewServer(nil, xhttp.WithPort(0))
	mc := cache.NewMemoryCache()
	pub := &closingPublisher{}
	app := New(cfg, applogger.Nop(), srv, mc, pub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not shut down")
	}
	assert.True(t, pub.closed)
}
