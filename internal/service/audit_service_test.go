package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/attendx/hrms-service/internal/events"
)

type recordingSink struct {
	written []events.Event
	err     error
	closed  bool
}

func (r *recordingSink) Write(_ context.Context, e events.Event) error {
	if r.err != nil {
		return r.err
	}
	r.written = append(r.written, e)
	return nil
}

func (r *recordingSink) Close() error {
	r.closed = true
	return nil
}

func TestAuditService_ForwardsEveryType(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	sink := &recordingSink{}
	audit := NewAuditService(dispatcher, sink, zap.NewNop())
	audit.RegisterHandlers()

	for _, et := range events.AllTypes {
		require.NoError(t, dispatcher.Publish(context.Background(), events.New(et, "1", nil, nil)))
	}
	assert.Len(t, sink.written, len(events.AllTypes))

	require.NoError(t, audit.Close())
	assert.True(t, sink.closed)
}

func TestAuditService_SinkFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(dispatcher, &recordingSink{err: errors.New("broker down")}, zap.New(core))
	audit.RegisterHandlers()

	err := dispatcher.Publish(context.Background(), events.New(events.EventAccountCreated, "5", nil, nil))
	assert.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("audit sink write failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("audit").Len())
}

func TestAuditService_WithoutSink(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(dispatcher, nil, zap.NewNop())
	audit.RegisterHandlers()
	assert.NoError(t, dispatcher.Publish(context.Background(), events.New(events.EventOfficeCreated, "1", nil, nil)))
	assert.NoError(t, audit.Close())
}

// blockingSink waits for the write context to end, like a writer stuck on an unresponsive broker.
type blockingSink struct{}

func (blockingSink) Write(ctx context.Context, _ events.Event) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingSink) Close() error { return nil }

func TestAuditService_SlowSinkIsBounded(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	audit := NewAuditService(dispatcher, blockingSink{}, zap.New(core))
	audit.sinkTimeout = 50 * time.Millisecond
	audit.RegisterHandlers()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	err := dispatcher.Publish(ctx, events.New(events.EventLoginSucceeded, "1", nil, nil))
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, logs.FilterMessage("audit sink write failed").Len())
}

func TestAuditService_SinkOutlivesCancelledRequest(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	var seen error
	sink := &ctxSink{check: func(ctx context.Context) { seen = ctx.Err() }}
	audit := NewAuditService(dispatcher, sink, zap.NewNop())
	audit.RegisterHandlers()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, dispatcher.Publish(ctx, events.New(events.EventAccountCreated, "2", nil, nil)))
	assert.NoError(t, seen)
}

type ctxSink struct {
	check func(context.Context)
}

func (c *ctxSink) Write(ctx context.Context, _ events.Event) error {
	c.check(ctx)
	return nil
}

func (c *ctxSink) Close() error { return nil }
