package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/attendx/hrms-service/internal/events"
)

// DefaultSinkTimeout bounds one sink write.
const DefaultSinkTimeout = 2 * time.Second

// AuditService records domain events in the log and forwards them to an optional sink.
// Sink writes are detached from the request context and bounded by sinkTimeout, so a
// slow broker delays a request by at most that long.
type AuditService struct {
	dispatcher  events.Dispatcher
	sink        events.Sink
	sinkTimeout time.Duration
	logger      *zap.Logger
}

// NewAuditService creates the service. sink may be nil.
func NewAuditService(dispatcher events.Dispatcher, sink events.Sink, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher:  dispatcher,
		sink:        sink,
		sinkTimeout: DefaultSinkTimeout,
		logger:      logger,
	}
}

// RegisterHandlers subscribes to every audited event type.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range events.AllTypes {
		a.dispatcher.Subscribe(eventType, a.handle)
	}
}

func (a *AuditService) handle(ctx context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("subject_id", event.SubjectID),
	}
	if event.ActorID != nil {
		fields = append(fields, zap.Int64("actor_id", *event.ActorID))
	}
	a.logger.Info("audit", fields...)

	if a.sink == nil {
		return nil
	}
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.sinkTimeout)
	defer cancel()
	if err := a.sink.Write(writeCtx, event); err != nil {
		a.logger.Warn("audit sink write failed", append(fields, zap.Error(err))...)
	}
	return nil
}

// Close releases the sink.
func (a *AuditService) Close() error {
	if a == nil || a.sink == nil {
		return nil
	}
	return a.sink.Close()
}
