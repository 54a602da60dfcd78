package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/alexanderramin/samplan/internal/domain"
)

// UseCaseEvent is emitted once per use case, whether it succeeded or not.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type slogUseCaseObserver struct {
	logger *slog.Logger
}

// NewSlogUseCaseObserver logs each event through logger. Rejected requests
// (bad input, unknown IDs, missing role) log at warn; other failures at error.
func NewSlogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &slogUseCaseObserver{logger: logger.With("component", "service")}
}

func (o *slogUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []slog.Attr{
		slog.String("use_case", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Bool("success", event.Success),
	}
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelInfo
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		level = slog.LevelError
		if isRejection(event.Err) {
			level = slog.LevelWarn
		}
	}
	o.logger.LogAttrs(ctx, level, "use_case", attrs...)
}

func isRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrForbidden)
}

// fanOut delivers every event to each observer in order.
type fanOut []UseCaseObserver

func (f fanOut) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, o := range f {
		o.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	var live fanOut
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	switch len(live) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return live[0]
	}
	return live
}
