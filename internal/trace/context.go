package trace

import "context"

// Контекст несёт трассировщик и текущий span под разными ключами одного типа.
type ctxKey uint8

const (
	tracerKey ctxKey = iota
	spanKey
)

func lookup[T any](ctx context.Context, key ctxKey) (T, bool) {
	var zero T
	if ctx == nil {
		return zero, false
	}
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// FromContext returns the tracer installed by the CLI, or Nop.
func FromContext(ctx context.Context) Tracer {
	if t, ok := lookup[Tracer](ctx, tracerKey); ok && t != nil {
		return t
	}
	return Nop
}

// WithTracer installs t for every phase run under ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey, t)
}

// SpanContext identifies the enclosing span: per-file expansion spans hang
// under the driver span, write spans under the command span.
type SpanContext struct {
	SpanID uint64
	GID    uint64
}

// CurrentSpan returns the enclosing span, zero at the root.
func CurrentSpan(ctx context.Context) SpanContext {
	sc, _ := lookup[SpanContext](ctx, spanKey)
	return sc
}

func WithSpanContext(ctx context.Context, sc SpanContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, spanKey, sc)
}
