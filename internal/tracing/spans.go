package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys used when tracing the parser and the playground host.
const (
	AttrKeyKind    = "key.kind"
	AttrKeyRune    = "key.rune"
	AttrModeBefore = "mode.before"
	AttrModeAfter  = "mode.after"
	AttrEventCount = "change.event_count"
	AttrRegister   = "register.name"
)

// Span name prefixes for consistent naming across the parser and playground.
const (
	SpanPrefixParse  = "vikey.parse"
	SpanPrefixChange = "vikey.change"
	SpanPrefixPut    = "vikey.put"
)

// StartParseSpan opens a span around one Parser.Parse call.
func StartParseSpan(ctx context.Context, tracer trace.Tracer, keyKind, keyRune string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanPrefixParse,
		trace.WithAttributes(
			attribute.String(AttrKeyKind, keyKind),
			attribute.String(AttrKeyRune, keyRune),
		),
	)
}

// StartChangeSpan opens a span around a bracketed ChangeStart/ChangeFinish
// region recorded by the parser.
func StartChangeSpan(ctx context.Context, tracer trace.Tracer) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanPrefixChange)
}

// StartPutSpan opens a span around a single Yank or Put event, tagged with
// the register it touched.
func StartPutSpan(ctx context.Context, tracer trace.Tracer, register string) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanPrefixPut,
		trace.WithAttributes(attribute.String(AttrRegister, register)),
	)
}
