// Package tracing records generation and audit spans. The slog tracer
// writes one line per finished span; callers treat tracing as best-effort
// and never branch on it.
package tracing

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/core/ports"
)

type noopTracer struct{}

type noopSpan struct{}

func (noopSpan) Update(map[string]any) {}
func (noopSpan) End()                  {}

func (noopTracer) Trace(string, map[string]any) ports.Span { return noopSpan{} }

func Noop() ports.Tracer {
	return noopTracer{}
}

type slogTracer struct {
	logger *slog.Logger
}

func NewSlogTracer(logger *slog.Logger) ports.Tracer {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogTracer{logger: logger}
}

func (t *slogTracer) Trace(name string, input map[string]any) ports.Span {
	return &slogSpan{
		logger: t.logger,
		name:   name,
		start:  time.Now(),
		fields: cloneFields(input),
	}
}

type slogSpan struct {
	logger *slog.Logger
	name   string
	start  time.Time

	mu     sync.Mutex
	fields map[string]any
	ended  bool
}

func (s *slogSpan) Update(output map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range output {
		s.fields[k] = v
	}
}

func (s *slogSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.ended = true

	attrs := make([]any, 0, 2*(len(s.fields)+2))
	attrs = append(attrs, "span", s.name, "duration_ms", time.Since(s.start).Milliseconds())
	for k, v := range s.fields {
		attrs = append(attrs, k, v)
	}
	s.logger.Info("trace_span", attrs...)
}

func cloneFields(input map[string]any) map[string]any {
	fields := make(map[string]any, len(input))
	for k, v := range input {
		fields[k] = v
	}
	return fields
}
