package mocks

import (
	"context"
	"sync"
	"villa/infras/otel"
)

// Otel is an in-memory tracer for tests. It remembers which spans were
// opened and which errors were traced on them.
type Otel struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

func NewOtel() *Otel {
	return &Otel{}
}

func (o *Otel) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	o.mu.Lock()
	o.spans = append(o.spans, spanName)
	o.mu.Unlock()

	return ctx, &scope{owner: o}
}

func (o *Otel) Shutdown(_ context.Context) error {
	return nil
}

// Spans lists span names in the order they were opened.
func (o *Otel) Spans() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.spans...)
}

func (o *Otel) Errors() []error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]error(nil), o.errors...)
}

type scope struct {
	owner *Otel
}

func (s *scope) End() {}

func (s *scope) TraceError(err error) {
	s.owner.mu.Lock()
	s.owner.errors = append(s.owner.errors, err)
	s.owner.mu.Unlock()
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) AddEvent(_ string) {}

func (s *scope) SetAttribute(_ string, _ any) {}

func (s *scope) SetAttributes(_ map[string]any) {}
