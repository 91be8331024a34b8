package notify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gparth254/meet-ai/internal/notify"
)

type sink struct {
	name      string
	publisher notify.Publisher
}

// Fanout delivers every event to all configured sinks. A failing sink does
// not stop delivery to the others.
type Fanout struct {
	sinks []sink
}

func NewFanout() *Fanout {
	return &Fanout{}
}

func (f *Fanout) Add(name string, p notify.Publisher) {
	f.sinks = append(f.sinks, sink{name: name, publisher: p})
}

func (f *Fanout) Len() int {
	return len(f.sinks)
}

func (f *Fanout) Publish(ctx context.Context, event notify.Event) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.publisher.Publish(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds a connection.
func (f *Fanout) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if c, ok := s.publisher.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			}
		}
	}
	return errors.Join(errs...)
}
