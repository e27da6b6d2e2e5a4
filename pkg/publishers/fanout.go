package publishers

import (
	"context"
	"errors"
	"fmt"
)

// Fanout delivers one event to every sink, continuing past individual
// failures.
type Fanout struct {
	sinks []Publisher
}

// NewFanout builds a fanout over the given sinks; nil entries are dropped.
func NewFanout(sinks []Publisher) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Size returns the number of active sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}

// Publish sends the event to each sink in order and reports how many
// deliveries succeeded; the failures come back joined into one error.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	if f.Size() == 0 {
		return 0, nil
	}

	delivered := 0
	var failures []error
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, evt); err != nil {
			failures = append(failures, fmt.Errorf("%s/%s: %w", sink.Type(), sink.ID(), err))
			continue
		}
		delivered++
	}
	return delivered, errors.Join(failures...)
}
