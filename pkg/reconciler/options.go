package reconciler

import (
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/provenance"
)

type options struct {
	strategy Strategy
	tracker  provenance.Tracker
}

func defaultOptions() *options {
	return &options{
		strategy: NewRetainExistingStrategy(),
		tracker:  provenance.NewTracker(false),
	}
}

// Option is a function that configures a Merger.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithStrategy sets the conflict resolution strategy.
func WithStrategy(strategy Strategy) Option {
	return func(o *options) error {
		if strategy == nil {
			return &errors.ValidationError{
				Field:   "strategy",
				Message: "cannot be nil",
			}
		}
		o.strategy = strategy
		return nil
	}
}

// WithTracker records field provenance into tracker.
func WithTracker(tracker provenance.Tracker) Option {
	return func(o *options) error {
		if tracker == nil {
			return &errors.ValidationError{
				Field:   "tracker",
				Message: "cannot be nil",
			}
		}
		o.tracker = tracker
		return nil
	}
}
