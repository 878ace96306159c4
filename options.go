package workers

import (
	"context"
	"fmt"
)

// Option configures Workers. Use NewOptions(ctx, opts...) to construct Workers via options.
type Option func(*configOptions)

// internal builder state for options assembly.
type configOptions struct {
	cfg          Config
	poolSelected poolType
	err          error // first error encountered applying an Option, if any
}

type poolType int

const (
	poolUnspecified poolType = iota
	poolDynamic
	poolFixed
)

// WithFixedPool selects a fixed-size worker pool with the given capacity (must be > 0).
func WithFixedPool(n uint) Option {
	return func(co *configOptions) {
		if co.err != nil {
			return
		}
		if co.poolSelected != poolUnspecified && co.poolSelected != poolFixed {
			co.err = fmt.Errorf("%w: WithFixedPool and WithDynamicPool both specified", ErrInvalidConfig)
			return
		}
		if n == 0 {
			co.err = fmt.Errorf("%w: WithFixedPool requires n > 0", ErrInvalidConfig)
			return
		}
		co.poolSelected = poolFixed
		co.cfg.MaxWorkers = n
	}
}

// WithDynamicPool selects a dynamic-size worker pool (the default if no pool option is provided).
func WithDynamicPool() Option {
	return func(co *configOptions) {
		if co.err != nil {
			return
		}
		if co.poolSelected != poolUnspecified && co.poolSelected != poolDynamic {
			co.err = fmt.Errorf("%w: WithFixedPool and WithDynamicPool both specified", ErrInvalidConfig)
			return
		}
		co.poolSelected = poolDynamic
		co.cfg.MaxWorkers = 0
	}
}

// WithTasksBuffer sets the size of the tasks channel buffer.
func WithTasksBuffer(size uint) Option {
	return func(co *configOptions) { co.cfg.TasksBufferSize = size }
}

// WithResultsBuffer sets the size of the results channel buffer (default 1000).
func WithResultsBuffer(size uint) Option {
	return func(co *configOptions) { co.cfg.ResultsBufferSize = size }
}

// WithErrorsBuffer sets the size of the outgoing errors channel buffer (default 1000).
func WithErrorsBuffer(size uint) Option {
	return func(co *configOptions) { co.cfg.ErrorsBufferSize = size }
}

// WithStopOnErrorBuffer sets the size of the internal errors buffer used when StopOnError is enabled (default 100).
func WithStopOnErrorBuffer(size uint) Option {
	return func(co *configOptions) { co.cfg.StopOnErrorErrorsBufferSize = size }
}

// WithStartImmediately starts workers execution immediately.
func WithStartImmediately() Option { return func(co *configOptions) { co.cfg.StartImmediately = true } }

// WithStopOnError stops tasks execution when the first error occurs.
func WithStopOnError() Option { return func(co *configOptions) { co.cfg.StopOnError = true } }

// NewOptions creates a new Workers instance using functional options.
// It preserves backward compatibility by internally constructing a Config and delegating to New.
// Unlike New, it reports invalid or conflicting options as an error rather than panicking.
func NewOptions[R interface{}](ctx context.Context, opts ...Option) (Workers[R], error) {
	co := configOptions{cfg: defaultConfig(), poolSelected: poolUnspecified}
	for _, opt := range opts {
		if opt == nil {
			return nil, fmt.Errorf("%w: nil workers option", ErrInvalidConfig)
		}
		opt(&co)
		if co.err != nil {
			return nil, co.err
		}
	}

	// If pool type not specified, default to dynamic (same as MaxWorkers == 0 today).
	if co.poolSelected == poolUnspecified {
		co.poolSelected = poolDynamic
		co.cfg.MaxWorkers = 0
	}

	if err := validateConfig(&co.cfg); err != nil {
		return nil, err
	}

	return New[R](ctx, &co.cfg), nil
}

// Deprecated: NewWithOptions will be removed in a future release.
// Prefer NewOptions, which will be renamed to New (options-based) in the next major version.
func NewWithOptions[R interface{}](ctx context.Context, opts ...Option) (Workers[R], error) {
	return NewOptions[R](ctx, opts...)
}
