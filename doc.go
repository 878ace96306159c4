// Package workers provides a lightweight way to execute multiple tasks concurrently,
// built on top of a github.com/ygrebnov/concoro/tpool thread pool engine.
//
// Constructors
//   - New(ctx, *Config): current stable constructor that accepts a Config.
//     This form is planned for deprecation in a future release.
//   - NewOptions(ctx, opts ...Option): options-based constructor, returning an
//     error for invalid or conflicting options instead of panicking. This will
//     become the primary New in the next major version. Prefer this in new code.
//
// Defaults
// Unless overridden, the following defaults apply to a newly created instance:
//   - MaxWorkers: 0 (dynamic pool)
//   - StartImmediately: false (explicit Start is required if TasksBufferSize == 0)
//   - StopOnError: false
//   - TasksBufferSize: 0
//   - ResultsBufferSize: tpool.MaxTasks / 100
//   - ErrorsBufferSize: tpool.MaxTasks / 100
//   - StopOnErrorErrorsBufferSize: 100
//
// Channel lifecycle
// The library exposes two channels:
//   - Results: deliver task results (for non-error-only tasks)
//   - Errors: deliver task execution errors
//
// Close stops intake, waits for in-flight tasks to finish, tears down the
// underlying tpool engine, and closes both channels. Close is idempotent and
// safe to call even if Start was never invoked.
//
// Pools
//   - Dynamic pool (default): the tpool engine grows worker goroutines lazily,
//     up to tpool.MaxThreads, and never shrinks.
//   - Fixed pool (MaxWorkers > 0): caps the tpool engine's thread ceiling at
//     MaxWorkers (or tpool.MaxThreads, whichever is smaller) and recycles
//     worker wrappers through a bounded github.com/ygrebnov/concoro/objpool.
package workers
