package workers

import (
	"fmt"

	"github.com/ygrebnov/concoro/tpool"
)

// defaultConfig centralizes default values for Config.
// These defaults are applied by both New (when cfg is nil) and NewOptions (options builder base).
// ResultsBufferSize and ErrorsBufferSize are sized to tpool.MaxTasks/100: large enough to absorb
// a burst of completions from a saturated engine without the dispatch loop stalling on a full
// channel, without pre-allocating a buffer anywhere near the engine's own task ceiling.
func defaultConfig() Config {
	return Config{
		MaxWorkers:                  0, // dynamic pool, capped at tpool.MaxThreads
		StartImmediately:            false,
		StopOnError:                 false,
		TasksBufferSize:             0,
		ResultsBufferSize:           uint(tpool.MaxTasks / 100),
		ErrorsBufferSize:            uint(tpool.MaxTasks / 100),
		StopOnErrorErrorsBufferSize: 100,
	}
}

// validateConfig rejects configurations the engine cannot honor: a fixed pool
// wider than tpool.MaxThreads can never be fully populated, since the
// underlying engine refuses to grow past that ceiling.
func validateConfig(cfg *Config) error {
	if cfg.MaxWorkers > uint(tpool.MaxThreads) {
		return fmt.Errorf("%w: MaxWorkers (%d) exceeds tpool.MaxThreads (%d)", ErrInvalidConfig, cfg.MaxWorkers, tpool.MaxThreads)
	}
	return nil
}
