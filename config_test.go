package workers

import (
	"errors"
	"testing"

	"github.com/ygrebnov/concoro/tpool"
)

func TestValidateConfig_Defaults(t *testing.T) {
	cfg := defaultConfig()
	if err := validateConfig(&cfg); err != nil {
		t.Fatalf("validateConfig returned error for defaults: %v", err)
	}
}

func TestValidateConfig_MaxWorkersExceedsEngineCeiling(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxWorkers = uint(tpool.MaxThreads) + 1
	err := validateConfig(&cfg)
	if err == nil {
		t.Fatalf("expected error for MaxWorkers exceeding tpool.MaxThreads, got nil")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected error to wrap ErrInvalidConfig, got: %v", err)
	}
}

func TestValidateConfig_MaxWorkersAtEngineCeiling(t *testing.T) {
	cfg := defaultConfig()
	cfg.MaxWorkers = uint(tpool.MaxThreads)
	if err := validateConfig(&cfg); err != nil {
		t.Fatalf("MaxWorkers == tpool.MaxThreads should be valid, got: %v", err)
	}
}

func TestDefaultConfig_Values(t *testing.T) {
	cfg := defaultConfig()
	if cfg.MaxWorkers != 0 {
		t.Fatalf("MaxWorkers default = %d; want 0", cfg.MaxWorkers)
	}
	if cfg.StartImmediately != false {
		t.Fatalf("StartImmediately default = %v; want false", cfg.StartImmediately)
	}
	if cfg.StopOnError != false {
		t.Fatalf("StopOnError default = %v; want false", cfg.StopOnError)
	}
	if cfg.TasksBufferSize != 0 {
		t.Fatalf("TasksBufferSize default = %d; want 0", cfg.TasksBufferSize)
	}
	if cfg.ResultsBufferSize != 1000 {
		t.Fatalf("ResultsBufferSize default = %d; want 1000", cfg.ResultsBufferSize)
	}
	if cfg.ErrorsBufferSize != 1000 {
		t.Fatalf("ErrorsBufferSize default = %d; want 1000", cfg.ErrorsBufferSize)
	}
	if cfg.StopOnErrorErrorsBufferSize != 100 {
		t.Fatalf("StopOnErrorErrorsBufferSize default = %d; want 100", cfg.StopOnErrorErrorsBufferSize)
	}
}
