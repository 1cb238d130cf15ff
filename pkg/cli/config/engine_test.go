package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/cli/config"
)

func writeEngineFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()
	return path
}

func TestEngineDefaults(t *testing.T) {
	e := config.NewEngineForTest("")
	cfg, err := e.Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.Weights.Skill).Equal(0.4)
	gt.Value(t, cfg.WorkloadCapacity).Equal(5)
	gt.Value(t, cfg.Reliability.ObservationWindow).Equal(90 * 24 * time.Hour)
	gt.Value(t, cfg.OverfetchFactor).Equal(5)
}

func TestEngineFileOverrides(t *testing.T) {
	path := writeEngineFile(t, `
workload_capacity = 8
advisory_timeout_seconds = 10

[scoring]
skill = 0.5
reliability = 0.3

[reliability]
observation_window_days = 30

[fallback]
quality = 0.7
`)
	e := config.NewEngineForTest(path)

	cfg, err := e.Configure()
	gt.NoError(t, err).Required()

	gt.Value(t, cfg.Weights.Skill).Equal(0.5)
	gt.Value(t, cfg.Weights.Reliability).Equal(0.3)
	gt.Value(t, cfg.Weights.Workload).Equal(0.2) // untouched default
	gt.Value(t, cfg.WorkloadCapacity).Equal(8)
	gt.Value(t, cfg.Reliability.ObservationWindow).Equal(30 * 24 * time.Hour)
	gt.Value(t, cfg.Reliability.DecayHalfInterval).Equal(30 * 24 * time.Hour)
	gt.Value(t, cfg.Fallback.Quality).Equal(0.7)
	gt.Value(t, cfg.AdvisoryTimeout).Equal(10 * time.Second)
}

func TestEngineFileInvalid(t *testing.T) {
	t.Run("weight out of range", func(t *testing.T) {
		path := writeEngineFile(t, `
[scoring]
skill = 2.0
`)
		_, err := config.NewEngineForTest(path).Configure()
		gt.Error(t, err)
	})

	t.Run("broken TOML", func(t *testing.T) {
		path := writeEngineFile(t, `workload_capacity = [`)
		_, err := config.NewEngineForTest(path).Configure()
		gt.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "no-such.toml")
		_, err := config.NewEngineForTest(path).Configure()
		gt.Error(t, err)
	})
}
