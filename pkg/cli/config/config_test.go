package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/cli/config"
)

func TestGemini_Configure(t *testing.T) {
	t.Run("returns nil client when project ID is empty", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "us-central1")
		client, err := cfg.Configure(context.Background())
		gt.NoError(t, err)
		gt.Value(t, client).Nil()
	})

	t.Run("returns flags", func(t *testing.T) {
		cfg := config.NewGeminiForTest("", "")
		flags := cfg.Flags()
		gt.Value(t, len(flags)).Equal(2)
	})
}

func TestRepository_Configure(t *testing.T) {
	t.Run("memory backend needs no project", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("memory", "", "")
		repo, err := cfg.Configure(context.Background())
		gt.NoError(t, err).Required()
		gt.Value(t, repo).NotNil()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore backend requires project ID", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("firestore", "", "")
		_, err := cfg.Configure(context.Background())
		gt.Error(t, err)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		cfg := config.NewRepositoryForTest("redis", "", "")
		_, err := cfg.Configure(context.Background())
		gt.Error(t, err)
	})
}

func TestLogger_Configure(t *testing.T) {
	t.Run("valid settings", func(t *testing.T) {
		cfg := config.NewLoggerForTest("debug", "json", "-")
		closer, err := cfg.Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		cfg := config.NewLoggerForTest("verbose", "console", "-")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})

	t.Run("invalid format is rejected", func(t *testing.T) {
		cfg := config.NewLoggerForTest("info", "xml", "-")
		_, err := cfg.Configure()
		gt.Error(t, err)
	})
}
