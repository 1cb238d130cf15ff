package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/cli/config"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/utils/logging"
)

func cmdValidate() *cli.Command {
	var engineCfg config.Engine

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the engine tuning configuration file",
		Flags:   engineCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			engine, err := engineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			if engineCfg.Path() == "" {
				logger.Info("No engine config file specified, defaults are valid")
			} else {
				logger.Info("Engine configuration validated", "path", engineCfg.Path())
			}

			logger.Info("Effective engine configuration",
				"skill_weight", engine.Weights.Skill,
				"reliability_weight", engine.Weights.Reliability,
				"workload_weight", engine.Weights.Workload,
				"workload_capacity", engine.WorkloadCapacity,
				"observation_window", engine.Reliability.ObservationWindow.String(),
				"decay_half_interval", engine.Reliability.DecayHalfInterval.String(),
				"advisory_timeout", engine.AdvisoryTimeout.String(),
				"overfetch_factor", engine.OverfetchFactor,
			)

			return nil
		},
	}
}
