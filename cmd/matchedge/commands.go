package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/matchedge/internal/config"
	"github.com/yourusername/matchedge/internal/health"
	"github.com/yourusername/matchedge/internal/scheduler"
	"github.com/yourusername/matchedge/internal/service"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one match input and print the evaluation",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newEvaluationService()
		if err != nil {
			return err
		}

		in, err := readInput(inputFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		eval, err := svc.Evaluate(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("evaluation failed: %w", err)
		}
		return service.WriteEvaluation(cmd.OutOrStdout(), eval)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate every match input in a directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newEvaluationService()
		if err != nil {
			return err
		}

		runner := service.NewBatchRunner(svc, cfg.Engine.BatchWorkers, cfg.Engine.RatePerSecond, cfg.Engine.RateBurst, logger)
		results, summary, err := runner.Run(cmd.Context(), batchDir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range results {
			name := filepath.Base(r.Path)
			if r.Err != nil {
				fmt.Fprintf(out, "%s\tfailed\t%v\n", name, r.Err)
				continue
			}
			e := r.Evaluation
			if e.Stake.IsStaked() {
				fmt.Fprintf(out, "%s\t%s\tstake\t%s@%.2f\t%.2fu\t%s\n",
					name, e.MatchID, e.Edge.Selection, e.Edge.Price, e.Stake.Units, e.Stake.Tier)
			} else {
				fmt.Fprintf(out, "%s\t%s\tno_stake\t%s\n", name, e.MatchID, e.Stake.RejectionReason)
			}
		}
		fmt.Fprintf(out, "documents=%d staked=%d rejected=%d failed=%d duration=%s\n",
			summary.Total, summary.Staked, summary.Rejected, summary.Failed, summary.Duration)

		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d documents failed", summary.Failed, summary.Total)
		}
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the profile and sweep the input directory on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Watch.InputDir == "" || cfg.Watch.OutputDir == "" {
			return fmt.Errorf("watch.input_dir and watch.output_dir must be set")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		svc, err := newEvaluationService()
		if err != nil {
			return err
		}
		runner := service.NewBatchRunner(svc, cfg.Engine.BatchWorkers, cfg.Engine.RatePerSecond, cfg.Engine.RateBurst, logger)
		sweeper := scheduler.NewSweeper(runner, cfg.Watch.InputDir, cfg.Watch.OutputDir, logger)
		reloader := scheduler.NewProfileReloader(activeProfilePath(), svc, logger)

		sched := scheduler.NewScheduler(logger)
		if err := sched.ScheduleProfileReload(cfg.Watch.ReloadSchedule, reloader); err != nil {
			return err
		}
		if err := sched.ScheduleSweep(cfg.Watch.SweepSchedule, sweeper); err != nil {
			return err
		}

		var server *health.Server
		if cfg.Metrics.Enabled {
			server = health.NewServer(health.Config{
				ServiceName: cfg.App.Name,
				Version:     Version,
				Port:        cfg.MetricsAddress(),
				MetricsPath: cfg.Metrics.Path,
				Logger:      logger,
				Profile: func() string {
					p := svc.Profile()
					return p.Name + "@" + p.Version
				},
				Checks: map[string]health.Check{
					"input_dir":  health.DirectoryCheck(cfg.Watch.InputDir),
					"output_dir": health.DirectoryCheck(cfg.Watch.OutputDir),
				},
			})
			if err := server.Start(ctx); err != nil {
				return err
			}
		}

		if err := sched.Start(); err != nil {
			return err
		}
		if server != nil {
			server.SetReady(true)
		}
		logger.Info("Watching for match inputs")

		<-ctx.Done()
		logger.Info("Shutdown signal received")
		if server != nil {
			server.SetReady(false)
		}
		return sched.Stop()
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect weight and threshold profiles",
}

var profileValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a profile file",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := config.LoadAndValidateProfile(validateFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "profile %s %s is valid\n", profile.Name, profile.Version)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active profile with defaults applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := config.LoadAndValidateProfile(activeProfilePath())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), profile)
	},
}
