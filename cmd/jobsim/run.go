package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-foundations/jobsim/internal/config"
	"github.com/go-foundations/jobsim/internal/job"
	"github.com/go-foundations/jobsim/internal/kernel"
	"github.com/go-foundations/jobsim/internal/report"
	"github.com/go-foundations/jobsim/internal/runid"
	"github.com/go-foundations/jobsim/internal/simerr"
	"github.com/go-foundations/jobsim/internal/simlog"
	"github.com/go-foundations/jobsim/internal/stats"
)

func newRunCmd() *cobra.Command {
	var (
		configPath   string
		scenarioPath string
		debugLevel   string
		runName      string
		seed         int64
		schedStep    int
	)

	cmd := &cobra.Command{
		Use:   "run <duration>",
		Short: "Run a simulation for the given H:M:S duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					if inv, ok := rec.(*simerr.Invariant); ok {
						err = inv
						return
					}
					panic(rec)
				}
			}()

			duration, parseErr := config.ParseDuration(args[0])
			if parseErr != nil {
				return parseErr
			}

			level, ok := simlog.ParseLevel(debugLevel)
			if !ok {
				return fmt.Errorf("invalid --debug level %q: want trace or full", debugLevel)
			}
			logger := simlog.New(level, os.Stderr)

			cfg := config.Load(configPath, seed)

			run := runid.New(runName)
			fmt.Fprintf(cmd.OutOrStdout(), "jobsim run %s — duration %s\n\n", run, config.FormatDuration(duration))

			var jobs []job.Job
			if scenarioPath != "" {
				jobs, err = job.LoadScenario(scenarioPath)
				if err != nil {
					return err
				}
			} else {
				jobs = job.NewGenerator(cfg).Generate(0, duration)
			}

			k := kernel.New(cfg, logger)
			completed := k.Run(jobs)

			rpt := stats.Reduce(cfg, completed)
			fmt.Fprint(cmd.OutOrStdout(), stats.Render(rpt))

			if level == simlog.LevelFull && len(completed) > 0 {
				step := schedStep
				if step <= 0 {
					step = 10
				}
				view := report.BuildSchedulingView(cfg, completed, step)
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprint(cmd.OutOrStdout(), view.Render())
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "simulation configuration JSON file")
	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "reproducible job scenario JSON file (overrides the generator)")
	cmd.Flags().StringVar(&debugLevel, "debug", "", "debug verbosity: trace or full")
	cmd.Flags().StringVar(&runName, "name", "", "human label for this run")
	cmd.Flags().Int64Var(&seed, "seed", 1, "RNG seed for the job generator and bag sampling")
	cmd.Flags().IntVar(&schedStep, "sched-step", 10, "time-slot width (seconds) for the --debug full scheduling view")

	return cmd
}
