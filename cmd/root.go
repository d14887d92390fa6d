package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bay-sim/bay-sim/sim"
	"github.com/bay-sim/bay-sim/sim/policy"
	"github.com/bay-sim/bay-sim/sim/stats"
	"github.com/bay-sim/bay-sim/sim/trace"
)

var (
	configPath string // YAML run configuration
	logLevel   string // Log verbosity level
	logFile    string // Rotating log file; empty = stderr
	traceOut   string // YAML file receiving episode traces

	// Overrides for Config fields, applied only when the flag is set
	seed       int64
	episodes   int
	maxSteps   int
	workers    int
	dimZ       int
	maxTier    int
	maxLabel   int
	policyName string
	traceLevel string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "baysim",
	Short: "Container bay relocation and retrieval simulator",
}

// runCmd plays a batch of episodes and prints the evaluation
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run episodes with a decision policy",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to load config: %v", err)
		}
		applyFlagOverrides(cmd, &cfg)
		setupLogging(logLevel, cfg.Log)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("invalid config: %v", err)
		}
		if traceOut != "" && !trace.TraceLevel(cfg.TraceLevel).Enabled() {
			logrus.Warnf("--trace-out given but trace level is %q; no traces will be written", cfg.TraceLevel)
		}
		cfg.warnDeadlock()

		runCfg := cfg.RunConfig()
		logrus.Infof("Starting %d episodes: dimZ=%d maxTier=%d maxLabel=%d policy=%s seed=%d workers=%d",
			runCfg.Episodes, runCfg.DimZ, runCfg.MaxTier, runCfg.MaxLabel, cfg.Policy, runCfg.Seed, runCfg.Workers)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		eval := stats.NewEvaluation()
		runner := sim.NewRunner(runCfg, policy.Factory(cfg.Policy))
		if _, err := runner.Run(ctx, eval); err != nil {
			logrus.Fatalf("run aborted: %v", err)
		}

		result := eval.Result(time.Since(startTime))
		if err := result.Print(os.Stdout); err != nil {
			logrus.Fatalf("printing results: %v", err)
		}
		if traceOut != "" {
			if err := writeTraces(traceOut, eval.Traces()); err != nil {
				logrus.Fatalf("writing traces: %v", err)
			}
		}
		logrus.Infof("TotalContainerOut %d, TotalRelocation %d, relocation ratio %.4f",
			result.TotalContainerOut, result.TotalRelocation, result.RelocationRatio)
	},
}

// layoutCmd prints one generated layout
var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print a generated initial layout and its blocking degrees",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("unable to load config: %v", err)
		}
		applyFlagOverrides(cmd, &cfg)
		if err := cfg.RunConfig().Validate(); err != nil {
			logrus.Fatalf("invalid config: %v", err)
		}
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed))
		bay := sim.NewBay(cfg.DimZ, cfg.MaxTier, cfg.ResolvedMaxLabel(), rng.ForSubsystem(sim.SubsystemLayout))
		fmt.Print(bay)
		fmt.Printf("blocking degrees: %v\n", bay.BlockingDegrees())
	},
}

// degreeCmd computes the blocking degree of a literal lane
var degreeCmd = &cobra.Command{
	Use:   "degree PRIORITY...",
	Short: "Compute the blocking degree of a lane given bottom to top",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priorities, err := parsePriorities(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sim.BlockingDegree(priorities))
		return nil
	},
}

func parsePriorities(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		p, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("priority %q is not an integer", a)
		}
		out[i] = p
	}
	return out, nil
}

// applyFlagOverrides copies explicitly set flags into cfg.
// Unset flags never overwrite file or environment values.
func applyFlagOverrides(cmd *cobra.Command, cfg *Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("episodes") {
		cfg.Episodes = episodes
	}
	if flags.Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("dim-z") {
		cfg.DimZ = dimZ
	}
	if flags.Changed("max-tier") {
		cfg.MaxTier = maxTier
	}
	if flags.Changed("max-label") {
		cfg.MaxLabel = maxLabel
	}
	if flags.Changed("policy") {
		cfg.Policy = policyName
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = traceLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
}

func writeTraces(path string, traces []*trace.EpisodeTrace) error {
	data, err := yaml.Marshal(traces)
	if err != nil {
		return fmt.Errorf("marshal traces: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLayoutFlags(cmd *cobra.Command) {
	defaults := DefaultConfig()
	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML run configuration")
	cmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for layout generation and policy decisions")
	cmd.Flags().IntVar(&dimZ, "dim-z", defaults.DimZ, "Number of lanes in the bay")
	cmd.Flags().IntVar(&maxTier, "max-tier", defaults.MaxTier, "Capacity of each lane")
	cmd.Flags().IntVar(&maxLabel, "max-label", defaults.MaxLabel, "Number of containers (0 = (dim-z - 1) * max-tier + 1)")
}

// init sets up CLI flags and subcommands
func init() {
	defaults := DefaultConfig()

	addLayoutFlags(runCmd)
	runCmd.Flags().IntVar(&episodes, "episodes", defaults.Episodes, "Number of episodes to run")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", defaults.MaxSteps, "Decisions before an episode is abandoned (0 = unlimited)")
	runCmd.Flags().IntVar(&workers, "workers", defaults.Workers, "Episodes played concurrently")
	runCmd.Flags().StringVar(&policyName, "policy", defaults.Policy, "Decision policy (random, greedy, unblock)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", defaults.TraceLevel, "Trace verbosity (none, decisions)")
	runCmd.Flags().StringVar(&traceOut, "trace-out", "", "Write episode traces to this YAML file")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to a rotating file instead of stderr")

	addLayoutFlags(layoutCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(degreeCmd)
}
