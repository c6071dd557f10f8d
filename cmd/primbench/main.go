package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/primbench/internal/bench"
	"github.com/user/primbench/pkg/client"
)

var (
	logLevel        string
	serverURL       string
	primitiveName   string
	concurrency     int
	writePercentage float64
	sampleInterval  time.Duration
	seedConcurrency int
	profilePath     string
	numKeys         int
	numElements     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "primbench",
	Short: "Workload generator for counter, map, and set primitive backends",
	Long:  "primbench drives mixed read/write traffic against a primitive backend and reports throughput and mean latency per sample window.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Benchmark a counter primitive",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := benchConfig(cmd)
		if err != nil {
			return err
		}
		c, err := dialBackend(cmd.Context())
		if err != nil {
			return err
		}
		return bench.Run(cmd.Context(), bench.NewCounterWorkload(c.Counter(primitiveName)), cfg)
	},
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Benchmark a map primitive",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := benchConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("num-keys") {
			cfg.NumKeys = numKeys
		}
		c, err := dialBackend(cmd.Context())
		if err != nil {
			return err
		}
		w := bench.NewMapWorkload(c.Map(primitiveName), cfg.NumKeys, cfg.SeedConcurrency)
		return bench.Run(cmd.Context(), w, cfg)
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Benchmark a set primitive",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := benchConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("num-elements") {
			cfg.NumKeys = numElements
		}
		c, err := dialBackend(cmd.Context())
		if err != nil {
			return err
		}
		w := bench.NewSetWorkload(c.Set(primitiveName), cfg.NumKeys, cfg.SeedConcurrency)
		return bench.Run(cmd.Context(), w, cfg)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "primitive backend URL")
	rootCmd.PersistentFlags().StringVarP(&primitiveName, "name", "n", "test", "name of the primitive to use")
	rootCmd.PersistentFlags().IntVarP(&concurrency, "concurrency", "c", 100, "number of concurrent workers")
	rootCmd.PersistentFlags().Float64VarP(&writePercentage, "write-percentage", "w", 0.5, "fraction of operations performed as writes, between 0 and 1")
	rootCmd.PersistentFlags().DurationVarP(&sampleInterval, "sample-interval", "i", 10*time.Second, "interval at which to report performance")
	rootCmd.PersistentFlags().IntVar(&seedConcurrency, "seed-concurrency", 32, "parallelism of the seeding pass")
	rootCmd.PersistentFlags().StringVar(&profilePath, "config", "", "YAML benchmark profile (flags override it)")

	mapCmd.Flags().IntVarP(&numKeys, "num-keys", "k", 1000, "number of unique map keys to use")
	setCmd.Flags().IntVarP(&numElements, "num-elements", "e", 1000, "number of unique set elements to use")

	rootCmd.AddCommand(counterCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(serveCmd)
}

// benchConfig layers defaults, an optional profile file, and explicitly set
// flags, in that order.
func benchConfig(cmd *cobra.Command) (bench.Config, error) {
	cfg := bench.DefaultConfig()

	if profilePath != "" {
		var err error
		cfg, err = cfg.LoadFile(profilePath)
		if err != nil {
			return cfg, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("concurrency") {
		cfg.Concurrency = concurrency
	}
	if flags.Changed("write-percentage") {
		cfg.WriteRatio = writePercentage
	}
	if flags.Changed("sample-interval") {
		cfg.SampleInterval = sampleInterval
	}
	if flags.Changed("seed-concurrency") {
		cfg.SeedConcurrency = seedConcurrency
	}
	return cfg, cfg.Validate()
}

// dialBackend creates the backend client and verifies the server is
// reachable before any seeding write is issued.
func dialBackend(ctx context.Context) (*client.Client, error) {
	c := client.New(serverURL)
	hctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := c.Health(hctx); err != nil {
		return nil, fmt.Errorf("backend health check: %w", err)
	}
	return c, nil
}

func setupLogging() {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
