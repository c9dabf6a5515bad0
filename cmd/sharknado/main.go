package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sharknado-db/sharknado/pkg/config"
	"github.com/sharknado-db/sharknado/pkg/events"
	"github.com/sharknado-db/sharknado/pkg/log"
	"github.com/sharknado-db/sharknado/pkg/metrics"
	"github.com/sharknado-db/sharknado/pkg/server"
	"github.com/sharknado-db/sharknado/pkg/store"
	"github.com/sharknado-db/sharknado/pkg/users"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sharknado [database]",
	Short: "Sharknado - networked JSON document store",
	Long: `Sharknado is a small networked document store with authenticated
sessions. Clients connect over TCP, authenticate as registered users,
and issue line-oriented commands to store, retrieve, update, delete
and query JSON documents organized into tables. State is recovered at
startup by replaying an append-only operation log.

Invoked without a subcommand it starts the server, optionally taking
the database name as its only argument.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Sharknado version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	// Global flags
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().String("data-dir", ".", "Directory holding the operation log and users.json")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	// Initialize logging before command execution
	cobra.OnInitialize(initLogging)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(connectCmd)
}

func initLogging() {
	flags := rootCmd.PersistentFlags()
	logLevel, _ := flags.GetString("log-level")
	logJSON, _ := flags.GetBool("log-json")

	// Log settings from the config file apply unless set by flag; a
	// config file that fails to load is reported by loadConfig
	if path, _ := flags.GetString("config"); path != "" {
		if cfg, err := config.Load(path); err == nil {
			if !flags.Changed("log-level") {
				logLevel = cfg.Log.Level
			}
			if !flags.Changed("log-json") {
				logJSON = cfg.Log.JSON
			}
		}
	}

	log.Init(log.Config{
		Level:      log.ParseLevel(logLevel),
		JSONOutput: logJSON,
	})
}

var serveCmd = &cobra.Command{
	Use:   "serve [database]",
	Short: "Run the document store server",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "TCP listen address (default :8080)")
	serveCmd.Flags().String("metrics-listen", "", "HTTP listen address for /metrics and /healthz (disabled when empty)")
}

// loadConfig merges the optional config file with flag overrides
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if path, _ := cmd.Root().PersistentFlags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cmd.Root().PersistentFlags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Root().PersistentFlags().GetString("data-dir")
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Listen = listen
	}
	if metricsListen, _ := cmd.Flags().GetString("metrics-listen"); metricsListen != "" {
		cfg.MetricsListen = metricsListen
	}
	if len(args) == 1 {
		cfg.Database = args[0]
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	logger := log.WithDatabase(cfg.Database)
	logger.Info().
		Str("listen", cfg.Listen).
		Str("data_dir", cfg.DataDir).
		Msg("starting sharknado")

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %v", err)
	}

	broker := events.NewBroker()
	broker.Start()
	defer broker.Stop()

	engine, err := store.Open(cfg.DataDir, cfg.Database, broker)
	if err != nil {
		return fmt.Errorf("failed to open database: %v", err)
	}
	defer engine.Close()

	directory, err := users.Open(cfg.DataDir, broker)
	if err != nil {
		return fmt.Errorf("failed to open user directory: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mirror store and directory activity into the debug log
	go func() {
		sub := broker.Subscribe()
		defer broker.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-sub:
				if !ok {
					return
				}
				logger.Debug().
					Str("event", string(event.Type)).
					Str("table", event.Table).
					Str("key", event.Key).
					Msg("event")
			}
		}
	}()

	// Pick up account changes made by the user CLI while running
	go func() {
		if err := directory.Watch(ctx); err != nil {
			logger.Warn().Err(err).Msg("user directory watch unavailable")
		}
	}()

	if cfg.MetricsListen != "" {
		ms := metrics.NewServer(cfg.Database, engine)
		go ms.Collect(ctx, 15*time.Second)
		go func() {
			if err := ms.Serve(ctx, cfg.MetricsListen); err != nil {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	srv := server.NewServer(engine, directory, broker, &server.Config{
		ListenAddr: cfg.Listen,
	})
	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	return srv.Stop()
}
