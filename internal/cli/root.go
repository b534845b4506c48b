package cli

import (
	"fmt"
	"os"

	"github.com/existflow/taskboard/internal/config"
	"github.com/existflow/taskboard/internal/logger"
	"github.com/existflow/taskboard/internal/store"
	"github.com/existflow/taskboard/server"
	"github.com/spf13/cobra"
)

var (
	addr       string
	dbDriver   string
	dbPath     string
	dbURL      string
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "taskboard-server",
	Short: "Taskboard - project and task API server",
	Long: `Taskboard serves a JSON API for managing projects and their tasks,
backed by SQLite or Postgres, plus the static shell for the web frontend.

Run 'taskboard-server' without arguments to start serving.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("addr") {
			cfg.Addr = addr
			configChanged = true
		}
		if cmd.Flags().Changed("db-driver") {
			cfg.DBDriver = dbDriver
			configChanged = true
		}
		if cmd.Flags().Changed("db-path") {
			cfg.DBPath = dbPath
			configChanged = true
		}
		if cmd.Flags().Changed("db-url") {
			cfg.DBURL = dbURL
			configChanged = true
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		// Persist flag overrides so they become the new defaults
		if configChanged {
			if err := cfg.Save(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to save config: %v\n", err)
			}
		}
		loadedConfig = cfg

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Taskboard starting", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadedConfig

		st, err := store.Open(cfg.DBDriver, cfg.DSN())
		if err != nil {
			logger.Error("Failed to open database", logger.F("error", err))
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			_ = st.Close()
			logger.Info("Database closed")
		}()

		srv := server.New(st)
		logger.Info("Serving HTTP",
			logger.F("addr", cfg.Addr),
			logger.F("driver", cfg.DBDriver))
		return srv.Start(cfg.Addr)
	},

	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Taskboard exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

var loadedConfig *config.Config

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&addr, "addr", "", "Listen address (default :8080)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver: sqlite or postgres")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "Postgres connection URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", true, "Enable console logging")
}
