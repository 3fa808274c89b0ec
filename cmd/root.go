package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/sdktable/internal/app"
	"github.com/zjrosen/sdktable/internal/config"
	"github.com/zjrosen/sdktable/internal/hints"
	"github.com/zjrosen/sdktable/internal/log"
	"github.com/zjrosen/sdktable/internal/paths"
	"github.com/zjrosen/sdktable/internal/table"
)

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	configErr  error
	logCleanup func()
)

var rootCmd = &cobra.Command{
	Use:   "sdktable",
	Short: "Manage a table of named SDK installations",
	Long: `sdktable keeps a named table of SDK installations (JDKs, Go toolchains)
with their home paths, versions and attributes.

SDKs that are not in the table can still be resolved from hints: home paths
configured under "hints" in the config file or given in the environment.`,
	Version:            version,
	SilenceUsage:       true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: teardownLogging,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/sdktable/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also SDKTABLE_DEBUG)")
	rootCmd.PersistentFlags().StringP("table", "t", "",
		"table file or directory (yaml backend)")
	rootCmd.PersistentFlags().String("backend", "",
		"storage backend: yaml or sqlite")
}

func initConfig() {
	viper.Reset()
	configErr = nil

	defaults := config.Defaults()
	viper.SetDefault("table.backend", defaults.Table.Backend)
	viper.SetDefault("table.path", defaults.Table.Path)
	viper.SetDefault("table.sqlite_path", defaults.Table.SQLitePath)
	viper.SetDefault("resolve.hint_prefix", defaults.Resolve.HintPrefix)
	viper.SetDefault("resolve.default_type", defaults.Resolve.DefaultType)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.path", defaults.Log.Path)
	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
	viper.SetDefault("cache.metadata_ttl", defaults.Cache.MetadataTTL)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	for name, enabled := range defaults.Flags {
		viper.SetDefault("flags."+name, enabled)
	}

	// SDKTABLE_TABLE_BACKEND, SDKTABLE_JDK_ZULU_17, ...
	hints.ConfigureEnv(viper.GetViper())

	_ = viper.BindPFlag("table.path", rootCmd.PersistentFlags().Lookup("table"))
	_ = viper.BindPFlag("table.backend", rootCmd.PersistentFlags().Lookup("backend"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .sdktable/config.yaml (current directory)
		// 2. ~/.config/sdktable/config.yaml (user config)
		if _, err := os.Stat(".sdktable/config.yaml"); err == nil {
			viper.SetConfigFile(".sdktable/config.yaml")
		} else {
			viper.AddConfigPath(config.DefaultConfigDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// No config file anywhere - create the default user config
			defaultPath := filepath.Join(config.DefaultConfigDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		} else {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}

	cfg = config.Config{}
	if err := viper.Unmarshal(&cfg); err != nil && configErr == nil {
		configErr = fmt.Errorf("decoding config: %w", err)
	}
}

func setupLogging(_ *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}

	debug := os.Getenv("SDKTABLE_DEBUG") != "" || debugFlag
	logPath := cfg.Log.Path
	if debug && logPath == "" {
		logPath = os.Getenv("SDKTABLE_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
	}
	if logPath == "" {
		return nil
	}

	cleanup, err := log.InitWithTeaLog(paths.ExpandHome(logPath), "sdktable")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup
	if !debug {
		log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
	}

	log.Info(log.CatCLI, "sdktable starting", "version", version, "config", viper.ConfigFileUsed(), "debug", debug)
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) error {
	if logCleanup != nil {
		logCleanup()
		logCleanup = nil
	}
	return nil
}

// openApp builds the application and loads the table, reporting skipped
// records on w.
func openApp(ctx context.Context, w io.Writer) (*app.App, error) {
	a, err := app.New(cfg, app.WithViper(viper.GetViper()))
	if err != nil {
		return nil, err
	}

	report, err := a.Load(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	reportSkipped(w, report)
	return a, nil
}

func reportSkipped(w io.Writer, report table.LoadReport) {
	for _, skipped := range report.Skipped {
		_, _ = fmt.Fprintf(w, "warning: skipped %v\n", skipped)
	}
}

// configFilePath is where hint edits are written.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(config.DefaultConfigDir(), "config.yaml")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
