package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/ziclient/config"
	"github.com/s0up4200/ziclient/contacts"
	"github.com/s0up4200/ziclient/credentials"
	"github.com/s0up4200/ziclient/filter"
	"github.com/s0up4200/ziclient/zoominfo"
)

var (
	cfgFile     string
	metricsFile string
	cfg         *config.Config
	logger      zerolog.Logger
	client      *zoominfo.Client
	service     *contacts.Service
	filters     *filter.Manager
	registry    *prometheus.Registry

	// Command flags
	filterExpr string
	preset     string
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ziclient",
	Short: "Search and enrich contacts through the ZoomInfo API",
	Long: `ziclient is a CLI for the ZoomInfo API. It handles authentication,
rate limiting and paging, and lets you search contacts by company and job title,
look up single contacts and check whether people have changed employer.`,
	SilenceUsage:       true,
	PersistentPostRunE: writeMetrics,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile on exit")
}

// loadConfig loads configuration and sets up logging
func loadConfig(cmd *cobra.Command, args []string) error {
	return loadConfigWith(cmd)
}

// loadCredentialConfig loads configuration for commands that manage the
// stored password, which must work before any password is configured
func loadCredentialConfig(cmd *cobra.Command, args []string) error {
	return loadConfigWith(cmd, config.SkipCredentialCheck)
}

func loadConfigWith(cmd *cobra.Command, opts ...config.LoadOption) error {
	var err error
	cfg, err = config.Load(cfgFile, opts...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	if cmd.Flags().Changed("metrics-file") {
		cfg.Metrics.Textfile = metricsFile
	}

	return nil
}

// initializeApp loads configuration and creates the API client and services
func initializeApp(cmd *cobra.Command, args []string) error {
	if err := loadConfig(cmd, args); err != nil {
		return err
	}

	var source credentials.PasswordSource
	if cfg.ZoomInfo.UseKeyring {
		source = credentials.NewStore("")
	}
	password, err := credentials.Resolve(cfg.ZoomInfo.Username, cfg.ZoomInfo.Password, source)
	if err != nil {
		return fmt.Errorf("failed to resolve ZoomInfo password (run 'ziclient auth login'): %w", err)
	}

	opts := []zoominfo.Option{
		zoominfo.WithTimeout(cfg.ZoomInfo.Timeout),
		zoominfo.WithRequestInterval(cfg.ZoomInfo.RequestInterval),
		zoominfo.WithTokenLifetime(cfg.ZoomInfo.TokenLifetime),
		zoominfo.WithMaxResults(cfg.Search.MaxResults),
		zoominfo.WithFetchAll(cfg.Search.FetchAll && !singlePage),
	}
	if cfg.Metrics.Textfile != "" {
		registry = prometheus.NewRegistry()
		opts = append(opts, zoominfo.WithMetrics(zoominfo.NewMetrics(registry)))
	}

	client, err = zoominfo.NewClient(cfg.ZoomInfo.URL, zoominfo.Credentials{
		Username: cfg.ZoomInfo.Username,
		Password: password,
	}, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create ZoomInfo client: %w", err)
	}

	service = contacts.NewService(client, logger,
		contacts.WithRequiredFields(cfg.Search.RequiredFields),
		contacts.WithRecordsPerPage(cfg.Search.RecordsPerPage),
		contacts.WithConcurrency(cfg.Search.EnrichConcurrency),
	)

	filters = filter.NewManager(cfg.Filter.Presets, logger)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(os.Stderr),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// writeMetrics exports collected metrics once a command has finished
func writeMetrics(cmd *cobra.Command, args []string) error {
	if registry == nil || cfg == nil || cfg.Metrics.Textfile == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(cfg.Metrics.Textfile, registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}

	logger.Debug().Str("path", cfg.Metrics.Textfile).Msg("Wrote metrics textfile")
	return nil
}
