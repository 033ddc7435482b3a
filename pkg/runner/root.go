// Package runner wires the CLI: flag/env configuration, the analyzer, the
// optional history store and result reporting.
package runner

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/getstack/cmsdetect/pkg/detect"
	"github.com/getstack/cmsdetect/pkg/fetch"
	"github.com/getstack/cmsdetect/pkg/storage"
)

var (
	// Set via -ldflags at build time.
	Version = "dev"

	flagJSON       bool
	flagOutputFile string
	flagVerbose    bool
	flagHistoryDB  string
	flagUserAgent  string
	flagTimeout    int
)

var rootCmd = &cobra.Command{
	Use:   "cmsdetect",
	Short: "Detect which CMS platform powers a website",
	Long: `cmsdetect fetches a site's HTTP response and HTML and matches it against
layered heuristic signatures to identify WordPress, Wix or Shopify, with
theme and plugin details for WordPress sites.`,
	SilenceUsage: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan <domain> [domain...]",
	Short: "Analyze one or more domains",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScan,
}

var historyCmd = &cobra.Command{
	Use:   "history <domain>",
	Short: "Show stored analyses matching a domain substring",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cmsdetect %s\n", Version)
	},
}

func init() {
	viper.SetEnvPrefix("CMSDETECT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output results as JSON")
	rootCmd.PersistentFlags().StringVarP(&flagOutputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose pipeline logging")
	rootCmd.PersistentFlags().StringVar(&flagHistoryDB, "history-db", "", "path to the history database (also CMSDETECT_HISTORY_DB)")
	scanCmd.Flags().StringVar(&flagUserAgent, "user-agent", fetch.UserAgent, "user-agent for all requests")
	scanCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "override body fetch timeout in seconds")

	viper.BindPFlag("history_db", rootCmd.PersistentFlags().Lookup("history-db"))

	rootCmd.AddCommand(scanCmd, historyCmd, versionCmd)
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func runScan(cmd *cobra.Command, args []string) error {
	log := newLogger()

	var opts []fetch.Option
	if flagUserAgent != "" {
		opts = append(opts, fetch.WithUserAgent(flagUserAgent))
	}
	if flagTimeout > 0 {
		opts = append(opts, fetch.WithTimeouts(0, time.Duration(flagTimeout)*time.Second, 0))
	}

	analyzer, err := detect.NewAnalyzer(detect.Config{
		Client:      fetch.NewClient(opts...),
		WPScanToken: viper.GetString("wpscan_api_token"),
		Logger:      &log,
	})
	if err != nil {
		return err
	}

	var store *storage.Store
	if path := viper.GetString("history_db"); path != "" {
		store, err = storage.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	ctx := cmd.Context()
	results := make([]*detect.AnalysisResult, 0, len(args))
	for _, domain := range args {
		res := analyzer.Analyze(ctx, domain)
		results = append(results, res)
		if store != nil {
			if _, err := store.Save(ctx, res); err != nil {
				log.Error().Err(err).Str("domain", res.Domain).Msg("failed to persist result")
			}
		}
	}

	return Report(results, flagJSON, flagOutputFile)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := viper.GetString("history_db")
	if path == "" {
		return fmt.Errorf("no history database configured (set --history-db or CMSDETECT_HISTORY_DB)")
	}
	store, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ByDomain(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return ReportHistory(records, flagJSON, flagOutputFile)
}
