package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/warmstack/primer/internal/pkg/config"
	"github.com/warmstack/primer/internal/pkg/crawler"
	"github.com/warmstack/primer/internal/pkg/fetcher"
	"github.com/warmstack/primer/internal/pkg/filter"
	"github.com/warmstack/primer/internal/pkg/frontier"
	"github.com/warmstack/primer/internal/pkg/log"
	"github.com/warmstack/primer/internal/pkg/stats"
	"github.com/warmstack/primer/internal/pkg/visited"
)

var primeCmd = &cobra.Command{
	Use:   "prime [RESOURCE]",
	Short: "Walk the API and warm its cache",
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return fmt.Errorf("viper config is nil")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			cfg.StartResource = args[0]
		}

		if err := config.GenerateRunConfig(); err != nil {
			return err
		}

		if err := log.Start(logConfig(cfg)); err != nil {
			return err
		}
		defer log.Stop()

		// A broken filter file must stop the run before the first request
		filters, err := filter.CompileFile(cfg.FilterFile)
		if err != nil {
			return fmt.Errorf("unable to compile filter file: %w", err)
		}

		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		queue, err := openQueue(cfg)
		if err != nil {
			return err
		}
		defer queue.Close()

		f, err := fetcher.New(cfg)
		if err != nil {
			return err
		}

		if err := stats.Init(); err != nil {
			return err
		}
		if cfg.Prometheus {
			handler := stats.InitPrometheus(cfg.PrometheusPrefix)
			stats.ServePrometheus(cfg.APIPort, handler)
		}

		c, err := crawler.New(cfg, store, queue, filters, f)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		summary, err := c.Run(ctx)
		if err != nil {
			return err
		}

		log.Info("run statistics", "stats", stats.GetMap())
		fmt.Println(summary)

		if summary.Failed > 0 {
			return crawler.ErrRunHadFailures
		}
		return nil
	},
}

func primeCmdFlags(primeCmd *cobra.Command) {
	primeCmd.PersistentFlags().String("base-url", "", "Base URL of the API to prime, links are resolved against it.")
	primeCmd.PersistentFlags().String("resource", "", "Start resource path, the root of the traversal.")
	primeCmd.PersistentFlags().String("media-type", "application/json", "Media type to request, sent as the Accept header and used to pick the link extractor.")
	primeCmd.PersistentFlags().String("job", "", "Job name to use, will determine the path for the persistent queue, visited-state file and log files.")

	// Credential flags
	primeCmd.PersistentFlags().String("username", "", "Username for HTTP basic auth.")
	primeCmd.PersistentFlags().String("password", "", "Password for HTTP basic auth.")
	primeCmd.PersistentFlags().String("api-key", "", "API key, sent as the api-key header.")

	primeCmd.PersistentFlags().String("filter-file", "", "File of admission filter expressions, one per line, a URL is admitted when any line matches. Empty means admit everything.")
	primeCmd.PersistentFlags().String("visited-file", "", "Visited-state file to read and append to. Default is jobs/<job>/visited.log.")
	primeCmd.PersistentFlags().String("visited-backend", "journal", "Visited-state backend to use (journal, leveldb).")
	primeCmd.PersistentFlags().Bool("persistent-queue", false, "Keep the work queue on disk under the job path instead of in memory.")

	// HTTP flags
	primeCmd.PersistentFlags().String("user-agent", "", "User agent to use when requesting URLs.")
	primeCmd.PersistentFlags().Int("max-retry", 3, "Number of retries when a request fails with a transient error.")
	primeCmd.PersistentFlags().Duration("retry-delay", 2*time.Second, "Delay between retries of the same URL.")
	primeCmd.PersistentFlags().Duration("http-timeout", 30*time.Second, "Time to wait before timing out a request.")

	primeCmd.PersistentFlags().Bool("ct-codelists", false, "Also enqueue the /codelists child of terminology package URLs the API omits from its links.")

	// Metrics flags
	primeCmd.PersistentFlags().Bool("prometheus", false, "Export metrics in Prometheus format.")
	primeCmd.PersistentFlags().String("prometheus-prefix", "primer_", "String used as a prefix for the exported Prometheus metrics.")
	primeCmd.PersistentFlags().Int("api-port", 9443, "Port to serve the metrics endpoint on.")

	config.BindFlags(primeCmd.PersistentFlags())
}

func logConfig(cfg *config.Config) *log.Config {
	lc := &log.Config{
		StdoutEnabled: !cfg.NoStdoutLogging,
		StdoutLevel:   log.ParseLevel(cfg.StdoutLogLevel),
		StderrEnabled: true,
		StderrLevel:   slog.LevelError,
	}

	if !cfg.NoFileLogging {
		rotation, err := time.ParseDuration(cfg.LogFileRotation)
		if err != nil {
			rotation = 1 * time.Hour
		}

		lc.FileConfig = &log.LogfileConfig{
			Dir:          cfg.LogFileOutputDir,
			Prefix:       cfg.LogFilePrefix,
			Level:        log.ParseLevel(cfg.LogFileLevel),
			RotatePeriod: rotation,
		}
	}

	return lc
}

func openStore(cfg *config.Config) (visited.Store, error) {
	switch cfg.VisitedBackend {
	case "", "journal":
		return visited.NewJournal(afero.NewOsFs(), cfg.VisitedFile)
	case "leveldb":
		return visited.NewLevelDB(cfg.JobPath)
	default:
		return nil, fmt.Errorf("unknown visited backend %q", cfg.VisitedBackend)
	}
}

func openQueue(cfg *config.Config) (frontier.Queue, error) {
	if cfg.PersistentQueue {
		return frontier.NewPersistentQueue(cfg.JobPath)
	}
	return frontier.NewMemoryQueue(), nil
}
