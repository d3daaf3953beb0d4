package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-instant-search/api"
	"github.com/gcbaptista/go-instant-search/config"
	"github.com/gcbaptista/go-instant-search/internal/dataset"
	"github.com/gcbaptista/go-instant-search/internal/engine"
	internalErrors "github.com/gcbaptista/go-instant-search/internal/errors"
	"github.com/gcbaptista/go-instant-search/internal/logger"
	"github.com/gcbaptista/go-instant-search/internal/metrics"
	"github.com/gcbaptista/go-instant-search/model"
)

const version = "1.0.0"

type options struct {
	configPath string
	port       int
	seedRandom int
	seedFile   string
	seedIndex  string
}

func main() {
	var (
		help    = flag.Bool("help", false, "Show help message")
		showVer = flag.Bool("version", false, "Show version information")
		opts    options
	)
	flag.StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file")
	flag.IntVar(&opts.port, "port", 0, "Port to run the server on (overrides the config file)")
	flag.IntVar(&opts.seedRandom, "seed-random", 0, "Index N random strings at startup")
	flag.StringVar(&opts.seedFile, "seed-file", "", "Index every non-blank line of a file at startup")
	flag.StringVar(&opts.seedIndex, "index", "default", "Index that receives seeded documents")
	flag.Parse()

	if *help {
		fmt.Printf("Go Instant Search - trigram substring search as you type\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                                 # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s -config instant_search.yaml     # Load server and index settings\n", os.Args[0])
		fmt.Printf("  %s -seed-random 100000             # Serve a random demo corpus\n", os.Args[0])
		fmt.Printf("  %s -seed-file words.txt -index en  # Serve one document per line\n", os.Args[0])
		return
	}

	if *showVer {
		fmt.Printf("Go Instant Search v%s\n", version)
		return
	}

	if err := run(opts); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}

func run(opts options) error {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}

	if err := logger.Setup(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		return err
	}
	logg := logger.New("main")

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	searchEngine := engine.NewEngine(cfg.Server.MaxJobWorkers, m)
	defer searchEngine.Close()

	for _, settings := range cfg.Indexes {
		if err := searchEngine.CreateIndex(settings); err != nil {
			return fmt.Errorf("failed to create index '%s': %w", settings.Name, err)
		}
	}

	if err := seed(searchEngine, opts, logg); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, searchEngine, api.Options{
		SyncAddLimit: cfg.Server.SyncAddLimit,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Metrics:      m,
		MetricsPath:  cfg.Metrics.Path,
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logg.Info("starting server", "addr", server.Addr, "indexes", len(searchEngine.ListIndexes()))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logg.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// seed fills the seed index from the command line corpus flags, creating it if needed.
func seed(searchEngine *engine.Engine, opts options, logg *log.Logger) error {
	var docs []model.Document

	if opts.seedRandom > 0 {
		docs = append(docs, dataset.RandomStrings(opts.seedRandom, 3, 24, 1)...)
	}
	if opts.seedFile != "" {
		f, err := os.Open(opts.seedFile) // #nosec G304 -- path comes from the operator's command line
		if err != nil {
			return fmt.Errorf("failed to open seed file: %w", err)
		}
		defer f.Close()

		lines, err := dataset.LoadLines(f, uint32(len(docs)))
		if err != nil {
			return err
		}
		docs = append(docs, lines...)
	}
	if len(docs) == 0 {
		return nil
	}

	err := searchEngine.CreateIndex(config.IndexSettings{Name: opts.seedIndex})
	if err != nil && !errors.Is(err, internalErrors.ErrIndexAlreadyExists) {
		return fmt.Errorf("failed to create seed index: %w", err)
	}

	accessor, err := searchEngine.GetIndex(opts.seedIndex)
	if err != nil {
		return err
	}
	if err := accessor.AddDocuments(docs); err != nil {
		return fmt.Errorf("failed to seed index '%s': %w", opts.seedIndex, err)
	}

	stats := accessor.Stats()
	logg.Info("seeded index", "index", opts.seedIndex, "documents", stats.Documents, "vocabulary", stats.Vocabulary)
	return nil
}
