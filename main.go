package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"filegrip/internal/api"
	"filegrip/internal/browser"
	"filegrip/internal/config"
	"filegrip/internal/domain"
	"filegrip/internal/eventbus"
	"filegrip/internal/logging"
	"filegrip/internal/picker"
	"filegrip/internal/retry"
)

type flags struct {
	configPath  string
	apiURL      string
	token       string
	path        string
	maxFiles    int
	types       string
	theme       string
	jsonOut     bool
	metricsAddr string
	demo        bool
	logLevel    string
}

func parseFlags() flags {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Config file (default: user config dir)")
	flag.StringVar(&f.apiURL, "api", "", "File server base URL")
	flag.StringVar(&f.token, "token", "", "Bearer token for the file server")
	flag.StringVar(&f.path, "path", "", "Folder to open first")
	flag.IntVar(&f.maxFiles, "max", 0, "Maximum number of files to select")
	flag.StringVar(&f.types, "types", "", "Comma separated file types to allow (image,video,audio,document,archive,code,other)")
	flag.StringVar(&f.theme, "theme", "", "Theme: silex or flmngr")
	flag.BoolVar(&f.jsonOut, "json", false, "Print the selection as JSON")
	flag.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	flag.BoolVar(&f.demo, "demo", false, "Browse a built-in demo tree instead of a server")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()
	return f
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(f.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 2
	}
	applyFlags(cfg, f)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 2
	}

	// The TUI owns the terminal, so logs go to a file
	if err := logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, OutputPath: cfg.Log.Path}); err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	}
	defer func() { _ = logging.Sync() }()

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if f.metricsAddr != "" {
		srv := serveMetrics(f.metricsAddr, reg)
		defer func() {
			shutdownCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var ds api.DataSource
	if f.demo {
		ds = api.NewDemoSource()
	} else {
		rc := retry.DefaultConfig()
		rc.MaxAttempts = cfg.API.RetryAttempts
		ds = api.New(api.Config{
			BaseURL:     cfg.API.BaseURL,
			Timeout:     cfg.API.Timeout.Duration,
			RetryConfig: rc,
			AuthToken:   cfg.API.Token,
			Registerer:  reg,
		})
	}

	opts, err := pickerOptions(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 2
	}
	opts.Bus = bus

	// Subscribe to preference changes to save automatically
	saver := config.NewPreferenceSaver(configSvc, cfg)
	bus.Subscribe(eventbus.EventConfigChanged, saver.Handle)

	p, err := picker.New(ds, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	files, err := p.Run(ctx)
	if errors.Is(err, picker.ErrCancelled) {
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}

	if err := printSelection(os.Stdout, files, f.jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing selection: %v\n", err)
		return 1
	}
	return 0
}

// applyFlags lets command line values override the config file
func applyFlags(cfg *config.Config, f flags) {
	if f.apiURL != "" {
		cfg.API.BaseURL = f.apiURL
	}
	if f.token != "" {
		cfg.API.Token = f.token
	}
	if f.path != "" {
		cfg.Picker.InitialPath = f.path
	}
	if f.maxFiles > 0 {
		cfg.Picker.MaxFiles = f.maxFiles
	}
	if f.types != "" {
		cfg.Picker.AllowedTypes = strings.Split(f.types, ",")
	}
	if f.theme != "" {
		cfg.UI.Theme = f.theme
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
}

func pickerOptions(cfg *config.Config) (picker.Options, error) {
	opts := picker.DefaultOptions()
	opts.InitialPath = cfg.Picker.InitialPath
	opts.MaxFiles = cfg.Picker.MaxFiles
	opts.AllowedTypes = cfg.AllowedFileTypes()
	opts.Theme = cfg.UI.Theme
	opts.UploadConcurrency = cfg.Picker.UploadConcurrency

	sortCfg, err := cfg.SortConfig()
	if err != nil {
		return opts, err
	}
	opts.Sort = sortCfg

	if opts.ViewMode, err = browser.ParseViewMode(cfg.UI.ViewMode); err != nil {
		return opts, err
	}
	if cfg.UI.Locale != "" {
		tag, err := language.Parse(cfg.UI.Locale)
		if err != nil {
			return opts, fmt.Errorf("ui.locale: %w", err)
		}
		opts.Locale = tag
	}
	return opts, nil
}

func printSelection(w io.Writer, files []domain.FileEntry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}
	for _, f := range files {
		if _, err := fmt.Fprintln(w, f.Path); err != nil {
			return err
		}
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
