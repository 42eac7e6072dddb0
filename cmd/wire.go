package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/bnema/ppl/internal/adapters/randomuser"
	"github.com/bnema/ppl/internal/application"
	"github.com/bnema/ppl/internal/config"
	"github.com/bnema/ppl/internal/logger"
	"github.com/bnema/ppl/internal/metrics"
	"github.com/bnema/ppl/internal/ports"
	"github.com/bnema/ppl/internal/version"
	"github.com/spf13/viper"
)

type app struct {
	config     config.Config
	logger     *slog.Logger
	metrics    *metrics.Metrics
	controller *application.Controller

	// metricsAddr is the bound metrics address while the server runs.
	metricsAddr string
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(viper.New(), opts.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.metricsListen != "" {
		cfg.Metrics.Listen = opts.metricsListen
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// wireApp builds the controller and its dependencies. A nil logOutput
// discards log records.
func wireApp(opts *rootOptions, logOutput io.Writer) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log := logger.Discard()
	if logOutput != nil {
		log, err = logger.New(logOutput, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return nil, fmt.Errorf("wire logger: %w", err)
		}
	}

	m := metrics.New()
	fetcher := &randomuser.Client{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: http.DefaultClient,
		Results:    cfg.API.Results,
		UserAgent:  "ppl/" + version.Version,
	}

	controller, err := application.NewController(fetcher,
		application.WithLogger(log),
		application.WithMetrics(m),
		application.WithClock(ports.SystemClock{}),
		application.WithPages(cfg.Fetch.Pages),
		application.WithFetchTimeout(cfg.Fetch.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("wire controller: %w", err)
	}

	return &app{
		config:     cfg,
		logger:     log,
		metrics:    m,
		controller: controller,
	}, nil
}
