package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pagelens/pagelens/config"
	"github.com/pagelens/pagelens/internal/analyzer"
	"github.com/pagelens/pagelens/internal/api"
	"github.com/pagelens/pagelens/internal/engine"
	"github.com/pagelens/pagelens/internal/fetcher"
	"github.com/pagelens/pagelens/internal/notify"
	"github.com/pagelens/pagelens/internal/rank"
	"github.com/pagelens/pagelens/internal/store"
)

// serveCmd is the cobra command that starts the pagelens API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the pagelens api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command and its flags on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().String("config", "./config/.config.yaml", "config file location")
}

// serve initializes dependencies and starts the pagelens API server
func serve(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.Server.Debug = k.Bool("debug")
	cfg.Server.Pretty = k.Bool("pretty")

	eng := setupEngine(cfg)
	rankClient := setupRank(cfg)
	notifyClient := setupNotify(cfg)

	db, err := setupStore(cfg)
	if err != nil {
		return fmt.Errorf("setting up storage: %w", err)
	}

	defer func() { _ = db.Close() }()

	routerCfg := api.RouterConfig{
		Engine:         eng,
		Audits:         store.NewAuditService(db),
		Keywords:       store.NewKeywordService(db),
		MaxBodySize:    cfg.Server.MaxBodySize,
		RequestTimeout: cfg.Server.WriteTimeout,
		ScoreThreshold: cfg.Notify.ScoreThreshold,
	}

	// interface-typed fields stay nil unless a client exists, a typed nil
	// would defeat the handler's nil checks
	if rankClient != nil {
		routerCfg.Rank = rankClient
	}

	if notifyClient != nil {
		routerCfg.Notifier = notifyClient
	}

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      api.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Str("listen", cfg.Server.Listen).Msg("starting pagelens service")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	return nil
}

// setupEngine builds the analysis pipeline from config
func setupEngine(cfg *config.Config) *engine.Engine {
	f := fetcher.New(
		fetcher.WithTimeout(cfg.Fetch.Timeout),
		fetcher.WithUserAgent(cfg.Fetch.UserAgent),
	)

	extractCfg := analyzer.DefaultConfig()
	extractCfg.KeywordMinLength = cfg.Analyzer.KeywordMinLength
	extractCfg.KeywordLimit = cfg.Analyzer.KeywordLimit
	extractCfg.LargeImageThreshold = cfg.Analyzer.LargeImageThreshold

	if len(cfg.Analyzer.StopWords) > 0 {
		extractCfg.StopWords = cfg.Analyzer.StopWords
	}

	return engine.New(f, extractCfg)
}

// setupRank initializes the rank lookup client from config, returning nil when unconfigured
func setupRank(cfg *config.Config) *rank.Client {
	if cfg.Rank.APIKey == "" {
		log.Info().Msg("rank lookups not configured, skipping")
		return nil
	}

	client, err := rank.New(
		cfg.Rank.APIKey,
		rank.WithEndpoint(cfg.Rank.Endpoint),
		rank.WithRateLimit(cfg.Rank.RatePerSecond, cfg.Rank.RateBurst),
		rank.WithHTTPClient(&http.Client{Timeout: cfg.Rank.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize rank client")
		return nil
	}

	log.Info().Msg("rank lookups configured")

	return client
}

// setupNotify initializes the audit alert webhook client from config, returning nil when unconfigured
func setupNotify(cfg *config.Config) *notify.Client {
	if cfg.Notify.WebhookURL == "" {
		log.Info().Msg("audit alerts not configured, skipping")
		return nil
	}

	client, err := notify.New(
		cfg.Notify.WebhookURL,
		notify.WithHTTPClient(&http.Client{Timeout: cfg.Notify.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize webhook client")
		return nil
	}

	log.Info().Int("score_threshold", cfg.Notify.ScoreThreshold).Msg("audit alerts configured")

	return client
}

// setupStore opens the SQLite database from config
func setupStore(cfg *config.Config) (*store.DB, error) {
	db := store.NewDB(cfg.Storage.Path)

	if err := db.Open(); err != nil {
		return nil, err
	}

	log.Info().Str("path", cfg.Storage.Path).Msg("storage opened")

	return db, nil
}
