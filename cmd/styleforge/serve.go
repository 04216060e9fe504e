// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/meshintel/styleforge/internal/corpus"
	"github.com/meshintel/styleforge/internal/render"
	"github.com/meshintel/styleforge/internal/server"
	"github.com/meshintel/styleforge/internal/stylestore"
	"github.com/meshintel/styleforge/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the styleforge HTTP server",
	Long: `Serve exposes the wizard over HTTP: the decision engine, style
generation, live previews, and the saved-style store with forking,
bookmarks, and revision history.

Previews use the built-in renderer unless --render-url points at an
external render service. The render API key is read from
.secrets/render-api-key unless --render-api-key is given.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:3000", "listen address")
	serveCmd.Flags().String("corpus", "", "reference corpus YAML (default: built-in references)")
	serveCmd.Flags().Int("sample-size", corpus.DefaultSampleSize, "references cited per preview")
	serveCmd.Flags().String("store", "styleforge.db", "path to the styles database")
	serveCmd.Flags().String("render-url", "", "base URL of an external render service")
	serveCmd.Flags().String("render-api-key", "", "API key for the render service")
	serveCmd.Flags().Int("max-retries", 0, "render service retries on HTTP 429 (0 = default)")
	serveCmd.Flags().Bool("debug", false, "enable debug logging")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.corpus.path", serveCmd.Flags().Lookup("corpus"))
	viper.BindPFlag("server.store.path", serveCmd.Flags().Lookup("store"))
	viper.BindPFlag("server.render.base_url", serveCmd.Flags().Lookup("render-url"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := serverConfig(cmd)

	debug, _ := cmd.Flags().GetBool("debug")
	logConfig := zap.NewProductionConfig()
	if debug {
		logConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := logConfig.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := stylestore.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	refs := corpus.Default()
	if cfg.Corpus.Path != "" {
		refs, err = corpus.Load(cfg.Corpus.Path)
		if err != nil {
			return err
		}
	}

	var renderer render.Renderer = render.Local{}
	if cfg.Render.BaseURL != "" {
		renderer = render.NewRemote(cfg.Render)
		logger.Info("using external render service", zap.String("url", cfg.Render.BaseURL))
	}

	srv, err := server.New(cfg, logger, store, refs, renderer, version)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func serverConfig(cmd *cobra.Command) types.ServerConfig {
	addr := viper.GetString("server.addr")
	corpusPath := viper.GetString("server.corpus.path")
	storePath := viper.GetString("server.store.path")
	renderURL := viper.GetString("server.render.base_url")

	sampleSize, _ := cmd.Flags().GetInt("sample-size")
	apiKey, _ := cmd.Flags().GetString("render-api-key")
	maxRetries, _ := cmd.Flags().GetInt("max-retries")

	return types.ServerConfig{
		Addr: addr,
		Corpus: types.CorpusConfig{
			Path:       corpusPath,
			SampleSize: sampleSize,
		},
		Store: types.StoreConfig{Path: storePath},
		Render: types.RenderConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "styleforge/" + version,
			},
			BaseURL:    renderURL,
			APIKey:     secretDefault("render-api-key", apiKey),
			MaxRetries: maxRetries,
		},
	}
}
