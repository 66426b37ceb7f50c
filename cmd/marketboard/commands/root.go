package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/marketboard/internal/app"
	"github.com/MrSnakeDoc/marketboard/internal/config"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
	"github.com/MrSnakeDoc/marketboard/internal/version"
)

var (
	backend   string
	storePath string
	logLevel  string

	cfg    *config.Config
	log    logger.Logger
	appCtx *app.App
)

func Execute() error {
	return execute(newRootCmd())
}

// execute runs root and releases the board afterwards, whether or not the
// command failed.
func execute(root *cobra.Command) error {
	defer closeApp()
	return root.Execute()
}

func closeApp() {
	if appCtx != nil {
		_ = appCtx.Close()
		appCtx = nil
	}
	if log != nil {
		_ = log.Sync()
	}
}

func newRootCmd() *cobra.Command {
	backend, storePath, logLevel = "", "", ""
	cfg, log, appCtx = nil, nil, nil

	root := &cobra.Command{
		Use:           "marketboard",
		Short:         "Local marketplace listing board",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg = config.Load()
			if backend != "" {
				cfg.StoreBackend = strings.ToLower(backend)
			}
			if cfg.StoreBackend != config.BackendFile && cfg.StoreBackend != config.BackendRedis {
				return fmt.Errorf("unknown backend %q", backend)
			}
			if storePath != "" {
				cfg.StorePath = storePath
			}
			switch {
			case logLevel != "":
				cfg.LogLevel = logLevel
			case cmd.Name() != "serve" && os.Getenv("MARKET_LOG_LEVEL") == "":
				// keep one-shot commands quiet
				cfg.LogLevel = "warn"
			}

			log = logger.New(cfg.LogLevel, cfg.PrettyLog)

			a, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("failed to open board", logger.Error(err))
				return err
			}
			appCtx = a
			return nil
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVar(&backend, "backend", "", "storage backend: file or redis (default $MARKET_STORE_BACKEND)")
	root.PersistentFlags().StringVar(&storePath, "store", "", "listings file for the file backend (default $MARKET_STORE_PATH)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(serveCmd(), listCmd(), addCmd(), rmCmd(), exportCmd(), importCmd(), optionsCmd())
	return root
}
