package cli

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/lovewall/internal/server"
	"github.com/ppiankov/lovewall/internal/wall"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the wall as a JSON API",
	Long: `Serve starts the HTTP API for the wall frontend.

The insight is fetched once at startup in the background; /api/v1/insight
answers 202 while it is loading and 200 once it is ready.

Endpoints:
  GET /api/v1/proof?category=&q=
  GET /api/v1/categories
  GET /api/v1/insight
  GET /health
  GET /metrics

Example:
  lovewall serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	w, err := wall.New(ctx, cfg, logger, reg)
	if err != nil {
		return err
	}
	defer w.Close()

	return server.New(w, cfg.Server, logger, reg).Run(ctx)
}
