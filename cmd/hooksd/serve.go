package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/ShubSpyder/custom-hooks/examples/counter"
	"github.com/ShubSpyder/custom-hooks/internal/config"
	"github.com/ShubSpyder/custom-hooks/pkg/server"
	"github.com/ShubSpyder/custom-hooks/pkg/storage"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		backend    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo server",
		Long: `Run the demo server with the counter example mounted.

Configuration comes from hooks.json; --addr and --storage override it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if backend != "" {
				cfg.Storage.Backend = backend
			}

			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			store, err := newStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			log.Info("storage ready", "backend", cfg.Storage.Backend)

			srv := server.New(server.Options{
				Addr: cfg.Addr,
				App: counter.App(counter.Config{
					Store:     store,
					FrameRate: cfg.FrameRate,
					CountURL:  countURL(cfg.Addr),
				}),
				Logger: log,
			})

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				log.Info("shutting down", "signal", sig.String())
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", config.FileName, "Path to hooks.json")
	cmd.Flags().StringVar(&backend, "storage", "", "Storage backend: memory, disk, or s3 (overrides config)")

	return cmd
}

// countURL points the demo's fetch hook back at this server.
func countURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/api/count"
}

// newStore builds the persistence backend selected in cfg.
func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendDisk:
		return storage.NewDisk(cfg.Storage.Dir)
	case config.BackendS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return storage.NewS3Store(client, cfg.Storage.Bucket, cfg.Storage.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
