package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	httpapi "github.com/tbourn/go-pm-backend/internal/http"
	"github.com/tbourn/go-pm-backend/internal/observability"
	"github.com/tbourn/go-pm-backend/internal/repo"
	"github.com/tbourn/go-pm-backend/internal/sysutil"
)

const (
	shutdownTimeout  = 10 * time.Second
	idempotencySweep = time.Hour
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := ctx.database(cmd)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			otelShutdown, err := observability.SetupOTel(runCtx, cfg.OTEL, sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version))
			if err != nil {
				return err
			}
			defer func() {
				if err := observability.ShutdownWithin(otelShutdown, shutdownTimeout); err != nil {
					log.Error().Err(err).Msg("otel shutdown")
				}
			}()

			gin.SetMode(cfg.GinMode)
			r := gin.New()
			httpapi.RegisterRoutes(r, db, cfg)

			srv := &http.Server{
				Addr:              sysutil.FirstNonEmpty(addr, ":"+cfg.Port),
				Handler:           r,
				ReadTimeout:       cfg.ReadTimeout,
				ReadHeaderTimeout: cfg.ReadHeaderTimeout,
				WriteTimeout:      cfg.WriteTimeout,
				IdleTimeout:       cfg.IdleTimeout,
				MaxHeaderBytes:    cfg.MaxHeaderBytes,
				BaseContext:       func(net.Listener) context.Context { return runCtx },
			}

			go sweepIdempotency(runCtx, db, idempotencySweep)

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", srv.Addr).Str("db", cfg.DBPath).Str("base_path", cfg.APIBasePath).Msg("http server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err, ok := <-errCh:
				if ok {
					return err
				}
				return nil
			case <-runCtx.Done():
			}

			log.Info().Msg("shutting down")
			shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shCtx); err != nil {
				return err
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to :$PORT)")
	return cmd
}

// sweepIdempotency deletes expired Idempotency-Key rows every interval until
// ctx is done.
func sweepIdempotency(ctx context.Context, db *gorm.DB, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			if err != nil {
				log.Warn().Err(err).Msg("idempotency sweep failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("idempotency sweep")
			}
		}
	}
}
