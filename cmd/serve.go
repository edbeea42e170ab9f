package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"precis/internal/apihandlers"
)

var (
	serveAddr string // Listen address
	servePort int    // Listen port
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run Precis as an HTTP API server",
	Long: `Starts an HTTP server exposing summarization via a JSON API:

  POST /api/v1/summarize           {"text": "...", "tone": "casual", "length": "brief"}
  POST /api/v1/summarize/download  same body, returns summary.txt
  GET  /api/v1/presets
  GET  /api/v1/usage
  GET  /health

The model starts loading in the background as soon as the server starts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		addr := appInstance.Config.Serve.Addr
		if cmd.Flags().Changed("addr") {
			addr = serveAddr
		}
		port := appInstance.Config.Serve.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid port %d", port)
		}

		if log.GetLevel() < log.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		appInstance.Models.Preload(context.WithoutCancel(ctx))

		listenAddr := net.JoinHostPort(addr, strconv.Itoa(port))
		srv := &http.Server{
			Addr:              listenAddr,
			Handler:           apihandlers.NewRouter(appInstance),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Infof("Starting Precis API server on http://%s", listenAddr)
			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s\n", listenAddr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorf("Failed to run API server: %v", err)
				return fmt.Errorf("failed to run API server: %w", err)
			}
		case <-ctx.Done():
			log.Info("Shutting down API server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown API server: %w", err)
			}
		}

		log.Info("Precis API server stopped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost", "Address to listen on (e.g., '0.0.0.0' for all interfaces); overrides serve.addr")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on; overrides serve.port")
}
