package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/apicover/apicover/internal/models"
	"github.com/apicover/apicover/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the coverage report over HTTP",
	Long: `Starts an HTTP server that runs the coverage pipeline on demand.

Endpoints:
  GET /report      HTML report
  GET /api/report  JSON report
  GET /api/health  health check
  GET /ws/report   websocket; send any frame to receive a refreshed report`,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Override server port")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := resolveConfig()
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	srv := server.New(func() (*models.CoverageReport, models.TagMapping, error) {
		return runPipeline(cfg)
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Serving coverage reports on http://%s/report", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
	return nil
}
