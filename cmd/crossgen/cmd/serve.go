package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordgrid/crossgen/internal/authsvc"
	"github.com/wordgrid/crossgen/internal/config"
	"github.com/wordgrid/crossgen/internal/httpapi"
	"github.com/wordgrid/crossgen/internal/logging"
	"github.com/wordgrid/crossgen/internal/realtime"
	"github.com/wordgrid/crossgen/internal/store"
	"github.com/wordgrid/crossgen/pkg/puzzle"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run crossgen as an HTTP job service",
	Long: `Start the crossgen HTTP service: submit generation requests as
asynchronous jobs, poll or stream their progress over a websocket, and
fetch the finished puzzle once done.

Configuration is read from environment variables (optionally via a .env
file) — see internal/config for PORT, DATABASE_URL, REDIS_URL,
JWT_SECRET, OPERATOR_API_KEY_HASH, BANK_PATH, DICTIONARY_PATH.

Example:
  OPERATOR_API_KEY_HASH=$(crossgen hash-key my-secret-key) crossgen serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logging.New("info", false)

	lex, resolver, err := loadLexicon(cfg.BankPath, cfg.DictionaryPath)
	if err != nil {
		return fmt.Errorf("failed to load word bank: %w", err)
	}
	log.WithField("entries", lex.Len()).Info("serve: lexicon loaded")
	generator := puzzle.NewGenerator(lex, resolver)

	st, err := store.New(cfg.DatabaseURL, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to connect to store: %w", err)
	}
	defer st.Close()

	if err := st.InitSchema(); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	if cfg.APIKeyHash == "" {
		return fmt.Errorf("OPERATOR_API_KEY_HASH must be set to run crossgen serve")
	}
	auth := authsvc.NewService(cfg.JWTSecret, cfg.APIKeyHash)

	hub := realtime.NewHub(log)
	go hub.Run()

	router := httpapi.NewRouter(st, auth, generator, hub)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("serve: failed to start server")
		}
	}()
	log.WithField("port", cfg.Port).Info("serve: server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("serve: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("serve: exited")
	return nil
}
