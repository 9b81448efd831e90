package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/quizdeck/quizdeck/internal/account"
	apihttp "github.com/quizdeck/quizdeck/internal/api/http"
	"github.com/quizdeck/quizdeck/internal/audit"
	"github.com/quizdeck/quizdeck/internal/auth"
	"github.com/quizdeck/quizdeck/internal/cache"
	"github.com/quizdeck/quizdeck/internal/config"
	"github.com/quizdeck/quizdeck/internal/db"
	"github.com/quizdeck/quizdeck/internal/quiz"
	"github.com/quizdeck/quizdeck/internal/submission"
)

// NewServeCmd builds the subcommand that starts the API server.
func NewServeCmd(configPath, addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quizdeck API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *addr)
		},
	}
}

func runServer(ctx context.Context, configPath, addrFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.HTTPAddr = addrFlag
	}

	sqlDB, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	accounts := account.NewSQLStore(sqlDB)
	quizzes := quiz.NewSQLStore(sqlDB)
	subs := submission.NewSQLStore(sqlDB)
	auditLog := audit.NewLog(sqlDB)

	var roles cache.RoleCache = cache.NewMemoryRoleCache(cfg.RoleCacheTTL)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		roles = cache.NewRedisRoleCache(client, cfg.RoleCacheTTL)
	}

	authSvc := auth.NewService(cfg.AuthSecret, cfg.TokenTTL)
	taking := submission.NewService(subs, quizzes, auditLog)
	grading := submission.NewGradingService(subs, quizzes, accounts, auditLog)

	router := apihttp.NewRouter(apihttp.Deps{
		Accounts:    accounts,
		Quizzes:     quizzes,
		Subs:        subs,
		Taking:      taking,
		Grading:     grading,
		Auth:        authSvc,
		Roles:       roles,
		Audit:       auditLog,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("quizdeck listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
