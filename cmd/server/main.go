package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ai-quiz-app/quiz-api/internal/api"
	"github.com/ai-quiz-app/quiz-api/internal/core/domain"
	"github.com/ai-quiz-app/quiz-api/internal/core/service"
	"github.com/ai-quiz-app/quiz-api/internal/infrastructure/ai"
	mongodb "github.com/ai-quiz-app/quiz-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ai-quiz-app/quiz-api/internal/infrastructure/db/redis"
	"github.com/ai-quiz-app/quiz-api/internal/pkg/config"
	"github.com/ai-quiz-app/quiz-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	if err := bootstrapManager(ctx, cfg, db); err != nil {
		log.Fatal().Err(err).Msg("manager bootstrap failed")
	}

	completions := ai.NewAnthropicClient(ai.Config{
		APIKey:  cfg.Anthropic.APIKey,
		Model:   cfg.Anthropic.Model,
		BaseURL: cfg.Anthropic.BaseURL,
	})

	e, err := api.NewRouter(db, rdb, cfg, completions, log)
	if err != nil {
		log.Fatal().Err(err).Msg("router construction failed")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewQuizRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewQuestionRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewAttemptRepository(db).EnsureIndexes(ctx)
}

// bootstrapManager promotes (or creates) the configured seed account to
// MANAGER. Public registration only ever produces ordinary users, so this is
// the sole path to the first manager. Idempotent across restarts.
func bootstrapManager(ctx context.Context, cfg *config.Config, db *mongo.Database) error {
	if cfg.BootstrapManagerUsername == "" {
		return nil
	}

	log := logger.Get()
	users := mongodb.NewUserRepository(db)

	user, err := users.FindByUsername(ctx, cfg.BootstrapManagerUsername)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		if cfg.BootstrapManagerPassword == "" {
			return errors.New("BOOTSTRAP_MANAGER_PASSWORD is required to create the manager account")
		}
		hasher, err := service.NewBcryptHasher()
		if err != nil {
			return err
		}
		hash, err := hasher.Hash(cfg.BootstrapManagerPassword)
		if err != nil {
			return err
		}
		created, err := users.Create(ctx, &domain.User{
			Username:     cfg.BootstrapManagerUsername,
			PasswordHash: hash,
			Role:         domain.RoleManager,
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		log.Info().Str("user_id", created.ID).Msg("manager account created")
		return nil
	case err != nil:
		return err
	}

	if user.Role == domain.RoleManager {
		return nil
	}
	if err := users.UpdateRole(ctx, user.ID, domain.RoleManager); err != nil {
		return err
	}
	log.Info().Str("user_id", user.ID).Msg("existing account promoted to manager")
	return nil
}
