package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrewpaige1/recallcards-api/auth"
	"github.com/andrewpaige1/recallcards-api/config"
	"github.com/andrewpaige1/recallcards-api/flashcards"
	"github.com/andrewpaige1/recallcards-api/handlers"
	"github.com/andrewpaige1/recallcards-api/middleware"
	"github.com/andrewpaige1/recallcards-api/store"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func newLogger(env config.Environment) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env.IsDevelopment {
		cfg = zap.NewDevelopmentConfig()
	}
	if env.LogLevel != "" {
		level, err := zapcore.ParseLevel(env.LogLevel)
		if err != nil {
			return nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(level)
	}
	return cfg.Build()
}

func tokenValidator(env config.Environment, logger *zap.Logger) jwtmiddleware.ValidateToken {
	switch {
	case env.Auth0Domain != "":
		v, err := auth.NewAuth0Validator(env.Auth0Domain, env.Auth0Audience)
		if err != nil {
			logger.Fatal("Failed to set up Auth0 validator", zap.Error(err))
		}
		return v.ValidateToken
	case env.JWTSecret != "":
		return auth.HS256Validator([]byte(env.JWTSecret))
	default:
		logger.Warn("No identity provider configured; /api/token rejects every token")
		return auth.RejectAll
	}
}

func main() {
	env := config.Load()
	logger, err := newLogger(env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection. The service keeps running without
	// one and reports the database as not connected.
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	var db store.Store
	db, err = config.Connect(connectCtx, env, logger)
	cancel()
	if err != nil {
		logger.Error("Error connecting to database", zap.Error(err))
		db = nil
	} else {
		defer db.Close()
	}

	cards := flashcards.NewService(db, logger)
	handler := handlers.NewHandler(cards, logger)
	requireToken := middleware.EnsureValidToken(tokenValidator(env, logger), logger)
	mux := handlers.NewRouter(handler, requireToken)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   env.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(middleware.RequestLogger(logger)(middleware.Recover(logger)(mux)))

	server := &http.Server{
		Addr:         "0.0.0.0:" + env.Port,
		Handler:      corsHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
