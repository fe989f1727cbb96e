package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	_ "github.com/dmarket/dmarket-api/docs"
	"github.com/dmarket/dmarket-api/internal/auth"
	"github.com/dmarket/dmarket-api/internal/config"
	"github.com/dmarket/dmarket-api/internal/db"
	api "github.com/dmarket/dmarket-api/internal/http"
	"github.com/dmarket/dmarket-api/internal/http/handlers"
	mw "github.com/dmarket/dmarket-api/internal/http/middleware"
	rl "github.com/dmarket/dmarket-api/internal/http/rate_limiter"
	"github.com/dmarket/dmarket-api/internal/repo"
)

// @title DMarket API
// @version 2.0.0
// @description REST API for the DMarket product catalog with delegated authentication.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, relying on the environment")
	}
	cfg := config.Load()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer database.Close()

	sessions := auth.NewRedisSessionStore(rdb, 24*time.Hour)
	verifier := auth.NewJWKSVerifier(cfg.Auth0Domain, cfg.APIAudience)
	auth0 := auth.NewAuth0Client(cfg.Auth0Domain, cfg.ClientID, cfg.ClientSecret, cfg.APIAudience, cfg.CallbackURL)

	userRepo := repo.NewPostgresUserRepository(database)

	handlers.SetProductRepo(repo.NewPostgresProductRepository(database))
	handlers.SetUserRepo(userRepo)
	handlers.SetSessionStore(sessions)
	handlers.SetAuth0Client(auth0)

	mw.SetVerifier(verifier)
	mw.SetUserRepo(userRepo)
	mw.SetSessionStore(sessions)

	go rl.StartVisitorCleanupLoop()

	r := api.NewRouter()
	log.Infof("Server running on %s", cfg.AppPort)
	if err := http.ListenAndServe(cfg.AppPort, r); err != nil {
		log.Fatal(err)
	}
}
