package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/taskflow/taskflow-api/internal/auth"
	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/handler"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/queue"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	hasher := auth.NewHasher(cfg.BcryptCost)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("ensure schema: %v", err)
	}
	if err := database.Seed(ctx, db, hasher); err != nil {
		cancel()
		log.Fatalf("seed: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	tasks := repository.NewTaskRepo(db)
	tokens := repository.NewTokenRepo(db)

	tokenSvc := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.AccessTTLMin)*time.Minute)
	authn := auth.NewAuthenticator(hasher, tokenSvc,
		userLookupByUsername(users), userLookupByID(users))

	authHandler := handler.NewAuthHandler(cfg, authn, hasher, users, tokens)
	userHandler := handler.NewUserHandler(users)
	taskHandler := handler.NewTaskHandler(tasks, users)

	e := echo.New()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, authn)
	router.RegisterUsers(e, userHandler, authn)
	router.RegisterTasks(e, taskHandler, authn)

	// Drain task events in the background; the consumer reconnects on
	// broker failures and never takes the server down.
	go func() {
		if err := queue.StartTaskConsumer(); err != nil {
			log.Printf("task consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// userLookupByUsername adapts the user repository to the authenticator's
// lookup contract: a missing user is (nil, nil).
func userLookupByUsername(users *repository.UserRepo) auth.LookupByUsername {
	return func(ctx context.Context, username string) (*auth.UserRecord, error) {
		u, err := users.GetByUsername(ctx, username)
		if err == repository.ErrUserNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		role, ok := auth.ParseRole(u.Role)
		if !ok {
			return nil, nil
		}
		return &auth.UserRecord{
			Identity:     auth.Identity{ID: u.ID, Role: role, Active: u.IsActive},
			PasswordHash: u.PasswordHash,
		}, nil
	}
}

func userLookupByID(users *repository.UserRepo) auth.LookupByID {
	return func(ctx context.Context, id uint64) (*auth.Identity, error) {
		u, err := users.GetByID(ctx, id)
		if err == repository.ErrUserNotFound {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		role, ok := auth.ParseRole(u.Role)
		if !ok {
			return nil, nil
		}
		return &auth.Identity{ID: u.ID, Role: role, Active: u.IsActive}, nil
	}
}
