package main

import (
	"context"
	"time"

	"github.com/abhishek622/prepai/internal/auth"
	"github.com/abhishek622/prepai/internal/cache"
	"github.com/abhishek622/prepai/internal/config"
	"github.com/abhishek622/prepai/internal/database"
	"github.com/abhishek622/prepai/internal/groq"
	"github.com/abhishek622/prepai/internal/handler"
	"github.com/abhishek622/prepai/internal/logger"
	"github.com/abhishek622/prepai/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type application struct {
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Limiter *cache.RateLimiter
	Logger  *zap.Logger
	Config  *config.Config
	Handler *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(ctx, rdb); err != nil {
		sugar.Warnw("redis unreachable, rate limiting degraded", "err", err)
	}

	repo := repository.NewRepository(pool)
	groqClient := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.Timeout)

	app := &application{
		DB:      pool,
		Redis:   rdb,
		Limiter: cache.NewRateLimiter(rdb, cfg.Limiter.RPM, time.Minute),
		Logger:  log,
		Config:  cfg,
		Handler: &handler.Handler{
			Logger:     log,
			Repository: repo,
			TokenMaker: auth.NewJWTMaker(cfg.JWT.Secret),
			JwtTTL:     cfg.JWT.AccessTokenTTL,
			Groq:       groqClient,
		},
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
