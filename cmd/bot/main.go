package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/superstar-bot/config"
	"github.com/oksasatya/superstar-bot/internal/application"
	"github.com/oksasatya/superstar-bot/internal/container"
	"github.com/oksasatya/superstar-bot/internal/conversation"
	pginfra "github.com/oksasatya/superstar-bot/internal/infrastructure/postgres"
	"github.com/oksasatya/superstar-bot/internal/infrastructure/session"
	"github.com/oksasatya/superstar-bot/internal/interface/middleware"
	"github.com/oksasatya/superstar-bot/internal/interface/telegram"
	"github.com/oksasatya/superstar-bot/internal/router"
	"github.com/oksasatya/superstar-bot/pkg/helpers"
	"github.com/oksasatya/superstar-bot/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	if cfg.BotToken == "" {
		logger.Fatal("BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	var store session.Store
	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		store = session.NewRedisStore(rdb, cfg.ConversationTTL)
	} else {
		logger.Warn("redis disabled; conversations live in memory and rate limits are off")
		store = session.NewMemoryStore(cfg.ConversationTTL)
	}

	var pub *helpers.RabbitPublisher
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		pub, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; reset emails disabled")
			pub = nil
		} else {
			defer pub.Close()
		}
	}

	users := pginfra.NewUserRepository(pool)
	dir := application.NewDirectoryService(users, pginfra.NewOrderRepository(pool), logger)
	creds := application.NewCredentialService(users, pginfra.NewResetTokenRepository(pool), logger, cfg.BcryptCost, cfg.ResetTokenTTL)
	creds.Cfg = cfg
	if pub != nil {
		creds.Pub = pub
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetRabbitPub(pub)
	container.SetCredentials(creds)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Fatalf("failed to init telegram bot: %v", err)
	}
	api.Debug = cfg.BotDebug

	bot := conversation.NewBot(
		conversation.NewEngine(dir, creds, logger, cfg.WebAppURL),
		conversation.NewMenu(dir, logger, cfg.WebAppURL),
		store,
		telegram.NewTransport(api),
		logger,
	)
	poller := telegram.NewPoller(api, bot, logger, cfg.BotWorkers)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: newHTTPEngine(cfg, logger)}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		poller.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		logger.Infof("http server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("listen: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	wg.Wait()
	logger.Info("exited properly")
}

func newHTTPEngine(cfg *config.Config, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}))
	}
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r, "/api")
	router.InitModules(reg)
	n := reg.RegisterAll()
	logger.WithField("modules", n).Debug("http modules registered")
	return r
}

func runMigrations(dsn, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations")
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
