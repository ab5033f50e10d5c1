package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"purchasing/cmd"
	"purchasing/internal/adapters/out/postgres/orderrepo"
	"purchasing/internal/adapters/out/postgres/sequencerepo"
	"purchasing/internal/adapters/out/postgres/userrepo"
	"purchasing/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	appLog := logger.New(configs.LogLevel, nil)

	gormDB, err := openDatabase(configs)
	if err != nil {
		logger.LogError(appLog, "main", "openDatabase", "connect to postgres", configs.DBHost, err)
		os.Exit(1)
	}

	redisClient, err := openRedis(configs)
	if err != nil {
		logger.LogError(appLog, "main", "openRedis", "connect to redis", configs.RedisAddress, err)
		os.Exit(1)
	}

	var shared redis.UniversalClient
	if redisClient != nil {
		shared = redisClient
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, shared, appLog)
	if err != nil {
		logger.LogError(appLog, "main", "NewCompositionRoot", "wire application", configs.SequenceBackend, err)
		os.Exit(1)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.LogError(appLog, "main", "StartAll", "start jobs", nil, err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	if err = startWebServer(app, configs, appLog); err != nil {
		logger.LogError(appLog, "main", "startWebServer", "serve http", configs.HTTPPort, err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	models := append(orderrepo.Models(), &sequencerepo.CounterDTO{}, &userrepo.UserDTO{})
	if err = gormDB.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gormDB, nil
}

// openRedis connects when an address is configured. Without one the redis sequence
// backend is unavailable and the reconcile job runs without a lock.
func openRedis(configs cmd.Config) (*redis.Client, error) {
	if configs.RedisAddress == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddress,
		PoolSize: 100,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config, appLog *logrus.Logger) error {
	e, err := app.CreateRouter()
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLogLevel(configs.LogLevel))
	e.Server.ReadTimeout = configs.HTTPReadTimeout
	e.Server.WriteTimeout = configs.HTTPWriteTimeout

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLog.WithField("port", configs.HTTPPort).Info("HTTP server starting")
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(appLog, "main", "startWebServer", "http server stopped", configs.HTTPPort, err)
			stop()
		}
	}()

	<-ctx.Done()
	appLog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return shutdown(shutdownCtx, e)
}

func shutdown(ctx context.Context, e *echo.Echo) error {
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "trace", "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error", "fatal", "panic":
		return log.ERROR
	default:
		return log.INFO
	}
}
