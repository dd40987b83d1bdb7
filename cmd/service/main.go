package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/velmark/fitness-contest/internal/app"
	"github.com/velmark/fitness-contest/internal/config"
	"github.com/velmark/fitness-contest/internal/db"
	"github.com/velmark/fitness-contest/internal/jobs"
	"github.com/velmark/fitness-contest/internal/logging"
	"github.com/velmark/fitness-contest/internal/observability"
)

func main() {
	// Загрузка переменных окружения
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Ошибка инициализации логгера: %v", err)
	}
	defer lg.Closer()

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, "fitness-contest")
	if err != nil {
		lg.Sugar.Warnw("sentry не инициализирован", "err", err)
	}
	defer flushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		lg.Sugar.Fatalw("ошибка подключения к БД", "err", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		lg.Sugar.Fatalw("миграция не удалась", "err", err)
	}
	if err := db.SeedGlobalActivities(ctx, database); err != nil {
		lg.Sugar.Fatalw("не удалось заполнить каталог активностей", "err", err)
	}

	// Фоновое закрытие соревнований прошедших месяцев
	runner := jobs.New(ctx)
	runner.Every(time.Hour, "competition_closer", jobs.CloseElapsedCompetitions(database, cfg.Location, lg.Sugar))

	srv := app.StartHTTP(ctx, cfg.HTTPAddr, database)
	lg.Sugar.Infow("сервис запущен", "addr", cfg.HTTPAddr, "env", cfg.Env)

	<-ctx.Done()
	srv.Wait()
	lg.Sugar.Infow("сервис остановлен")
}
