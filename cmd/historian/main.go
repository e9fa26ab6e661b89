// cmd/historian/main.go is the historian worker: it drains game actions from the
// Redis queue into Postgres until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jason-s-yu/cattledrive/internal/cache"
	"github.com/jason-s-yu/cattledrive/internal/config"
	"github.com/jason-s-yu/cattledrive/internal/database"
	"github.com/jason-s-yu/cattledrive/internal/historian"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		logrus.WithError(err).Fatal("invalid environment")
	}
	env.ConfigureLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.Connect(ctx, env.PostgresDSN())
	if err != nil {
		logrus.WithError(err).Fatal("database unavailable")
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	rdb, err := cache.Connect(ctx, env)
	if err != nil {
		logrus.WithError(err).Fatal("redis unavailable")
	}
	defer rdb.Close()

	hs := historian.New(rdb, database.NewSessionRepository(pool), historian.Options{
		Queue:         env.QueueName,
		BatchSize:     env.HistorianBatchSize,
		FlushInterval: env.FlushInterval(),
		Inactivity:    time.Duration(env.InactivityTimeout) * time.Second,
	})
	hs.Run(ctx)
}
