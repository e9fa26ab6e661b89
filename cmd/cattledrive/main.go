// cmd/cattledrive/main.go builds a session from the configured rules, seats players,
// plays one scripted round and prints the resulting snapshot. With -persist the
// session is stored in Postgres, cached in Redis and every change is queued for the
// historian.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jason-s-yu/cattledrive/internal/cache"
	"github.com/jason-s-yu/cattledrive/internal/config"
	"github.com/jason-s-yu/cattledrive/internal/database"
	"github.com/jason-s-yu/cattledrive/internal/game"
	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

func main() {
	players := flag.Int("players", 2, "number of players to seat")
	seed := flag.Int64("seed", 0, "shuffle seed; 0 picks one from the clock")
	persist := flag.Bool("persist", false, "store the session in Postgres and Redis")
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		logrus.WithError(err).Fatal("invalid environment")
	}
	env.ConfigureLogging()
	log := logrus.WithField("component", "cattledrive")

	if err := run(context.Background(), env, *players, *seed, *persist, log); err != nil {
		log.WithError(err).Fatal("session failed")
	}
}

func run(ctx context.Context, env config.Env, players int, seed int64, persist bool, log *logrus.Entry) error {
	rules, err := config.LoadRules(env.RulesFile)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []game.Option{game.WithRand(rand.New(rand.NewSource(seed)))}

	var (
		repo      *database.SessionRepository
		snapshots *cache.SnapshotCache
	)
	if persist {
		pool, err := database.Connect(ctx, env.PostgresDSN())
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		repo = database.NewSessionRepository(pool)

		rdb, err := cache.Connect(ctx, env)
		if err != nil {
			return err
		}
		defer rdb.Close()
		snapshots = cache.NewSnapshotCache(rdb, env.SnapshotTTL)
		opts = append(opts, game.WithRecorder(cache.NewPublisher(rdb, env.QueueName)))
	}

	s, err := game.New(rules, opts...)
	if err != nil {
		return err
	}
	if repo != nil {
		if err := repo.Create(ctx, s); err != nil {
			return err
		}
	}
	stored := s.Version

	store := game.NewStore()
	store.Add(s)
	err = store.Do(s.SessionID, func(st *game.State) error {
		for i := 1; i <= players; i++ {
			if _, err := st.AddPlayer(fmt.Sprintf("local-%d", i), fmt.Sprintf("Player %d", i)); err != nil {
				return err
			}
		}
		if err := st.Start(); err != nil {
			return err
		}
		playRound(st, log.WithField("game_id", st.SessionID))
		return nil
	})
	if err != nil {
		return err
	}

	if repo != nil {
		if err := repo.Save(ctx, s, stored); err != nil {
			return err
		}
		if err := snapshots.Put(ctx, s); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"game_id": s.SessionID, "version": s.Version}).Info("session persisted")
	}

	data, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(os.Stdout)
	return err
}
