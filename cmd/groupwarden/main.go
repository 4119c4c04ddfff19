package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "groupwarden",
		Usage:   "chat moderation daemon (keeps the group in line)",
		Version: versioninfo.Short(),
	}

	app.Commands = []*cli.Command{
		runCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the service",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection URL; if empty, state is in-memory and events are read from stdin",
			EnvVars: []string{"GROUPWARDEN_REDIS_URL"},
		},
		&cli.StringFlag{
			Name:    "wordlist-json",
			Usage:   "file path of JSON file containing additional disallowed terms",
			EnvVars: []string{"GROUPWARDEN_WORDLIST_JSON"},
		},
		&cli.StringFlag{
			Name:    "events-stream",
			Usage:   "redis stream to consume inbound events from",
			Value:   "groupwarden:events",
			EnvVars: []string{"GROUPWARDEN_EVENTS_STREAM"},
		},
		&cli.StringFlag{
			Name:    "plans-stream",
			Usage:   "redis stream to publish action plans to",
			Value:   "groupwarden:plans",
			EnvVars: []string{"GROUPWARDEN_PLANS_STREAM"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs",
			Value:   ":3989",
			EnvVars: []string{"GROUPWARDEN_METRICS_LISTEN"},
		},
		&cli.DurationFlag{
			Name:    "user-record-ttl",
			Usage:   "how long idle user records are retained",
			Value:   14 * 24 * time.Hour,
			EnvVars: []string{"GROUPWARDEN_USER_RECORD_TTL"},
		},
		&cli.DurationFlag{
			Name:    "activity-retention",
			Usage:   "how long activity timestamps are retained",
			Value:   14 * 24 * time.Hour,
			EnvVars: []string{"GROUPWARDEN_ACTIVITY_RETENTION"},
		},
		&cli.IntFlag{
			Name:    "notice-rate-limit",
			Usage:   "max plans carrying notices published per second",
			Value:   5,
			EnvVars: []string{"GROUPWARDEN_NOTICE_RATE_LIMIT"},
		},
	},
	Action: func(cctx *cli.Context) error {
		ctx := context.Background()
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		srv, err := NewServer(Config{
			Logger:            logger,
			RedisURL:          cctx.String("redis-url"),
			WordlistJSON:      cctx.String("wordlist-json"),
			EventsStream:      cctx.String("events-stream"),
			PlansStream:       cctx.String("plans-stream"),
			UserRecordTTL:     cctx.Duration("user-record-ttl"),
			ActivityRetention: cctx.Duration("activity-retention"),
			NoticeRateLimit:   cctx.Int("notice-rate-limit"),
		})
		if err != nil {
			return err
		}

		go func() {
			if err := srv.RunMetrics(cctx.String("metrics-listen")); err != nil {
				slog.Error("failed to start metrics endpoint", "error", err)
				panic(fmt.Errorf("failed to start metrics endpoint: %w", err))
			}
		}()
		go func() {
			if err := srv.RunPersistCursor(ctx); err != nil {
				slog.Error("cursor persist loop failed", "error", err)
			}
		}()

		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("failed to run moderation service: %w", err)
		}
		return nil
	},
}
